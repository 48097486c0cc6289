package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/invensight/backend-go/internal/domain"
	"github.com/invensight/backend-go/internal/service"
)

type InsightHandler struct {
	service *service.InsightService
}

func NewInsightHandler(service *service.InsightService) *InsightHandler {
	return &InsightHandler{service: service}
}

// parseFilter reads the shared analysis query params. Location ids may
// arrive repeated or comma-separated; both styles are supported.
func parseFilter(c *gin.Context) domain.AnalysisFilter {
	filter := domain.AnalysisFilter{}

	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "0")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	raw := c.QueryArray("location_ids")
	if len(raw) == 0 {
		if single := strings.TrimSpace(c.Query("location_id")); single != "" {
			raw = []string{single}
		}
	}

	seen := make(map[string]struct{})
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if _, ok := seen[part]; ok {
				continue
			}
			seen[part] = struct{}{}
			filter.LocationIDs = append(filter.LocationIDs, part)
		}
	}

	return filter
}

func (h *InsightHandler) GetInsights(c *gin.Context) {
	filter := parseFilter(c)
	insights, err := h.service.GetInsights(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate insights", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"insights": insights,
		"total":    len(insights),
	})
}

func (h *InsightHandler) GetLocations(c *gin.Context) {
	locations, err := h.service.GetLocations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch locations", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"locations": locations})
}
