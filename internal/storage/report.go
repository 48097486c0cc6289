package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/invensight/backend-go/internal/domain"
)

// ReportExporter renders insight runs to CSV and ships them to object
// storage, keyed by run date.
type ReportExporter struct {
	storage ObjectStorage
}

func NewReportExporter(storage ObjectStorage) *ReportExporter {
	return &ReportExporter{storage: storage}
}

func (e *ReportExporter) ExportInsights(ctx context.Context, runDate time.Time, insights []domain.StrategicInsight) (string, error) {
	payload, err := renderInsightsCSV(insights)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("insights/%s.csv", runDate.Format("20060102"))
	if err := e.storage.UploadObject(ctx, key, "text/csv", payload); err != nil {
		return "", err
	}

	return key, nil
}

func renderInsightsCSV(insights []domain.StrategicInsight) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "type", "action_type", "confidence", "problem", "impact", "recommended_action", "roi_impact"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("could not write report header: %w", err)
	}

	for _, insight := range insights {
		record := []string{
			insight.ID,
			string(insight.Type),
			string(insight.ActionType),
			strconv.FormatFloat(insight.ConfidenceScore, 'f', 2, 64),
			insight.Problem,
			insight.Impact,
			insight.RecommendedAction,
			insight.ROIImpact,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("could not write report row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("could not flush report: %w", err)
	}

	return buf.Bytes(), nil
}
