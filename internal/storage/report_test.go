package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invensight/backend-go/internal/domain"
)

type memoryStorage struct {
	key         string
	contentType string
	payload     []byte
}

func (m *memoryStorage) UploadObject(_ context.Context, key, contentType string, payload []byte) error {
	m.key = key
	m.contentType = contentType
	m.payload = payload
	return nil
}

func TestExportInsights(t *testing.T) {
	store := &memoryStorage{}
	exporter := NewReportExporter(store)

	insights := []domain.StrategicInsight{
		{
			ID:                "transfer-p1-a-b",
			Type:              domain.CategoryProfitOptimization,
			ActionType:        domain.ActionTransfer,
			ConfidenceScore:   0.8,
			Problem:           "Widget is overstocked at Andheri",
			RecommendedAction: "Transfer 13 units",
		},
	}

	runDate := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	key, err := exporter.ExportInsights(context.Background(), runDate, insights)
	require.NoError(t, err)

	assert.Equal(t, "insights/20250630.csv", key)
	assert.Equal(t, key, store.key)
	assert.Equal(t, "text/csv", store.contentType)

	lines := strings.Split(strings.TrimSpace(string(store.payload)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,type,action_type,confidence,problem,impact,recommended_action,roi_impact", lines[0])
	assert.Contains(t, lines[1], "transfer-p1-a-b")
	assert.Contains(t, lines[1], "0.80")
	assert.Contains(t, lines[1], "TRANSFER")
}

func TestExportInsights_EmptyRun(t *testing.T) {
	store := &memoryStorage{}
	exporter := NewReportExporter(store)

	key, err := exporter.ExportInsights(context.Background(), time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.Equal(t, "insights/20250102.csv", key)

	lines := strings.Split(strings.TrimSpace(string(store.payload)), "\n")
	assert.Len(t, lines, 1)
}
