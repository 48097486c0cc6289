package drive

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSalesCSV_GroupsRowsBySale(t *testing.T) {
	input := strings.Join([]string{
		"sale_id,date,location_id,product_id,quantity",
		"s-1,2025-06-01 10:30:00,andheri,p-1,2",
		"s-1,2025-06-01 10:30:00,andheri,p-2,1",
		"s-2,2025-06-02,borivali,p-1,5",
	}, "\n")

	sales, err := parseSalesCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, sales, 2)

	first := sales[0]
	assert.Equal(t, "s-1", first.ID)
	assert.Equal(t, "andheri", first.LocationID)
	assert.Equal(t, time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC), first.SoldAt)
	require.Len(t, first.Items, 2)
	assert.Equal(t, "p-1", first.Items[0].ProductID)
	assert.Equal(t, 2, first.Items[0].Quantity)
	assert.Equal(t, "p-2", first.Items[1].ProductID)

	second := sales[1]
	assert.Equal(t, "s-2", second.ID)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), second.SoldAt)
	require.Len(t, second.Items, 1)
	assert.Equal(t, 5, second.Items[0].Quantity)
}

func TestParseSalesCSV_HeaderIsCaseInsensitive(t *testing.T) {
	input := strings.Join([]string{
		"Sale_ID, Date ,LOCATION_ID,Product_ID,Quantity",
		"s-1,2025-06-01,andheri,p-1,3",
	}, "\n")

	sales, err := parseSalesCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, 3, sales[0].Items[0].Quantity)
}

func TestParseSalesCSV_MissingColumn(t *testing.T) {
	input := strings.Join([]string{
		"sale_id,date,product_id,quantity",
		"s-1,2025-06-01,p-1,3",
	}, "\n")

	_, err := parseSalesCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "location_id")
}

func TestParseSalesCSV_InvalidRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"empty sale id", ",2025-06-01,andheri,p-1,3"},
		{"bad quantity", "s-1,2025-06-01,andheri,p-1,three"},
		{"bad date", "s-1,june first,andheri,p-1,3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "sale_id,date,location_id,product_id,quantity\n" + tt.row
			_, err := parseSalesCSV(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestParseSalesCSV_EmptyFile(t *testing.T) {
	input := "sale_id,date,location_id,product_id,quantity\n"

	sales, err := parseSalesCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, sales)
}
