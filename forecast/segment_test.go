package forecast

import (
	"testing"

	"demandcast/models"

	"github.com/stretchr/testify/assert"
)

func TestSegmentWindowRatio(t *testing.T) {
	var rows []models.SaleRecord
	// Recent window: June 1-30, 100 per day. The June 30 row anchors "today".
	d := day("2024-06-01")
	for i := 0; i < 30; i++ {
		rows = append(rows, models.SaleRecord{InvoiceDate: d.AddDate(0, 0, i), Total: 100})
	}
	// Prior window: May 1-30, 50 per day.
	d = day("2024-05-01")
	for i := 0; i < 30; i++ {
		rows = append(rows, models.SaleRecord{InvoiceDate: d.AddDate(0, 0, i), Total: 50})
	}

	summary, err := Segment(rows)
	assert.NoError(t, err)
	assert.Equal(t, 3000.0, summary.Last30Total)
	assert.Equal(t, 1500.0, summary.Prev30Total)
	if summary.Ratio == nil {
		t.Fatal("expected a ratio")
	}
	assert.InDelta(t, 2.0, *summary.Ratio, 1e-9)
}

func TestSegmentWindowBoundaries(t *testing.T) {
	rows := []models.SaleRecord{
		{InvoiceDate: day("2024-06-30"), Total: 1},  // anchor
		{InvoiceDate: day("2024-05-31"), Total: 10}, // exactly 30 days back: recent
		{InvoiceDate: day("2024-05-01"), Total: 20}, // exactly 60 days back: prior
		{InvoiceDate: day("2024-04-30"), Total: 99}, // older than both windows
	}

	summary, err := Segment(rows)
	assert.NoError(t, err)
	assert.Equal(t, 11.0, summary.Last30Total)
	assert.Equal(t, 20.0, summary.Prev30Total)
}

func TestSegmentNilRatioWithoutPriorRevenue(t *testing.T) {
	rows := []models.SaleRecord{
		{InvoiceDate: day("2024-06-29"), Total: 40},
		{InvoiceDate: day("2024-06-30"), Total: 60},
	}

	summary, err := Segment(rows)
	assert.NoError(t, err)
	assert.Equal(t, 100.0, summary.Last30Total)
	assert.Equal(t, 0.0, summary.Prev30Total)
	assert.Nil(t, summary.Ratio)
}

func TestSegmentNoData(t *testing.T) {
	_, err := Segment(nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestSegmentTierCounts(t *testing.T) {
	d := day("2024-06-30")
	var rows []models.SaleRecord
	for pid := int64(1); pid <= 6; pid++ {
		rows = append(rows, models.SaleRecord{InvoiceDate: d, ProductID: i64(pid), Total: float64(pid)})
	}

	summary, err := Segment(rows)
	assert.NoError(t, err)
	if summary.Tiers == nil {
		t.Fatal("expected demand tiers")
	}
	assert.Equal(t, 2, summary.Tiers.High)
	assert.Equal(t, 2, summary.Tiers.Medium)
	assert.Equal(t, 2, summary.Tiers.Low)
	assert.Equal(t, 6, summary.Tiers.High+summary.Tiers.Medium+summary.Tiers.Low)
}

func TestSegmentSingleProductIsHighDemand(t *testing.T) {
	rows := []models.SaleRecord{
		{InvoiceDate: day("2024-06-30"), ProductID: i64(7), Total: 5},
	}

	summary, err := Segment(rows)
	assert.NoError(t, err)
	assert.Equal(t, &Tiers{High: 1}, summary.Tiers)
}

func TestSegmentNoProductsNoTiers(t *testing.T) {
	rows := []models.SaleRecord{
		{InvoiceDate: day("2024-06-30"), Total: 100},
	}

	summary, err := Segment(rows)
	assert.NoError(t, err)
	assert.Nil(t, summary.Tiers)
}

func TestSegmentTiersSpanAllHistory(t *testing.T) {
	// Tier totals include sales outside the comparison windows.
	rows := []models.SaleRecord{
		{InvoiceDate: day("2024-06-30"), ProductID: i64(1), Total: 1},
		{InvoiceDate: day("2024-01-01"), ProductID: i64(2), Total: 500},
	}

	summary, err := Segment(rows)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, summary.Last30Total)
	if summary.Tiers == nil {
		t.Fatal("expected demand tiers")
	}
	assert.Equal(t, 2, summary.Tiers.High+summary.Tiers.Medium+summary.Tiers.Low)
}
