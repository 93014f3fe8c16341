package forecast

import (
	"math"
	"sort"
	"time"

	"demandcast/models"
)

// segmentWindow is the width of each revenue comparison window, in days.
const segmentWindow = 30

// Tiers counts products per demand tier.
type Tiers struct {
	High   int
	Medium int
	Low    int
}

// SegmentSummary compares the trailing revenue window against the one before
// it. Ratio is nil when the prior window had no revenue; Tiers is nil when no
// row carries a product id.
type SegmentSummary struct {
	Last30Total float64
	Prev30Total float64
	Ratio       *float64
	Tiers       *Tiers
}

// Segment computes the revenue-window comparison and demand tiers. It is
// independent of the forecast model. The anchor date is the newest invoice
// date in the data, so a fixed dataset always yields the same summary no
// matter when the request runs.
func Segment(rows []models.SaleRecord) (*SegmentSummary, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	var today time.Time
	for _, row := range rows {
		if d := truncateDay(row.InvoiceDate); d.After(today) {
			today = d
		}
	}
	cutRecent := today.AddDate(0, 0, -segmentWindow)
	cutPrev := today.AddDate(0, 0, -2*segmentWindow)

	summary := &SegmentSummary{}
	perProduct := make(map[int64]float64)
	for _, row := range rows {
		day := truncateDay(row.InvoiceDate)
		// Recent window is inclusive on both ends, prior window half-open.
		if !day.Before(cutRecent) {
			summary.Last30Total += row.Total
		} else if !day.Before(cutPrev) {
			summary.Prev30Total += row.Total
		}
		if row.ProductID != nil {
			perProduct[*row.ProductID] += row.Total
		}
	}
	if summary.Prev30Total != 0 {
		r := summary.Last30Total / summary.Prev30Total
		summary.Ratio = &r
	}

	if len(perProduct) > 0 {
		totals := make([]float64, 0, len(perProduct))
		for _, t := range perProduct {
			totals = append(totals, t)
		}
		sort.Float64s(totals)
		q1 := quantile(totals, 0.33)
		q2 := quantile(totals, 0.66)

		tiers := &Tiers{}
		for _, t := range perProduct {
			switch {
			case t >= q2:
				tiers.High++
			case t >= q1:
				tiers.Medium++
			default:
				tiers.Low++
			}
		}
		summary.Tiers = tiers
	}

	return summary, nil
}

// quantile returns the q-th quantile of sorted values, interpolating
// linearly between the two nearest ranks.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
