package forecast

import (
	"sort"
	"time"

	"demandcast/models"
)

// GlobalKey indexes the single ungrouped series in a BuildDailySeries result.
const GlobalKey int64 = -1

// MinHistoryDays is the fewest distinct days of data a series may cover and
// still be worth fitting a model to.
const MinHistoryDays = 3

// GroupBy selects how rows are partitioned into series.
type GroupBy int

const (
	GroupNone GroupBy = iota
	GroupProduct
)

// ValueField selects which measure is aggregated per day.
type ValueField int

const (
	ValueTotal ValueField = iota
	ValueQuantity
	ValueDistinctCustomers
)

// Series is a date-indexed sequence of daily aggregates, strictly ascending
// by date. Days without sales are absent except in the distinct-customer
// series, which is dense with zero counts.
type Series struct {
	Dates  []time.Time
	Values []float64
}

// Len returns the number of observations.
func (s Series) Len() int { return len(s.Dates) }

// LastDate returns the date of the final observation.
func (s Series) LastDate() time.Time { return s.Dates[len(s.Dates)-1] }

// BuildDailySeries aggregates raw transaction rows into daily series.
//
// With GroupProduct, rows without a product id are ignored and any product
// whose series covers fewer than MinHistoryDays distinct days is excluded;
// the ids of the excluded products are returned so callers can log the skip.
// Aggregation is order-independent: shuffling the input rows yields
// identical series.
func BuildDailySeries(rows []models.SaleRecord, groupBy GroupBy, field ValueField) (map[int64]Series, []int64) {
	if field == ValueDistinctCustomers {
		return map[int64]Series{GlobalKey: buildCustomerSeries(rows)}, nil
	}

	buckets := make(map[int64]map[time.Time]float64)
	for _, row := range rows {
		key := GlobalKey
		if groupBy == GroupProduct {
			if row.ProductID == nil {
				continue
			}
			key = *row.ProductID
		}
		day := truncateDay(row.InvoiceDate)
		if buckets[key] == nil {
			buckets[key] = make(map[time.Time]float64)
		}

		v := row.Total
		if field == ValueQuantity {
			// A nil qty still counts the day as observed, contributing zero.
			v = 0
			if row.Qty != nil {
				v = float64(*row.Qty)
			}
		}
		buckets[key][day] += v
	}

	series := make(map[int64]Series, len(buckets))
	var insufficient []int64
	for key, days := range buckets {
		if groupBy == GroupProduct && len(days) < MinHistoryDays {
			insufficient = append(insufficient, key)
			continue
		}
		series[key] = seriesFromBuckets(days)
	}
	sort.Slice(insufficient, func(i, j int) bool { return insufficient[i] < insufficient[j] })
	return series, insufficient
}

func seriesFromBuckets(days map[time.Time]float64) Series {
	dates := make([]time.Time, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	values := make([]float64, len(dates))
	for i, d := range dates {
		values[i] = days[d]
	}
	return Series{Dates: dates, Values: values}
}

// buildCustomerSeries counts distinct customer ids per day. The series is
// dense between the first and last sale date: a day with sales but no
// customer ids, or no sales at all, counts zero active customers.
func buildCustomerSeries(rows []models.SaleRecord) Series {
	if len(rows) == 0 {
		return Series{}
	}

	perDay := make(map[time.Time]map[int64]struct{})
	var minDay, maxDay time.Time
	first := true
	for _, row := range rows {
		day := truncateDay(row.InvoiceDate)
		if first || day.Before(minDay) {
			minDay = day
		}
		if first || day.After(maxDay) {
			maxDay = day
		}
		first = false

		if perDay[day] == nil {
			perDay[day] = make(map[int64]struct{})
		}
		if row.CustomerID != nil {
			perDay[day][*row.CustomerID] = struct{}{}
		}
	}

	var s Series
	for day := minDay; !day.After(maxDay); day = day.AddDate(0, 0, 1) {
		s.Dates = append(s.Dates, day)
		s.Values = append(s.Values, float64(len(perDay[day])))
	}
	return s
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

func allEqual(v []float64) bool {
	for _, x := range v[1:] {
		if x != v[0] {
			return false
		}
	}
	return true
}
