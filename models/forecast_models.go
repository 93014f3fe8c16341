package models

import "time"

// ForecastPoint is the predicted value for a single future day.
type ForecastPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// GlobalForecastResponse is the body of the aggregate sales forecast endpoint.
type GlobalForecastResponse struct {
	Forecast  []ForecastPoint `json:"forecast"`
	Trend     string          `json:"trend"`
	PctChange float64         `json:"pct_change"`
	Analysis  string          `json:"analysis"`
}

// ProductForecastEntry is one ranked product in the product forecast.
type ProductForecastEntry struct {
	Product   string          `json:"product"`
	ProductID int64           `json:"product_id"`
	Forecast  []ForecastPoint `json:"forecast"`
	NextMean  float64         `json:"next_mean"`
}

// ProductForecastResponse wraps the ranked product forecasts.
type ProductForecastResponse struct {
	ProductForecast []ProductForecastEntry `json:"product_forecast"`
}

// CustomerForecastResponse wraps the forecast of daily active customers.
type CustomerForecastResponse struct {
	CustomerForecast []ForecastPoint `json:"customer_forecast"`
}

// DemandChart buckets products into demand tiers for the segment chart.
type DemandChart struct {
	High   int `json:"High demand"`
	Medium int `json:"Medium demand"`
	Low    int `json:"Low demand"`
}

// SegmentSummary compares the trailing 30-day revenue window against the
// prior one. Ratio is null when the prior window had no revenue; Chart is
// omitted when no product has a recorded sale.
type SegmentSummary struct {
	Last30Sales float64      `json:"last_30_sales"`
	Prev30Sales float64      `json:"prev_30_sales"`
	Ratio       *float64     `json:"ratio"`
	Chart       *DemandChart `json:"chart,omitempty"`
}

// SegmentsResponse wraps the segment summary.
type SegmentsResponse struct {
	Segments SegmentSummary `json:"segments"`
}

// SummaryProduct is one entry of the top-products list on the dashboard summary.
type SummaryProduct struct {
	ProductID   int64   `json:"product_id"`
	Description string  `json:"description"`
	Sales       float64 `json:"sales"`
}

// MonthlySales is one month-start revenue bucket for charting.
type MonthlySales struct {
	InvoiceDate string  `json:"InvoiceDate"`
	Sales       float64 `json:"Sales"`
}

// SummaryResponse is the dashboard summary body.
type SummaryResponse struct {
	TotalSales     float64          `json:"total_sales"`
	TotalOrders    int64            `json:"total_orders"`
	TotalCustomers int64            `json:"total_customers"`
	TopProducts    []SummaryProduct `json:"top_products"`
	Monthly        []MonthlySales   `json:"monthly"`
}

// Insight contains the qualitative narrative from the Gemini model, layered
// on top of the deterministic forecast statistics.
type Insight struct {
	Summary         string    `json:"summary"`
	PositiveFactors []string  `json:"positive_factors"`
	NegativeFactors []string  `json:"negative_factors"`
	GeneratedAt     time.Time `json:"generated_at"`
}
