package forecast

import (
	"fmt"
	"log"
	"sort"

	"demandcast/models"
)

// DefaultHorizon is the forecast length used when a request does not name one.
const DefaultHorizon = 30

// DefaultMaxGroups caps how many product series a single request will fit.
const DefaultMaxGroups = 200

// trendWindow is how many trailing observed days feed the recent mean.
const trendWindow = 30

// topProducts is the length of the product forecast ranking.
const topProducts = 10

// Engine runs forecasts over snapshots of the sales store. The backend is
// resolved once at startup and injected here; the engine never switches
// models mid-flight, so concurrent requests need no locking.
type Engine struct {
	backend   Backend
	model     Model
	maxGroups int
}

// NewEngine builds an engine for the given backend.
func NewEngine(backend Backend) *Engine {
	return &Engine{backend: backend, model: NewModel(backend), maxGroups: DefaultMaxGroups}
}

// SetMaxGroups overrides the per-request cap on fitted product series.
func (e *Engine) SetMaxGroups(n int) {
	if n > 0 {
		e.maxGroups = n
	}
}

// Backend reports which model implementation is active.
func (e *Engine) Backend() Backend { return e.backend }

// GlobalForecast is the outcome of a single-series forecast plus the trend
// statistics derived from it. Ephemeral: recomputed on every request.
type GlobalForecast struct {
	Points       []Point
	Trend        string
	PctChange    float64
	RecentMean   float64
	ForecastMean float64
	Analysis     string
}

// ProductForecast is one product's forecast and its ranking statistic.
type ProductForecast struct {
	ProductID int64
	Product   string
	Points    []Point
	NextMean  float64
}

// ForecastGlobal forecasts aggregate daily revenue and derives the trend
// narrative comparing recent observed demand against the horizon mean.
func (e *Engine) ForecastGlobal(rows []models.SaleRecord, horizon int) (*GlobalForecast, error) {
	if err := validateHorizon(horizon); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	series, _ := BuildDailySeries(rows, GroupNone, ValueTotal)
	s := series[GlobalKey]

	points, err := e.model.FitPredict(s, horizon)
	if err != nil {
		return nil, err
	}

	recentMean := tailMean(s.Values, trendWindow)
	forecastMean := pointsMean(points)
	pctChange := 0.0
	if recentMean != 0 {
		pctChange = (forecastMean - recentMean) / recentMean * 100
	}
	trend := classifyTrend(pctChange)

	return &GlobalForecast{
		Points:       points,
		Trend:        trend,
		PctChange:    pctChange,
		RecentMean:   recentMean,
		ForecastMean: forecastMean,
		Analysis: fmt.Sprintf(
			"Recent mean daily sales: %.2f. Forecast mean for next %d days: %.2f. Expected %s of %.1f%%.",
			recentMean, horizon, forecastMean, trend, pctChange),
	}, nil
}

// ForecastByProduct forecasts unit demand per product and ranks the top ten
// by mean predicted demand. Products with too little history or a failed fit
// are skipped; the request only fails when no data exists at all.
func (e *Engine) ForecastByProduct(rows []models.SaleRecord, names map[int64]string, horizon int) ([]ProductForecast, error) {
	if err := validateHorizon(horizon); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	series, skipped := BuildDailySeries(rows, GroupProduct, ValueQuantity)
	for _, id := range skipped {
		log.Printf("⚠️ [FORECAST] Product %d skipped: %v", id, ErrInsufficientHistory)
	}

	results := make([]ProductForecast, 0, len(series))
	for _, id := range e.groupsToFit(series) {
		points, err := e.model.FitPredict(series[id], horizon)
		if err != nil {
			log.Printf("⚠️ [FORECAST] Product %d model fit failed, skipping: %v", id, err)
			continue
		}
		name, ok := names[id]
		if !ok {
			name = fmt.Sprintf("Product #%d", id)
		}
		results = append(results, ProductForecast{
			ProductID: id,
			Product:   name,
			Points:    points,
			NextMean:  pointsMean(points),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].NextMean != results[j].NextMean {
			return results[i].NextMean > results[j].NextMean
		}
		return results[i].ProductID < results[j].ProductID
	})
	if len(results) > topProducts {
		results = results[:topProducts]
	}
	return results, nil
}

// ForecastCustomers forecasts the count of distinct active customers per day.
// No trend narrative is derived for this variant.
func (e *Engine) ForecastCustomers(rows []models.SaleRecord, horizon int) ([]Point, error) {
	if err := validateHorizon(horizon); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	series, _ := BuildDailySeries(rows, GroupNone, ValueDistinctCustomers)
	return e.model.FitPredict(series[GlobalKey], horizon)
}

// groupsToFit orders product ids deterministically and enforces the group
// cap, preferring products with the largest historical unit volume.
func (e *Engine) groupsToFit(series map[int64]Series) []int64 {
	ids := make([]int64, 0, len(series))
	for id := range series {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if len(ids) <= e.maxGroups {
		return ids
	}

	totals := make(map[int64]float64, len(ids))
	for id, s := range series {
		for _, v := range s.Values {
			totals[id] += v
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		if totals[ids[i]] != totals[ids[j]] {
			return totals[ids[i]] > totals[ids[j]]
		}
		return ids[i] < ids[j]
	})
	capped := append([]int64(nil), ids[:e.maxGroups]...)
	sort.Slice(capped, func(i, j int) bool { return capped[i] < capped[j] })
	log.Printf("⚠️ [FORECAST] %d products exceed the fit cap, forecasting the %d largest by volume", len(series), e.maxGroups)
	return capped
}

func validateHorizon(horizon int) error {
	if horizon < 1 {
		return &InvalidParameterError{Name: "days", Reason: "horizon must be a positive number of days"}
	}
	return nil
}

func tailMean(values []float64, window int) float64 {
	if len(values) > window {
		values = values[len(values)-window:]
	}
	return mean(values)
}

func pointsMean(points []Point) float64 {
	sum := 0.0
	for _, p := range points {
		sum += p.Value
	}
	return sum / float64(len(points))
}

func classifyTrend(pctChange float64) string {
	switch {
	case pctChange > 0:
		return "increase"
	case pctChange < 0:
		return "decrease"
	default:
		return "stable"
	}
}
