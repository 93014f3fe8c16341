package forecast

import (
	"log"
	"time"
)

// Backend identifies which forecasting implementation is active. The choice
// is made once at startup and never changes for the process lifetime.
type Backend int

const (
	// BackendAdditive is the primary model: linear trend plus weekly
	// seasonality fit by least squares, tolerant of calendar gaps.
	BackendAdditive Backend = iota
	// BackendARIMA is the fallback: ARIMA(1,1,1) on a forward-filled series.
	BackendARIMA
)

func (b Backend) String() string {
	if b == BackendARIMA {
		return "arima"
	}
	return "additive"
}

// Point is one forecast day.
type Point struct {
	Date  time.Time
	Value float64
}

// Model produces point predictions for the horizon calendar days following
// the last date of the input series. Implementations return exactly horizon
// points with strictly increasing dates; horizon must be positive.
type Model interface {
	FitPredict(s Series, horizon int) ([]Point, error)
}

// NewModel returns the implementation for the chosen backend.
func NewModel(b Backend) Model {
	if b == BackendARIMA {
		return arimaModel{}
	}
	return additiveModel{}
}

// DetectBackend resolves the active backend. A non-empty override
// ("additive" or "arima") forces the choice; otherwise the additive model is
// probed on a small synthetic series and ARIMA takes over if the probe fails.
func DetectBackend(override string) Backend {
	switch override {
	case "arima":
		return BackendARIMA
	case "additive":
		return BackendAdditive
	case "":
	default:
		log.Printf("⚠️ [FORECAST] Unknown backend override %q, probing instead", override)
	}

	probe := Series{}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 21; i++ {
		probe.Dates = append(probe.Dates, start.AddDate(0, 0, i))
		probe.Values = append(probe.Values, 10+float64(i%7))
	}
	if _, err := (additiveModel{}).FitPredict(probe, 7); err != nil {
		log.Printf("⚠️ [FORECAST] Additive model probe failed, falling back to ARIMA: %v", err)
		return BackendARIMA
	}
	return BackendAdditive
}
