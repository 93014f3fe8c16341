package forecast

import "time"

// additiveModel decomposes a daily series into a linear trend and a
// day-of-week effect, estimated jointly by least squares. It fits the
// observed (date, value) pairs directly, so calendar gaps need no filling.
type additiveModel struct{}

// seasonalMinObs is the fewest observations worth spending six weekday
// coefficients on; below it the fit is trend-only.
const seasonalMinObs = 14

func (additiveModel) FitPredict(s Series, horizon int) ([]Point, error) {
	n := s.Len()
	if n < MinHistoryDays {
		return nil, &ModelFitError{Backend: BackendAdditive, Err: ErrInsufficientHistory}
	}

	if allEqual(s.Values) {
		return flatForecast(s.LastDate(), s.Values[0], horizon), nil
	}

	origin := s.Dates[0]
	seasonal := n >= seasonalMinObs

	beta, ok := fitAdditive(s, origin, seasonal)
	if !ok && seasonal {
		// Not enough independent weekday signal; retry with trend only.
		seasonal = false
		beta, ok = fitAdditive(s, origin, false)
	}
	if !ok {
		return nil, &ModelFitError{Backend: BackendAdditive, Err: errSingular}
	}

	points := make([]Point, horizon)
	for h := 1; h <= horizon; h++ {
		d := s.LastDate().AddDate(0, 0, h)
		points[h-1] = Point{Date: d, Value: evalAdditive(beta, origin, d, seasonal)}
	}
	return points, nil
}

func fitAdditive(s Series, origin time.Time, seasonal bool) ([]float64, bool) {
	x := make([][]float64, s.Len())
	for i, d := range s.Dates {
		x[i] = designRow(origin, d, seasonal)
	}
	return solveLeastSquares(x, s.Values)
}

// designRow builds the regressor vector for one date: intercept, days since
// origin, and (seasonal only) six weekday dummies with Sunday as baseline.
func designRow(origin, d time.Time, seasonal bool) []float64 {
	t := float64(daysBetween(origin, d))
	if !seasonal {
		return []float64{1, t}
	}
	row := make([]float64, 8)
	row[0] = 1
	row[1] = t
	if w := int(d.Weekday()); w > 0 {
		row[1+w] = 1
	}
	return row
}

func evalAdditive(beta []float64, origin, d time.Time, seasonal bool) float64 {
	row := designRow(origin, d, seasonal)
	v := 0.0
	for i, b := range beta {
		v += b * row[i]
	}
	return v
}

func flatForecast(lastDate time.Time, value float64, horizon int) []Point {
	points := make([]Point, horizon)
	for h := 1; h <= horizon; h++ {
		points[h-1] = Point{Date: lastDate.AddDate(0, 0, h), Value: value}
	}
	return points
}

// daysBetween counts whole days from a to b; both are day-truncated UTC.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
