package forecast

import "math"

// arimaModel is ARIMA(1,1,1): the series is reindexed onto a complete daily
// calendar with forward-filled gaps, differenced once, and the remaining
// ARMA(1,1) structure is estimated by the Hannan-Rissanen two-stage
// regression. Coefficients are clamped below unit magnitude so the forecast
// recursion cannot diverge; degenerate regressions degrade to AR(1) and
// finally to pure drift.
type arimaModel struct{}

const (
	coefLimit = 0.98
	longARLag = 5 // order of the stage-1 autoregression that proxies innovations
)

func (arimaModel) FitPredict(s Series, horizon int) ([]Point, error) {
	if s.Len() < MinHistoryDays {
		return nil, &ModelFitError{Backend: BackendARIMA, Err: ErrInsufficientHistory}
	}

	filled := forwardFill(s)
	y := filled.Values
	last := y[len(y)-1]

	if allEqual(y) {
		return flatForecast(filled.LastDate(), last, horizon), nil
	}

	// First difference removes the level; the ARMA structure models changes.
	z := make([]float64, len(y)-1)
	for i := range z {
		z[i] = y[i+1] - y[i]
	}

	c, phi, theta, lastResid := fitARMA11(z)

	points := make([]Point, horizon)
	level := last
	zPrev := z[len(z)-1]
	eps := lastResid
	for h := 1; h <= horizon; h++ {
		zHat := c + phi*zPrev + theta*eps
		level += zHat
		points[h-1] = Point{Date: filled.LastDate().AddDate(0, 0, h), Value: level}
		zPrev = zHat
		eps = 0 // future innovations have zero expectation
	}
	return points, nil
}

// forwardFill reindexes s onto a complete daily calendar, carrying the last
// observed value through gaps.
func forwardFill(s Series) Series {
	if s.Len() == 0 {
		return s
	}
	var out Series
	cur := s.Values[0]
	i := 0
	for d := s.Dates[0]; !d.After(s.LastDate()); d = d.AddDate(0, 0, 1) {
		if i < s.Len() && s.Dates[i].Equal(d) {
			cur = s.Values[i]
			i++
		}
		out.Dates = append(out.Dates, d)
		out.Values = append(out.Values, cur)
	}
	return out
}

// fitARMA11 estimates z_t = c + phi*z_{t-1} + theta*eps_{t-1} + eps_t.
// Stage one fits a long autoregression to approximate the innovations;
// stage two regresses each value on its lag and the lagged innovation.
// The returned lastResid feeds the one-step-ahead MA term.
func fitARMA11(z []float64) (c, phi, theta, lastResid float64) {
	n := len(z)
	if n < 4 {
		// Too short for the two-stage regression; forecast the mean change.
		return mean(z), 0, 0, 0
	}

	p := longARLag
	if limit := (n - 1) / 2; p > limit {
		p = limit
	}
	if p < 1 {
		p = 1
	}
	resid := longARResiduals(z, p)

	var x [][]float64
	var yv []float64
	for t := 1; t < n; t++ {
		if math.IsNaN(resid[t-1]) {
			continue
		}
		x = append(x, []float64{1, z[t-1], resid[t-1]})
		yv = append(yv, z[t])
	}
	if len(yv) >= 4 {
		if beta, ok := solveLeastSquares(x, yv); ok && finite(beta) {
			c = beta[0]
			phi = clampCoef(beta[1])
			theta = clampCoef(beta[2])
			return c, phi, theta, lastInnovation(z, c, phi, theta)
		}
	}

	// Collinear or unstable innovations; drop the MA term.
	x = x[:0]
	yv = yv[:0]
	for t := 1; t < n; t++ {
		x = append(x, []float64{1, z[t-1]})
		yv = append(yv, z[t])
	}
	if beta, ok := solveLeastSquares(x, yv); ok && finite(beta) {
		c = beta[0]
		phi = clampCoef(beta[1])
		return c, phi, 0, lastInnovation(z, c, phi, 0)
	}

	// Constant differences end up here: pure drift.
	return mean(z), 0, 0, 0
}

// longARResiduals fits a mean-centered AR(p) and returns its residuals as
// innovation estimates. The first p positions carry NaN since they have no
// full lag window; callers skip them.
func longARResiduals(z []float64, p int) []float64 {
	n := len(z)
	mu := mean(z)

	resid := make([]float64, n)
	for i := range resid {
		resid[i] = math.NaN()
	}

	x := make([][]float64, 0, n-p)
	y := make([]float64, 0, n-p)
	for t := p; t < n; t++ {
		row := make([]float64, p)
		for i := 1; i <= p; i++ {
			row[i-1] = z[t-i] - mu
		}
		x = append(x, row)
		y = append(y, z[t]-mu)
	}

	coef, ok := solveLeastSquares(x, y)
	if !ok || !finite(coef) {
		// White-noise proxy: deviations from the mean.
		for t := range z {
			resid[t] = z[t] - mu
		}
		return resid
	}

	for t := p; t < n; t++ {
		pred := 0.0
		for i := 1; i <= p; i++ {
			pred += coef[i-1] * (z[t-i] - mu)
		}
		resid[t] = (z[t] - mu) - pred
	}
	return resid
}

// lastInnovation runs the innovation recursion under the fitted coefficients
// and returns the final residual.
func lastInnovation(z []float64, c, phi, theta float64) float64 {
	eps := 0.0
	for t := 1; t < len(z); t++ {
		eps = z[t] - c - phi*z[t-1] - theta*eps
	}
	return eps
}

func clampCoef(v float64) float64 {
	if v > coefLimit {
		return coefLimit
	}
	if v < -coefLimit {
		return -coefLimit
	}
	return v
}

func finite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
