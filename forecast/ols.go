package forecast

import "math"

// solveLeastSquares fits beta minimizing ||X*beta - y||^2 via the normal
// equations. Returns false when the system is singular.
func solveLeastSquares(x [][]float64, y []float64) ([]float64, bool) {
	n := len(x)
	if n == 0 {
		return nil, false
	}
	p := len(x[0])

	xtx := make([][]float64, p)
	for i := range xtx {
		xtx[i] = make([]float64, p)
	}
	xty := make([]float64, p)
	for r := 0; r < n; r++ {
		row := x[r]
		for i := 0; i < p; i++ {
			xty[i] += row[i] * y[r]
			for j := i; j < p; j++ {
				xtx[i][j] += row[i] * row[j]
			}
		}
	}
	for i := 1; i < p; i++ {
		for j := 0; j < i; j++ {
			xtx[i][j] = xtx[j][i]
		}
	}
	return solveLinear(xtx, xty)
}

// solveLinear solves A*x = b by Gaussian elimination with partial pivoting.
// A and b are clobbered.
func solveLinear(a [][]float64, b []float64) ([]float64, bool) {
	p := len(b)
	for col := 0; col < p; col++ {
		pivot := col
		for r := col + 1; r < p; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, false
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for r := col + 1; r < p; r++ {
			f := a[r][col] / a[col][col]
			if f == 0 {
				continue
			}
			for c := col; c < p; c++ {
				a[r][c] -= f * a[col][c]
			}
			b[r] -= f * b[col]
		}
	}

	out := make([]float64, p)
	for i := p - 1; i >= 0; i-- {
		sum := b[i]
		for j := i + 1; j < p; j++ {
			sum -= a[i][j] * out[j]
		}
		out[i] = sum / a[i][i]
	}
	return out, true
}
