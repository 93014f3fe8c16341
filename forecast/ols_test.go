package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolveLeastSquaresExactLine(t *testing.T) {
	// y = 3 + 2t, noiseless.
	x := [][]float64{{1, 0}, {1, 1}, {1, 2}, {1, 3}}
	y := []float64{3, 5, 7, 9}

	beta, ok := solveLeastSquares(x, y)
	if !ok {
		t.Fatal("expected a solution")
	}
	assert.InDelta(t, 3.0, beta[0], 1e-9)
	assert.InDelta(t, 2.0, beta[1], 1e-9)
}

func TestSolveLeastSquaresOverdetermined(t *testing.T) {
	// Symmetric noise around y = 1 + t leaves the fit unchanged.
	x := [][]float64{{1, 0}, {1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 5}}
	y := []float64{1.1, 1.9, 3.1, 3.9, 5.1, 5.9}

	beta, ok := solveLeastSquares(x, y)
	if !ok {
		t.Fatal("expected a solution")
	}
	assert.InDelta(t, 1.0, beta[0], 0.1)
	assert.InDelta(t, 1.0, beta[1], 0.1)
}

func TestSolveLeastSquaresSingular(t *testing.T) {
	// Second column is a multiple of the first.
	x := [][]float64{{1, 2}, {1, 2}, {1, 2}}
	y := []float64{1, 2, 3}

	_, ok := solveLeastSquares(x, y)
	assert.False(t, ok)
}
