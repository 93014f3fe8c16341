package forecast

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData is returned when the sales store has no rows to work with.
	ErrNoData = errors.New("no sales data available")

	// ErrInsufficientHistory marks a series covering fewer than
	// MinHistoryDays distinct days. Batch operations skip such groups
	// instead of failing the request.
	ErrInsufficientHistory = errors.New("insufficient history")

	errSingular = errors.New("singular design matrix")
)

// ModelFitError reports a numerical failure while fitting a model to a
// series. Batch operations log it and drop the group; single-series
// operations propagate it to the caller.
type ModelFitError struct {
	Backend Backend
	Err     error
}

func (e *ModelFitError) Error() string {
	return fmt.Sprintf("%s model fit failed: %v", e.Backend, e.Err)
}

func (e *ModelFitError) Unwrap() error { return e.Err }

// InvalidParameterError rejects a bad request parameter before any
// computation runs.
type InvalidParameterError struct {
	Name   string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Name, e.Reason)
}
