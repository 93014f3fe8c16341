package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackendString(t *testing.T) {
	assert.Equal(t, "additive", BackendAdditive.String())
	assert.Equal(t, "arima", BackendARIMA.String())
}

func TestNewModelPicksImplementation(t *testing.T) {
	if _, ok := NewModel(BackendAdditive).(additiveModel); !ok {
		t.Fatal("expected the additive implementation")
	}
	if _, ok := NewModel(BackendARIMA).(arimaModel); !ok {
		t.Fatal("expected the arima implementation")
	}
}

func TestDetectBackendOverrides(t *testing.T) {
	assert.Equal(t, BackendARIMA, DetectBackend("arima"))
	assert.Equal(t, BackendAdditive, DetectBackend("additive"))
}

func TestDetectBackendProbePasses(t *testing.T) {
	// The probe series is well behaved, so the additive model wins both with
	// no override and with an unrecognized one.
	assert.Equal(t, BackendAdditive, DetectBackend(""))
	assert.Equal(t, BackendAdditive, DetectBackend("prophet"))
}
