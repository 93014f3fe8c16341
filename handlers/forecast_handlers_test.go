package handlers

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"demandcast/forecast"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// runParseHorizon exercises parseHorizon through a real request context.
func runParseHorizon(t *testing.T, url string) (int, error) {
	t.Helper()
	app := fiber.New()
	var days int
	var perr error
	app.Get("/f", func(c *fiber.Ctx) error {
		days, perr = parseHorizon(c)
		return c.SendString("ok")
	})

	_, err := app.Test(httptest.NewRequest("GET", url, nil))
	assert.NoError(t, err)
	return days, perr
}

func TestParseHorizonDefault(t *testing.T) {
	days, err := runParseHorizon(t, "/f")
	assert.NoError(t, err)
	assert.Equal(t, forecast.DefaultHorizon, days)
}

func TestParseHorizonExplicit(t *testing.T) {
	days, err := runParseHorizon(t, "/f?days=14")
	assert.NoError(t, err)
	assert.Equal(t, 14, days)
}

func TestParseHorizonRejectsNonInteger(t *testing.T) {
	_, err := runParseHorizon(t, "/f?days=soon")
	var invalid *forecast.InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
	assert.Equal(t, "days", invalid.Name)
}

func TestParseHorizonRejectsNonPositive(t *testing.T) {
	for _, url := range []string{"/f?days=0", "/f?days=-3"} {
		_, err := runParseHorizon(t, url)
		var invalid *forecast.InvalidParameterError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidParameterError for %s, got %v", url, err)
		}
	}
}

func TestStatusForError(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, statusForError(forecast.ErrNoData))
	assert.Equal(t, fiber.StatusBadRequest, statusForError(&forecast.InvalidParameterError{Name: "days", Reason: "x"}))
	assert.Equal(t, fiber.StatusInternalServerError, statusForError(&forecast.ModelFitError{Backend: forecast.BackendAdditive, Err: errors.New("singular")}))
	assert.Equal(t, fiber.StatusInternalServerError, statusForError(errors.New("db gone")))
}

func TestRespondErrorNoDataBody(t *testing.T) {
	app := fiber.New()
	app.Get("/e", func(c *fiber.Ctx) error {
		return respondError(c, forecast.ErrNoData)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/e", nil))
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"error":"No sales data available"}`, string(body))
}

func TestRespondErrorInvalidParameterBody(t *testing.T) {
	app := fiber.New()
	app.Get("/e", func(c *fiber.Ctx) error {
		return respondError(c, &forecast.InvalidParameterError{Name: "days", Reason: "must be an integer"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/e", nil))
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"error":"invalid parameter \"days\": must be an integer"}`, string(body))
}

func TestToForecastPoints(t *testing.T) {
	points := []forecast.Point{
		{Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Value: 12.5},
		{Date: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), Value: 13},
	}

	wire := toForecastPoints(points)
	assert.Len(t, wire, 2)
	assert.Equal(t, "2024-05-01", wire[0].Date)
	assert.Equal(t, 12.5, wire[0].Value)
	assert.Equal(t, "2024-05-02", wire[1].Date)
}

func TestUnknownRouteNotFound(t *testing.T) {
	app := fiber.New()
	// No routes registered; anything under the API prefix must 404.
	req := httptest.NewRequest("GET", "/api/v1/unknown", nil)
	resp, _ := app.Test(req)
	assert.Equal(t, 404, resp.StatusCode)
}
