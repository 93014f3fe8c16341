package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestIDKeepsCallerID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID)
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(RequestIDKey).(string))
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-ID", "caller-id-42")
	resp, err := app.Test(req)
	assert.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "caller-id-42", string(body))
	assert.Equal(t, "caller-id-42", resp.Header.Get("X-Request-ID"))
}

func TestRequestIDGeneratesWhenMissing(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID)
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest("GET", "/ping", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)

	id := resp.Header.Get("X-Request-ID")
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected a UUID request id, got %q", id)
	}
}

func TestRecoverTurnsPanicInto500(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID)
	app.Use(Recover)
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("kaboom")
	})

	req := httptest.NewRequest("GET", "/boom", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"error":"Internal server error"}`, string(body))
}
