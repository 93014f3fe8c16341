package middleware

import (
	"log"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDKey is the locals key carrying the request id.
const RequestIDKey = "requestID"

// RequestID tags every request with a UUID, echoed in the X-Request-ID
// response header and included in panic logs. An id supplied by the caller
// is kept so upstream systems can correlate.
func RequestID(c *fiber.Ctx) error {
	id := c.Get("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	c.Locals(RequestIDKey, id)
	c.Set("X-Request-ID", id)
	return c.Next()
}

// Recover converts handler panics into a generic 500 response so one bad
// request cannot take the process down. The panic value and stack are logged
// with the request id; the client never sees internal detail.
func Recover(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			id, _ := c.Locals(RequestIDKey).(string)
			log.Printf("❌ [PANIC] request %s %s %s: %v\n%s", id, c.Method(), c.Path(), r, debug.Stack())
			err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}
	}()
	return c.Next()
}
