package middleware

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

// APIVersionLocalKey is the context-locals key under which handlers may
// stash the X-Api-Version request header for inclusion in the request log.
const APIVersionLocalKey = "api_version"

// Logger is a middleware that logs each HTTP request as one JSON object
// per line on stdout. Fields:
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - latency (in milliseconds, as float)
// - api_version (only when a handler recorded one)
func Logger() fiber.Handler {
	return LoggerWithWriter(os.Stdout)
}

// LoggerWithWriter is Logger with an injectable destination, so tests can
// capture output with a buffer and other environments can redirect it.
func LoggerWithWriter(w io.Writer) fiber.Handler {
	enc := json.NewEncoder(w)

	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Process request
		err := c.Next()

		// Collect fields after handler executed to capture final status
		rid, _ := c.Locals(RequestIDLocalKey).(string)
		entry := map[string]any{
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"latency":    float64(time.Since(start).Milliseconds()),
		}
		if v, ok := c.Locals(APIVersionLocalKey).(string); ok && v != "" {
			entry["api_version"] = v
		}

		_ = enc.Encode(entry)

		return err
	}
}
