package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracingMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(TracingMiddleware())

	var traceID any
	app.Get("/ping", func(c *fiber.Ctx) error {
		traceID = c.Locals("traceID")
		return c.SendString("pong")
	})

	res, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()

	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	// The span context is propagated even with the no-op tracer.
	assert.NotEmpty(t, res.Header.Get("X-Trace-ID"))
	assert.NotNil(t, traceID)
}
