package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const localError = "internal_error"

// RequestLogger registra cada petición; las 5xx con el error interno que las causó.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		status := c.Response().StatusCode()

		evt := log.Info()
		if status >= fiber.StatusInternalServerError || chainErr != nil {
			evt = log.Error()
			if err, ok := c.Locals(localError).(error); ok {
				evt = evt.Err(err)
			} else if chainErr != nil {
				evt = evt.Err(chainErr)
			}
		}
		evt.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return chainErr
	}
}
