package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader header de correlación de la request.
const RequestIDHeader = "X-Request-Id"

// LoggingMiddleware asigna un id de correlación a cada request (o respeta el
// que ya viene en el header) y loguea método, ruta, status y latencia.
func LoggingMiddleware(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDHeader, requestID)
		c.Locals("request_id", requestID)

		inicio := time.Now()
		err := c.Next()

		evento := logger.Info()
		status := c.Response().StatusCode()
		if err != nil || status >= fiber.StatusInternalServerError {
			evento = logger.Error().Err(err)
		}
		evento.
			Str("request_id", requestID).
			Str("metodo", c.Method()).
			Str("ruta", c.Path()).
			Int("status", status).
			Dur("latencia", time.Since(inicio)).
			Msg("Request procesada")

		return err
	}
}
