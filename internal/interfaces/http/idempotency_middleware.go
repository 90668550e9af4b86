package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Stockify-api/internal/application/dto"
	"github.com/jhoicas/Stockify-api/internal/infrastructure/cache"
)

const (
	// HeaderIdempotencyKey cabecera opcional en los POST del libro mayor.
	HeaderIdempotencyKey = "Idempotency-Key"
	headerReplayed       = "Idempotent-Replayed"
	maxIdempotencyKeyLen = 200
)

// IdempotencyStore reserva claves y guarda la respuesta de la primera petición.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (*cache.StoredResponse, error)
	Complete(ctx context.Context, key string, resp cache.StoredResponse) error
	Release(ctx context.Context, key string) error
}

// Idempotency reproduce la respuesta guardada cuando el cliente reintenta con la misma clave.
// Sin store o sin cabecera la petición pasa tal cual. Las respuestas 5xx liberan la clave.
func Idempotency(store IdempotencyStore, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(HeaderIdempotencyKey)
		if store == nil || raw == "" {
			return c.Next()
		}
		if len(raw) > maxIdempotencyKeyLen {
			return badRequest(c, "VALIDATION", "Idempotency-Key demasiado larga")
		}
		key := GetUserID(c) + ":" + c.Method() + ":" + c.Path() + ":" + raw
		ctx := c.Context()

		stored, err := store.Reserve(ctx, key)
		switch {
		case errors.Is(err, cache.ErrInProgress):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "REQUEST_IN_PROGRESS", Message: "una petición con la misma Idempotency-Key está en curso"})
		case err != nil:
			// Redis no disponible: se atiende sin garantía de idempotencia.
			log.Warn().Err(err).Msg("idempotencia no disponible")
			return c.Next()
		case stored != nil:
			c.Set(headerReplayed, "true")
			if stored.ContentType != "" {
				c.Set(fiber.HeaderContentType, stored.ContentType)
			}
			return c.Status(stored.Status).Send(stored.Body)
		}

		if err := c.Next(); err != nil {
			_ = store.Release(ctx, key)
			return err
		}
		status := c.Response().StatusCode()
		if status >= fiber.StatusInternalServerError {
			if err := store.Release(ctx, key); err != nil {
				log.Warn().Err(err).Msg("no se pudo liberar la clave de idempotencia")
			}
			return nil
		}
		resp := cache.StoredResponse{
			Status:      status,
			ContentType: string(c.Response().Header.ContentType()),
			Body:        append([]byte(nil), c.Response().Body()...),
		}
		if err := store.Complete(ctx, key, resp); err != nil {
			log.Warn().Err(err).Msg("no se pudo guardar la respuesta idempotente")
		}
		return nil
	}
}
