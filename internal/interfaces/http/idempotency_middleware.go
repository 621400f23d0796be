package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/linea-stock-api/internal/application/dto"
)

// HeaderIdempotencyKey cabecera opcional para reintentos seguros de POST.
const HeaderIdempotencyKey = "Idempotency-Key"

// idempotencyStore es el contrato mínimo que necesita el middleware.
// Lo implementan cache.RedisIdempotencyStore y cache.InMemoryIdempotencyStore.
type idempotencyStore interface {
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// Idempotency devuelve un middleware que evita aplicar dos veces la misma petición.
//
// Comportamiento:
//   - Sin cabecera Idempotency-Key → pasa sin verificar.
//   - Clave ya reservada → 409 DUPLICATE_REQUEST sin ejecutar el handler.
//   - Fallo del almacén → 503 IDEMPOTENCY_UNAVAILABLE.
//   - Si el handler responde con error (status >= 400) la clave se libera para permitir el reintento.
func Idempotency(store idempotencyStore, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(HeaderIdempotencyKey)
		if key == "" || store == nil {
			return c.Next()
		}
		scoped := c.Method() + " " + c.Path() + " " + key

		ok, err := store.Reserve(c.Context(), scoped, ttl)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "IDEMPOTENCY_UNAVAILABLE",
				Message: "no se pudo verificar la clave de idempotencia, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "DUPLICATE_REQUEST",
				Message: "la petición con clave '" + key + "' ya fue procesada",
			})
		}

		err = c.Next()
		if err != nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			_ = store.Release(context.Background(), scoped)
		}
		return err
	}
}
