package middleware

import (
	"context"

	common_models "go-bizops/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

// DivisionMiddleware extracts the X-Bizops-Division header and adds it to the
// context. Widget data queries fall back to it when their config carries no
// division filter of its own.
func DivisionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		division := c.Get("X-Bizops-Division")
		if division != "" {
			ctx := context.WithValue(c.UserContext(), common_models.DivisionIDKey, division)
			c.SetUserContext(ctx)
		}
		return c.Next()
	}
}
