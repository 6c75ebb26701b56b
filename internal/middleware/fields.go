package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mmoutenot/latitune/internal/types"
	"github.com/mmoutenot/latitune/internal/utils"
)

// RequireFields validates that every declared field is present in the request,
// from either the query string or a form body. Any absent field short-circuits
// with MISSING_PARAMETERS before authentication or the handler can run. The
// check is pure; an empty value counts as absent.
func RequireFields(names ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, name := range names {
			if c.FormValue(name) == "" {
				return utils.ErrorResponse(c, types.StatusMissingParameters)
			}
		}
		return c.Next()
	}
}
