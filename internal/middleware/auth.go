package middleware

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/mmoutenot/latitune/internal/auth"
	"github.com/mmoutenot/latitune/internal/models"
	"github.com/mmoutenot/latitune/internal/services"
	"github.com/mmoutenot/latitune/internal/types"
	"github.com/mmoutenot/latitune/internal/utils"
	"gorm.io/gorm"
)

// userKey is the context key for the authenticated user.
const userKey = "user"

// RequireUser resolves the acting user from the rdio_key identity field. Trust
// sits with the external identity provider, so no password check happens here;
// an unknown key is INVALID_AUTHENTICATION. The resolved user record is stored
// in the request context for the wrapped handler.
func RequireUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rdioKey := c.FormValue("rdio_key")
		if rdioKey == "" {
			return utils.ErrorResponse(c, types.StatusMissingParameters)
		}

		user, err := services.UserByRdioKey(db, rdioKey)
		if err != nil {
			return authFailure(c, err)
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// RequireUserWithPassword resolves the acting user from the legacy
// user_id+password identity fields, verifying the password against the
// credential store.
func RequireUserWithPassword(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := strconv.ParseUint(c.FormValue("user_id"), 10, 64)
		if err != nil {
			return utils.ErrorResponse(c, types.StatusUserDoesNotExist)
		}

		user, err := services.UserByID(db, userID)
		if err != nil {
			return authFailure(c, err)
		}

		if !auth.CheckPassword(c.FormValue("password"), user.PasswordHash) {
			return utils.ErrorResponse(c, types.StatusInvalidAuth)
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// AuthenticatedUser returns the user resolved by the auth middleware, or nil
// when the route was not wrapped.
func AuthenticatedUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}

// authFailure translates a user-resolution error into the envelope. Domain
// errors map to their status; anything else propagates to the global handler.
func authFailure(c *fiber.Ctx, err error) error {
	var domainErr *types.DomainError
	if errors.As(err, &domainErr) {
		return utils.ErrorResponse(c, domainErr.Status)
	}
	return err
}
