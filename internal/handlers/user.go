package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mmoutenot/latitune/internal/middleware"
	"github.com/mmoutenot/latitune/internal/services"
	"github.com/mmoutenot/latitune/internal/utils"
	"gorm.io/gorm"
)

// UserHandler handles user routes
type UserHandler struct {
	DB *gorm.DB
}

// CreateUser handles PUT /api/user
// @Summary Register a user
// @Description Create a user identified by a unique email and rdio key
// @Tags User
// @Accept x-www-form-urlencoded
// @Produce json
// @Param first_name formData string true "First name"
// @Param last_name formData string true "Last name"
// @Param email formData string true "Email, unique"
// @Param rdio_key formData string true "Rdio identity key, unique"
// @Param url formData string true "Profile URL"
// @Param icon formData string true "Profile icon URL"
// @Success 200 {object} utils.Envelope
// @Router /user [put]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	user, err := services.CreateUser(h.DB, services.UserInput{
		FirstName: field(c, "first_name"),
		LastName:  field(c, "last_name"),
		Email:     field(c, "email"),
		RdioKey:   field(c, "rdio_key"),
		URL:       field(c, "url"),
		Icon:      field(c, "icon"),
		Password:  field(c, "password"),
	})
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, user)
}

// GetUser handles GET /api/user
// @Summary Fetch own user record
// @Tags User
// @Produce json
// @Param rdio_key query string true "Rdio identity key"
// @Success 200 {object} utils.Envelope
// @Router /user [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user := middleware.AuthenticatedUser(c)
	return utils.SuccessResponse(c, user)
}
