package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mmoutenot/latitune/internal/middleware"
	"github.com/mmoutenot/latitune/internal/services"
	"github.com/mmoutenot/latitune/internal/types"
	"github.com/mmoutenot/latitune/internal/utils"
	"gorm.io/gorm"
)

// FavoriteHandler handles blip favorite routes
type FavoriteHandler struct {
	DB *gorm.DB
}

// CreateFavorite handles PUT /api/blip/favorite
// @Summary Favorite a blip
// @Description Idempotent: favoriting the same blip twice returns the same
// @Description record.
// @Tags Favorite
// @Accept x-www-form-urlencoded
// @Produce json
// @Param blip_id formData integer true "Blip id"
// @Param rdio_key formData string true "Rdio identity key"
// @Success 200 {object} utils.Envelope
// @Router /blip/favorite [put]
func (h *FavoriteHandler) CreateFavorite(c *fiber.Ctx) error {
	user := middleware.AuthenticatedUser(c)

	blipID, err := parseKey(c, "blip_id", types.StatusBlipDoesNotExist)
	if err != nil {
		return fail(c, err)
	}

	favorite, err := services.CreateFavorite(h.DB, user.ID, blipID)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, favorite)
}

// GetFavorites handles GET /api/blip/favorite
// @Summary List favoriting users or favorited blips
// @Description With blip_id: the users who favorited that blip, user id
// @Description ascending. With rdio_key: the blips that user favorited, blip
// @Description id ascending.
// @Tags Favorite
// @Produce json
// @Param blip_id query integer false "Blip id"
// @Param rdio_key query string false "Rdio identity key"
// @Success 200 {object} utils.Envelope
// @Router /blip/favorite [get]
func (h *FavoriteHandler) GetFavorites(c *fiber.Ctx) error {
	if field(c, "blip_id") != "" {
		blipID, err := parseKey(c, "blip_id", types.StatusBlipDoesNotExist)
		if err != nil {
			return fail(c, err)
		}
		users, err := services.FavoritingUsers(h.DB, blipID)
		if err != nil {
			return fail(c, err)
		}
		objects := make([]map[string]interface{}, 0, len(users))
		for i := range users {
			objects = append(objects, users[i].Serialize())
		}
		return utils.ListResponse(c, objects)
	}

	if field(c, "rdio_key") != "" {
		user, err := services.UserByRdioKey(h.DB, field(c, "rdio_key"))
		if err != nil {
			return fail(c, err)
		}
		blips, err := services.FavoritedBlips(h.DB, user.ID)
		if err != nil {
			return fail(c, err)
		}
		return utils.ListResponse(c, serializeBlips(blips))
	}

	return utils.ErrorResponse(c, types.StatusMissingParameters)
}

// DeleteFavorite handles DELETE /api/blip/favorite
// @Summary Remove own favorite of a blip
// @Tags Favorite
// @Accept x-www-form-urlencoded
// @Produce json
// @Param blip_id formData integer true "Blip id"
// @Param rdio_key formData string true "Rdio identity key"
// @Success 200 {object} utils.Envelope
// @Router /blip/favorite [delete]
func (h *FavoriteHandler) DeleteFavorite(c *fiber.Ctx) error {
	user := middleware.AuthenticatedUser(c)

	blipID, err := parseKey(c, "blip_id", types.StatusBlipDoesNotExist)
	if err != nil {
		return fail(c, err)
	}

	if err := services.DeleteFavorite(h.DB, user.ID, blipID); err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c)
}
