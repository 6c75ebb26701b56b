package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mmoutenot/latitune/internal/middleware"
	"github.com/mmoutenot/latitune/internal/models"
	"github.com/mmoutenot/latitune/internal/services"
	"github.com/mmoutenot/latitune/internal/types"
	"github.com/mmoutenot/latitune/internal/utils"
	"gorm.io/gorm"
)

// BlipHandler handles blip routes
type BlipHandler struct {
	DB *gorm.DB
}

// GetBlips handles GET /api/blip
// @Summary List, fetch, or locate blips
// @Description With latitude+longitude: the 25 nearest blips by great-circle
// @Description distance. With id: a single blip. Otherwise: every blip.
// @Tags Blip
// @Produce json
// @Param latitude query number false "Query latitude"
// @Param longitude query number false "Query longitude"
// @Param id query integer false "Blip id"
// @Success 200 {object} utils.Envelope
// @Router /blip [get]
func (h *BlipHandler) GetBlips(c *fiber.Ctx) error {
	if field(c, "latitude") != "" && field(c, "longitude") != "" {
		latitude, err := parseCoordinate(c, "latitude")
		if err != nil {
			return fail(c, err)
		}
		longitude, err := parseCoordinate(c, "longitude")
		if err != nil {
			return fail(c, err)
		}
		blips, err := services.NearestBlips(h.DB, latitude, longitude)
		if err != nil {
			return fail(c, err)
		}
		return utils.ListResponse(c, serializeBlips(blips))
	}

	if field(c, "id") != "" {
		id, err := parseKey(c, "id", types.StatusBlipDoesNotExist)
		if err != nil {
			return fail(c, err)
		}
		blip, err := services.BlipByID(h.DB, id)
		if err != nil {
			return fail(c, err)
		}
		return utils.SuccessResponse(c, blip)
	}

	blips, err := services.AllBlips(h.DB)
	if err != nil {
		return fail(c, err)
	}
	return utils.ListResponse(c, serializeBlips(blips))
}

// CreateBlip handles PUT /api/blip
// @Summary Drop a song at a coordinate
// @Tags Blip
// @Accept x-www-form-urlencoded
// @Produce json
// @Param song_id formData integer true "Song id"
// @Param latitude formData number true "Latitude"
// @Param longitude formData number true "Longitude"
// @Param rdio_key formData string true "Rdio identity key"
// @Success 200 {object} utils.Envelope
// @Router /blip [put]
func (h *BlipHandler) CreateBlip(c *fiber.Ctx) error {
	user := middleware.AuthenticatedUser(c)

	songID, err := parseKey(c, "song_id", types.StatusSongDoesNotExist)
	if err != nil {
		return fail(c, err)
	}
	latitude, err := parseCoordinate(c, "latitude")
	if err != nil {
		return fail(c, err)
	}
	longitude, err := parseCoordinate(c, "longitude")
	if err != nil {
		return fail(c, err)
	}

	blip, err := services.CreateBlip(h.DB, songID, user.ID, latitude, longitude)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, blip)
}

// serializeBlips renders a blip list for the envelope.
func serializeBlips(blips []models.Blip) []map[string]interface{} {
	objects := make([]map[string]interface{}, 0, len(blips))
	for i := range blips {
		objects = append(objects, blips[i].Serialize())
	}
	return objects
}
