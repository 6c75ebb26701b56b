package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mmoutenot/latitune/internal/middleware"
	"github.com/mmoutenot/latitune/internal/services"
	"github.com/mmoutenot/latitune/internal/types"
	"github.com/mmoutenot/latitune/internal/utils"
	"gorm.io/gorm"
)

// CommentHandler handles blip comment routes
type CommentHandler struct {
	DB *gorm.DB
}

// CreateComment handles PUT /api/blip/comment
// @Summary Comment on a blip
// @Tags Comment
// @Accept x-www-form-urlencoded
// @Produce json
// @Param blip_id formData integer true "Blip id"
// @Param comment formData string true "Comment text"
// @Param rdio_key formData string true "Rdio identity key"
// @Success 200 {object} utils.Envelope
// @Router /blip/comment [put]
func (h *CommentHandler) CreateComment(c *fiber.Ctx) error {
	user := middleware.AuthenticatedUser(c)

	blipID, err := parseKey(c, "blip_id", types.StatusBlipDoesNotExist)
	if err != nil {
		return fail(c, err)
	}

	comment, err := services.CreateComment(h.DB, blipID, user.ID, field(c, "comment"))
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, comment)
}

// GetComments handles GET /api/blip/comment
// @Summary Fetch a comment or list a blip's comments
// @Description With id: a single comment. With blip_id: that blip's comments,
// @Description newest first.
// @Tags Comment
// @Produce json
// @Param id query integer false "Comment id"
// @Param blip_id query integer false "Blip id"
// @Success 200 {object} utils.Envelope
// @Router /blip/comment [get]
func (h *CommentHandler) GetComments(c *fiber.Ctx) error {
	if field(c, "id") != "" {
		id, err := parseKey(c, "id", types.StatusCommentDoesNotExist)
		if err != nil {
			return fail(c, err)
		}
		comment, err := services.CommentByID(h.DB, id)
		if err != nil {
			return fail(c, err)
		}
		return utils.SuccessResponse(c, comment)
	}

	if field(c, "blip_id") != "" {
		blipID, err := parseKey(c, "blip_id", types.StatusBlipDoesNotExist)
		if err != nil {
			return fail(c, err)
		}
		comments, err := services.CommentsForBlip(h.DB, blipID)
		if err != nil {
			return fail(c, err)
		}
		objects := make([]map[string]interface{}, 0, len(comments))
		for i := range comments {
			objects = append(objects, comments[i].Serialize())
		}
		return utils.ListResponse(c, objects)
	}

	return utils.ErrorResponse(c, types.StatusMissingParameters)
}
