package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mmoutenot/latitune/internal/config"
	"github.com/mmoutenot/latitune/internal/middleware"
	"github.com/mmoutenot/latitune/internal/services"
	"github.com/mmoutenot/latitune/internal/types"
	"github.com/mmoutenot/latitune/internal/utils"
	"gorm.io/gorm"
)

// Register mounts all API routes under /api. Every protected route composes
// the required-field check, then identity resolution, then the handler; a
// failed check means the later stages never run.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, matcher services.TrackMatcher) {
	userHandler := &UserHandler{DB: db}
	songHandler := &SongHandler{DB: db, Matcher: matcher}
	blipHandler := &BlipHandler{DB: db}
	commentHandler := &CommentHandler{DB: db}
	favoriteHandler := &FavoriteHandler{DB: db}
	adminHandler := &AdminHandler{DB: db, Cfg: cfg}

	api := app.Group("/api")

	api.Put("/user",
		middleware.RequireFields("first_name", "last_name", "email", "rdio_key", "url", "icon"),
		userHandler.CreateUser)
	api.Get("/user",
		middleware.RequireFields("rdio_key"),
		middleware.RequireUser(db),
		userHandler.GetUser)

	api.Get("/blip", blipHandler.GetBlips)
	api.Put("/blip",
		middleware.RequireFields("song_id", "longitude", "latitude", "rdio_key"),
		middleware.RequireUser(db),
		blipHandler.CreateBlip)

	api.Put("/song",
		middleware.RequireFields("artist", "title", "echonest_id", "album"),
		songHandler.CreateSong)

	api.Put("/blip/comment",
		middleware.RequireFields("blip_id", "comment", "rdio_key"),
		middleware.RequireUser(db),
		commentHandler.CreateComment)
	api.Get("/blip/comment", commentHandler.GetComments)

	api.Put("/blip/favorite",
		middleware.RequireFields("blip_id", "rdio_key"),
		middleware.RequireUser(db),
		favoriteHandler.CreateFavorite)
	api.Get("/blip/favorite", favoriteHandler.GetFavorites)
	api.Delete("/blip/favorite",
		middleware.RequireFields("blip_id", "rdio_key"),
		middleware.RequireUser(db),
		favoriteHandler.DeleteFavorite)

	api.Get("/tabularasa", adminHandler.TabulaRasa)
	api.Get("/health", adminHandler.GetHealth)
}

// ErrorHandler is the global Fiber error handler. Expected domain errors ride
// on HTTP 200 inside the envelope; everything else is a real server failure
// with a generic envelope, never raw internal error text.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var domainErr *types.DomainError
	if errors.As(err, &domainErr) {
		return utils.ErrorResponse(c, domainErr.Status)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
		return c.Status(fiberErr.Code).JSON(utils.Envelope{
			Meta:    utils.Meta{Status: types.StatusError, Error: fiberErr.Message},
			Objects: []map[string]interface{}{},
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(utils.Envelope{
		Meta: utils.Meta{
			Status: types.StatusError,
			Error:  types.StatusMessage(types.StatusError),
		},
		Objects: []map[string]interface{}{},
	})
}
