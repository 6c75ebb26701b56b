package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/mmoutenot/latitune/internal/services"
	"github.com/mmoutenot/latitune/internal/utils"
	"gorm.io/gorm"
)

// SongHandler handles song routes
type SongHandler struct {
	DB      *gorm.DB
	Matcher services.TrackMatcher
}

// CreateSong handles PUT /api/song
// @Summary Find or create a song
// @Description Songs are deduplicated by (artist, title); provider track links
// @Description come from the EchoNest lookup when it succeeds
// @Tags Song
// @Accept x-www-form-urlencoded
// @Produce json
// @Param artist formData string true "Artist"
// @Param title formData string true "Title"
// @Param echonest_id formData string true "EchoNest song id"
// @Param album formData string true "Album"
// @Success 200 {object} utils.Envelope
// @Router /song [put]
func (h *SongHandler) CreateSong(c *fiber.Ctx) error {
	song, err := services.FindOrCreateSong(h.DB, services.SongInput{
		Artist:     field(c, "artist"),
		Title:      field(c, "title"),
		Album:      field(c, "album"),
		EchonestID: field(c, "echonest_id"),
	})
	if err != nil {
		return fail(c, err)
	}

	// Best-effort metadata lookup: a failing collaborator leaves provider
	// links empty and never aborts song creation.
	if h.Matcher != nil && len(song.Providers) == 0 {
		match, err := h.Matcher.Match(c.Context(), song.Artist, song.Title, song.EchonestID)
		if err != nil {
			log.Printf("Metadata lookup failed for %q by %q: %v", song.Title, song.Artist, err)
		} else if err := services.SetSongProviders(h.DB, song, match.Links, match.Raw); err != nil {
			log.Printf("Failed to store provider links for song %d: %v", song.ID, err)
		}
	}

	return utils.SuccessResponse(c, song)
}
