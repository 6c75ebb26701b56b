package services

import (
	"errors"

	"github.com/mmoutenot/latitune/internal/models"
	"github.com/mmoutenot/latitune/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SongInput carries the fields for a find-or-create song request.
type SongInput struct {
	Artist     string
	Title      string
	Album      string
	EchonestID string
}

// FindOrCreateSong deduplicates songs by (artist, title): creating a song with
// an existing pair returns the existing record. A concurrent identical insert
// losing the unique-index race re-reads the winner.
func FindOrCreateSong(db *gorm.DB, input SongInput) (*models.Song, error) {
	var song models.Song

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("Providers").
			Where("artist = ? AND title = ?", input.Artist, input.Title).
			First(&song).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		song = models.Song{
			Artist:     input.Artist,
			Title:      input.Title,
			Album:      input.Album,
			EchonestID: input.EchonestID,
		}
		if err := tx.Create(&song).Error; err != nil {
			if isUniqueViolation(err) {
				return tx.Preload("Providers").
					Where("artist = ? AND title = ?", input.Artist, input.Title).
					First(&song).Error
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &song, nil
}

// SetSongProviders attaches provider track links and the raw metadata payload
// to a song. Existing links for the same provider are left untouched.
func SetSongProviders(db *gorm.DB, song *models.Song, links []models.SongProvider, raw []byte) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for i := range links {
			link := models.SongProvider{
				SongID:      song.ID,
				Provider:    links[i].Provider,
				ProviderKey: links[i].ProviderKey,
			}
			if err := tx.Where("song_id = ? AND provider = ?", song.ID, link.Provider).
				FirstOrCreate(&link).Error; err != nil {
				if isUniqueViolation(err) {
					continue
				}
				return err
			}
		}

		if len(raw) > 0 {
			if err := tx.Model(song).Update("echonest_data", models.JSON{JSON: datatypes.JSON(raw)}).Error; err != nil {
				return err
			}
		}

		return tx.Preload("Providers").First(song, song.ID).Error
	})
}

// SongByID fetches a song by primary key with providers embedded.
func SongByID(db *gorm.DB, id uint64) (*models.Song, error) {
	var song models.Song
	if err := db.Preload("Providers").First(&song, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewDomainError(types.StatusSongDoesNotExist)
		}
		return nil, err
	}
	return &song, nil
}
