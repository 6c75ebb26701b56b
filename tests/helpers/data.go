package helpers

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/mmoutenot/latitune/internal/models"
	"gorm.io/gorm"
)

// NewRdioKey returns a unique Rdio identity key for test fixtures.
func NewRdioKey() string {
	return "rdio-" + uuid.New().String()[:8]
}

// NewEmail returns a unique email for test fixtures.
func NewEmail() string {
	return fmt.Sprintf("%s@example.com", uuid.New().String()[:8])
}

// CreateTestUser creates a test user directly via GORM
func CreateTestUser(t *testing.T, db *gorm.DB, firstName, lastName string) *models.User {
	t.Helper()
	user := models.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     NewEmail(),
		RdioKey:   NewRdioKey(),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return &user
}

// CreateTestSong creates a test song directly via GORM
func CreateTestSong(t *testing.T, db *gorm.DB, artist, title string) *models.Song {
	t.Helper()
	song := models.Song{
		Artist: artist,
		Title:  title,
	}
	if err := db.Create(&song).Error; err != nil {
		t.Fatalf("Failed to create song: %v", err)
	}
	return &song
}

// CreateTestBlip creates a test blip directly via GORM
func CreateTestBlip(t *testing.T, db *gorm.DB, song *models.Song, user *models.User, latitude, longitude float64) *models.Blip {
	t.Helper()
	blip := models.Blip{
		SongID:    song.ID,
		UserID:    user.ID,
		Latitude:  latitude,
		Longitude: longitude,
	}
	if err := db.Create(&blip).Error; err != nil {
		t.Fatalf("Failed to create blip: %v", err)
	}
	return &blip
}
