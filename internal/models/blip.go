package models

import (
	"time"
)

// Blip is a song dropped at a geographic point by a user. Coordinates are
// stored as supplied, no range validation. Blips are immutable once created.
type Blip struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement"`
	SongID    uint64  `gorm:"not null;index"`
	UserID    uint64  `gorm:"not null;index"`
	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`
	CreatedAt time.Time
	Song      Song `gorm:"foreignKey:SongID"`
}

// TableName overrides the table name for Blip
func (Blip) TableName() string {
	return "blips"
}

// Serialize returns the client-facing representation with the song embedded.
// The Song association must be preloaded.
func (b *Blip) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":        b.ID,
		"song":      b.Song.Serialize(),
		"user_id":   b.UserID,
		"latitude":  b.Latitude,
		"longitude": b.Longitude,
		"timestamp": b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
