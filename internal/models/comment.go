package models

import (
	"time"
)

// Comment is a free-text annotation on a blip. Immutable once created.
type Comment struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	BlipID    uint64 `gorm:"not null;index"`
	UserID    uint64 `gorm:"not null;index"`
	Body      string `gorm:"type:text;not null"`
	CreatedAt time.Time
	Blip      Blip `gorm:"foreignKey:BlipID"`
}

// TableName overrides the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// Serialize returns the client-facing representation with the blip embedded.
// The Blip association (and its Song) must be preloaded.
func (c *Comment) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":        c.ID,
		"blip":      c.Blip.Serialize(),
		"comment":   c.Body,
		"user_id":   c.UserID,
		"timestamp": c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
