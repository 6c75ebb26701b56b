package models

import (
	"strings"
	"time"
)

// User is an account identified by a unique email and a unique Rdio key. The
// Rdio key doubles as the API identity credential; PasswordHash only exists for
// clients still using the legacy user_id+password scheme.
type User struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	FirstName    string `gorm:"size:120"`
	LastName     string `gorm:"size:120"`
	Email        string `gorm:"size:120;uniqueIndex;not null"`
	RdioKey      string `gorm:"size:50;uniqueIndex;not null"`
	URL          string `gorm:"size:120"`
	Icon         string `gorm:"size:120"`
	PasswordHash string `gorm:"size:120"`
	CreatedAt    time.Time
	Blips        []Blip `gorm:"foreignKey:UserID"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// Name joins the first and last name for serialization.
func (u *User) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Serialize returns the client-facing representation. The password hash is
// never included.
func (u *User) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":       u.ID,
		"name":     u.Name(),
		"email":    u.Email,
		"rdio_key": u.RdioKey,
		"url":      u.URL,
		"icon":     u.Icon,
	}
}
