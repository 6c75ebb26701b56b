package models

// Favorite is a user's bookmark of a blip, at most one per (user, blip). The
// composite unique index is the authoritative guard against duplicates under
// concurrent identical requests.
type Favorite struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement"`
	UserID uint64 `gorm:"not null;index:idx_favorite_user_blip,unique"`
	BlipID uint64 `gorm:"not null;index:idx_favorite_user_blip,unique"`
}

// TableName overrides the table name for Favorite
func (Favorite) TableName() string {
	return "favorites"
}

// Serialize returns the client-facing representation.
func (f *Favorite) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":      f.ID,
		"user_id": f.UserID,
		"blip_id": f.BlipID,
	}
}
