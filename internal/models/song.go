package models

import (
	"time"
)

// Song is a catalog entry deduplicated by (artist, title). EchonestData holds
// the raw payload returned by the metadata lookup at creation time, when one
// succeeded.
type Song struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Artist       string `gorm:"size:80;not null;index:idx_song_artist_title,unique"`
	Title        string `gorm:"size:120;not null;index:idx_song_artist_title,unique"`
	Album        string `gorm:"size:80"`
	EchonestID   string `gorm:"size:20"`
	EchonestData JSON   `gorm:"type:json"`
	CreatedAt    time.Time
	Providers    []SongProvider `gorm:"foreignKey:SongID"`
	Blips        []Blip         `gorm:"foreignKey:SongID"`
}

// SongProvider links a Song to a track identifier on an external streaming
// service, at most one link per (song, provider).
type SongProvider struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	SongID      uint64 `gorm:"not null;index:idx_song_provider,unique"`
	Provider    string `gorm:"size:20;not null;index:idx_song_provider,unique"`
	ProviderKey string `gorm:"size:50;not null"`
}

// TableName overrides the table name for Song
func (Song) TableName() string {
	return "songs"
}

// TableName overrides the table name for SongProvider
func (SongProvider) TableName() string {
	return "song_providers"
}

// Serialize returns the client-facing representation, providers embedded.
func (s *Song) Serialize() map[string]interface{} {
	providers := make([]map[string]interface{}, 0, len(s.Providers))
	for i := range s.Providers {
		providers = append(providers, s.Providers[i].Serialize())
	}
	return map[string]interface{}{
		"id":          s.ID,
		"artist":      s.Artist,
		"title":       s.Title,
		"album":       s.Album,
		"echonest_id": s.EchonestID,
		"providers":   providers,
	}
}

// Serialize returns the client-facing representation of a provider link.
func (p *SongProvider) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"provider":     p.Provider,
		"provider_key": p.ProviderKey,
	}
}
