package services_test

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/mmoutenot/latitune/internal/models"
	"github.com/mmoutenot/latitune/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Auto-migrate models
	err = db.AutoMigrate(
		&models.User{},
		&models.Song{},
		&models.SongProvider{},
		&models.Blip{},
		&models.Comment{},
		&models.Favorite{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// assertDomainStatus verifies an error is a domain error with the given status
func assertDomainStatus(t *testing.T, err error, status string) {
	t.Helper()

	if err == nil {
		t.Fatalf("Expected domain error %q, got nil", status)
	}

	var domainErr *types.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("Expected domain error %q, got: %v", status, err)
	}
	if domainErr.Status != status {
		t.Errorf("Expected status %q, got %q", status, domainErr.Status)
	}
}
