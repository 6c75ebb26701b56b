// Package services holds the entity repository operations and the external
// metadata collaborator. Every function takes the storage session explicitly;
// nothing in this package owns a global database handle.
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isUniqueViolation reports whether an error is a storage-layer uniqueness
// constraint failure. The unique indexes are the authoritative guard, so a
// check-then-insert race still surfaces as the right domain error instead of a
// raw storage error.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "Duplicate entry") || // mysql
		strings.Contains(msg, "duplicate key") // postgres, sqlserver
}
