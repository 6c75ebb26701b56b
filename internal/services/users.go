package services

import (
	"errors"

	"github.com/mmoutenot/latitune/internal/auth"
	"github.com/mmoutenot/latitune/internal/models"
	"github.com/mmoutenot/latitune/internal/types"
	"gorm.io/gorm"
)

// UserInput carries the registration fields for a new user. Password is
// optional; when present the hash is stored for the legacy identity scheme.
type UserInput struct {
	FirstName string
	LastName  string
	Email     string
	RdioKey   string
	URL       string
	Icon      string
	Password  string
}

// CreateUser registers a new user. A taken rdio_key yields USER_EXISTS, a
// taken email EMAIL_EXISTS. The existence checks and the insert run in one
// transaction; the unique indexes back them up under concurrency.
func CreateUser(db *gorm.DB, input UserInput) (*models.User, error) {
	user := models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		RdioKey:   input.RdioKey,
		URL:       input.URL,
		Icon:      input.Icon,
	}

	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("rdio_key = ?", input.RdioKey).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return types.NewDomainError(types.StatusUserExists)
		}

		if err := tx.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return types.NewDomainError(types.StatusEmailExists)
		}

		if err := tx.Create(&user).Error; err != nil {
			if isUniqueViolation(err) {
				return types.NewDomainError(types.StatusUserExists)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UserByRdioKey resolves a user by the external-provider identity key.
func UserByRdioKey(db *gorm.DB, rdioKey string) (*models.User, error) {
	var user models.User
	if err := db.Where("rdio_key = ?", rdioKey).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewDomainError(types.StatusInvalidAuth)
		}
		return nil, err
	}
	return &user, nil
}

// UserByID fetches a user by primary key.
func UserByID(db *gorm.DB, id uint64) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewDomainError(types.StatusUserDoesNotExist)
		}
		return nil, err
	}
	return &user, nil
}
