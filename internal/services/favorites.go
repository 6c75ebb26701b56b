package services

import (
	"errors"

	"github.com/mmoutenot/latitune/internal/models"
	"github.com/mmoutenot/latitune/internal/types"
	"gorm.io/gorm"
)

// CreateFavorite bookmarks a blip for a user, idempotently: creating the same
// (user, blip) favorite twice returns the existing record. The blip reference
// must exist. A concurrent identical insert losing the unique-index race
// re-reads the winner.
func CreateFavorite(db *gorm.DB, userID, blipID uint64) (*models.Favorite, error) {
	var favorite models.Favorite

	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Blip{}).Where("id = ?", blipID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return types.NewDomainError(types.StatusBlipDoesNotExist)
		}

		err := tx.Where("user_id = ? AND blip_id = ?", userID, blipID).First(&favorite).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		favorite = models.Favorite{UserID: userID, BlipID: blipID}
		if err := tx.Create(&favorite).Error; err != nil {
			if isUniqueViolation(err) {
				return tx.Where("user_id = ? AND blip_id = ?", userID, blipID).First(&favorite).Error
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &favorite, nil
}

// DeleteFavorite removes a user's bookmark of a blip. Scoping the delete to
// the authenticated user means only the owner can remove a favorite. One-shot:
// deleting an absent favorite is FAVORITE_DOES_NOT_EXIST.
func DeleteFavorite(db *gorm.DB, userID, blipID uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND blip_id = ?", userID, blipID).Delete(&models.Favorite{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return types.NewDomainError(types.StatusFavoriteDoesNotExist)
		}
		return nil
	})
}

// FavoritedBlips lists the blips a user has favorited, ordered by blip id
// ascending.
func FavoritedBlips(db *gorm.DB, userID uint64) ([]models.Blip, error) {
	var favorites []models.Favorite
	if err := db.Where("user_id = ?", userID).Order("blip_id ASC").Find(&favorites).Error; err != nil {
		return nil, err
	}

	blipIDs := make([]uint64, 0, len(favorites))
	for i := range favorites {
		blipIDs = append(blipIDs, favorites[i].BlipID)
	}
	if len(blipIDs) == 0 {
		return []models.Blip{}, nil
	}

	var blips []models.Blip
	err := db.Preload("Song.Providers").
		Where("id IN ?", blipIDs).
		Order("id ASC").
		Find(&blips).Error
	if err != nil {
		return nil, err
	}
	return blips, nil
}

// FavoritingUsers lists the users who favorited a blip, ordered by user id
// ascending.
func FavoritingUsers(db *gorm.DB, blipID uint64) ([]models.User, error) {
	var favorites []models.Favorite
	if err := db.Where("blip_id = ?", blipID).Order("user_id ASC").Find(&favorites).Error; err != nil {
		return nil, err
	}

	userIDs := make([]uint64, 0, len(favorites))
	for i := range favorites {
		userIDs = append(userIDs, favorites[i].UserID)
	}
	if len(userIDs) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	if err := db.Where("id IN ?", userIDs).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
