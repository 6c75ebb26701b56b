package services

import (
	"errors"

	"github.com/mmoutenot/latitune/internal/models"
	"github.com/mmoutenot/latitune/internal/types"
	"gorm.io/gorm"
)

// CreateComment annotates a blip. The blip reference must exist; the check and
// the insert share one transaction.
func CreateComment(db *gorm.DB, blipID, userID uint64, body string) (*models.Comment, error) {
	var comment models.Comment

	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Blip{}).Where("id = ?", blipID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return types.NewDomainError(types.StatusBlipDoesNotExist)
		}

		comment = models.Comment{
			BlipID: blipID,
			UserID: userID,
			Body:   body,
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Preload("Blip.Song.Providers").First(&comment, comment.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

// CommentByID fetches a comment with its blip embedded.
func CommentByID(db *gorm.DB, id uint64) (*models.Comment, error) {
	var comment models.Comment
	if err := db.Preload("Blip.Song.Providers").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewDomainError(types.StatusCommentDoesNotExist)
		}
		return nil, err
	}
	return &comment, nil
}

// CommentsForBlip lists a blip's comments newest first. Insertion order breaks
// equal-timestamp ties so the listing stays deterministic.
func CommentsForBlip(db *gorm.DB, blipID uint64) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.Preload("Blip.Song.Providers").
		Where("blip_id = ?", blipID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
