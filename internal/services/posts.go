package services

import (
	"fmt"

	"blogicum/internal/models"

	"gorm.io/gorm"
)

// DeletePost removes a post together with its comments in one transaction.
func DeletePost(tx *gorm.DB, postID uint) error {
	return tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments of post %d: %w", postID, err)
		}
		if err := tx.Delete(&models.Post{}, postID).Error; err != nil {
			return fmt.Errorf("delete post %d: %w", postID, err)
		}
		return nil
	})
}

// PostComments returns a post's comments oldest first with authors loaded.
func PostComments(tx *gorm.DB, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := tx.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}
