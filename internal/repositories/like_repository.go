package repositories

import (
	"errors"

	"github.com/PlayHaven/PlayHaven/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for media-like operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(mediaID string, userID uint) error
	HasUserLiked(mediaID string, userID uint) (bool, error)
	CountByMediaID(mediaID string) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	liked, err := r.HasUserLiked(like.MediaID, like.UserID)
	if err != nil {
		return err
	}
	if liked {
		return ErrAlreadyLiked
	}
	if err := r.db.Create(like).Error; err != nil {
		return storeError(err)
	}
	return nil
}

func (r *PostgresLikeRepository) DeleteLike(mediaID string, userID uint) error {
	err := r.db.Where("media_id = ? AND user_id = ?", mediaID, userID).
		Delete(&models.Like{}).Error
	if err != nil {
		return storeError(err)
	}
	return nil
}

func (r *PostgresLikeRepository) HasUserLiked(mediaID string, userID uint) (bool, error) {
	var like models.Like
	err := r.db.Where("media_id = ? AND user_id = ?", mediaID, userID).First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, storeError(err)
	}
	return true, nil
}

func (r *PostgresLikeRepository) CountByMediaID(mediaID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("media_id = ?", mediaID).Count(&count).Error
	if err != nil {
		return 0, storeError(err)
	}
	return count, nil
}
