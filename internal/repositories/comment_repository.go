package repositories

import (
	"errors"

	"github.com/PlayHaven/PlayHaven/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for media-comment operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsByMediaID(mediaID string) ([]models.Comment, error)
	DeleteComment(id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return storeError(err)
	}
	return nil
}

func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, storeError(err)
	}
	return &comment, nil
}

// GetCommentsByMediaID returns comments newest first
func (r *PostgresCommentRepository) GetCommentsByMediaID(mediaID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("media_id = ?", mediaID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, storeError(err)
	}
	return comments, nil
}

func (r *PostgresCommentRepository) DeleteComment(id uint) error {
	if err := r.db.Delete(&models.Comment{}, id).Error; err != nil {
		return storeError(err)
	}
	return nil
}
