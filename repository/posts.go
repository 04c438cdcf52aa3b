package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/krishkalaria12/blogly/models"
	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Get loads a post together with its author.
func (r *PostRepository) Get(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, translate(err))
	}
	return &post, nil
}

func (r *PostRepository) Recent(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("recent posts: %w", err)
	}
	return posts, nil
}

// Create inserts a post for an existing user. A missing owner is ErrNotFound.
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.User
		if err := tx.Select("id").First(&owner, post.UserID).Error; err != nil {
			return translate(err)
		}

		if err := tx.Omit("User").Create(post).Error; err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return ErrNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create post for user %d: %w", post.UserID, err)
	}
	return nil
}

func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	result := r.db.WithContext(ctx).
		Model(&models.Post{ID: post.ID}).
		Updates(map[string]any{
			"title":   post.Title,
			"content": post.Content,
		})
	if result.Error != nil {
		return fmt.Errorf("update post %d: %w", post.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update post %d: %w", post.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a post and returns it so callers can reference its title
// and owner afterwards.
func (r *PostRepository) Delete(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, id).Error; err != nil {
			return translate(err)
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		return nil, fmt.Errorf("delete post %d: %w", id, err)
	}

	return &post, nil
}

func (r *PostRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count posts for user %d: %w", userID, err)
	}
	return count, nil
}
