package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/postguard/postguard/pkg/domain/post"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) post.Repository {
	return &PostRepository{
		db: db,
	}
}

func (r *PostRepository) ListRecentByAuthor(
	ctx context.Context,
	userID string,
	since time.Time,
) ([]post.Post, error) {
	var posts []post.Post
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at > ?", userID, since).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent posts: %w", err)
	}
	return posts, nil
}
