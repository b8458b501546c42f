package post

import (
	"time"

	"github.com/google/uuid"
)

// Post is a stored user submission. The pipeline only reads a user's recent
// posts to feed the duplicate and rapid-posting detectors.
type Post struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string    `json:"user_id" gorm:"index:idx_posts_user_created"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_posts_user_created"`
}

func (p Post) TableName() string {
	return "public.posts"
}
