package post

import (
	"context"
	"time"
)

type Repository interface {
	ListRecentByAuthor(ctx context.Context, userID string, since time.Time) ([]Post, error)
}
