package moderation

import (
	"context"
	"time"
)

type Repository interface {
	Append(ctx context.Context, entry *LogEntry) error
	CountByAction(ctx context.Context, action LogAction, since time.Time) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]LogEntry, error)
}
