package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/postguard/postguard/pkg/domain/moderation"
)

type ModerationLogRepository struct {
	db *gorm.DB
}

func NewModerationLogRepository(db *gorm.DB) moderation.Repository {
	return &ModerationLogRepository{
		db: db,
	}
}

func (r *ModerationLogRepository) Append(ctx context.Context, entry *moderation.LogEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append moderation log: %w", err)
	}
	return nil
}

func (r *ModerationLogRepository) CountByAction(
	ctx context.Context,
	action moderation.LogAction,
	since time.Time,
) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&moderation.LogEntry{}).
		Where("action = ? AND created_at >= ?", action, since).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count moderation logs: %w", err)
	}
	return count, nil
}

func (r *ModerationLogRepository) ListRecent(ctx context.Context, limit int) ([]moderation.LogEntry, error) {
	var entries []moderation.LogEntry
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list moderation logs: %w", err)
	}
	return entries, nil
}
