package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/postguard/postguard/pkg/domain"
	"github.com/postguard/postguard/pkg/domain/lexicon"
)

type LexiconRepository struct {
	db *gorm.DB
}

func NewLexiconRepository(db *gorm.DB) lexicon.Repository {
	return &LexiconRepository{
		db: db,
	}
}

func (r *LexiconRepository) ListActive(ctx context.Context) ([]lexicon.Entry, error) {
	var entries []lexicon.Entry
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("term ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list active lexicon entries: %w", err)
	}
	return entries, nil
}

func (r *LexiconRepository) List(ctx context.Context) ([]lexicon.Entry, error) {
	var entries []lexicon.Entry
	if err := r.db.WithContext(ctx).
		Order("severity DESC, term ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list lexicon entries: %w", err)
	}
	return entries, nil
}

func (r *LexiconRepository) Get(ctx context.Context, id uuid.UUID) (*lexicon.Entry, error) {
	entry := new(lexicon.Entry)
	if err := r.db.WithContext(ctx).First(entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("lexicon entry", id)
		}
		return nil, fmt.Errorf("failed to fetch lexicon entry: %w", err)
	}
	return entry, nil
}

func (r *LexiconRepository) Create(ctx context.Context, entry *lexicon.Entry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create lexicon entry: %w", err)
	}
	return nil
}

func (r *LexiconRepository) Update(ctx context.Context, entry *lexicon.Entry) error {
	result := r.db.WithContext(ctx).Model(&lexicon.Entry{}).
		Where("id = ?", entry.ID).
		Updates(map[string]interface{}{
			"term":       entry.Term,
			"is_pattern": entry.IsPattern,
			"severity":   entry.Severity,
			"category":   entry.Category,
			"action":     entry.Action,
			"active":     entry.Active,
			"updated_at": entry.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update lexicon entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("lexicon entry", entry.ID)
	}
	return nil
}

func (r *LexiconRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&lexicon.Entry{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete lexicon entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("lexicon entry", id)
	}
	return nil
}
