package lexicon

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/postguard/postguard/pkg/types"
)

var (
	ErrInvalidSeverity = errors.New("invalid severity, must be 'low', 'medium', 'high' or 'critical'")
	ErrInvalidAction   = errors.New("invalid action, must be 'censor', 'flag' or 'block'")
	ErrEmptyTerm       = errors.New("lexicon term cannot be empty")
)

type Repository interface {
	ListActive(ctx context.Context) ([]Entry, error)
	List(ctx context.Context) ([]Entry, error)
	Get(ctx context.Context, id uuid.UUID) (*Entry, error)
	Create(ctx context.Context, entry *Entry) error
	Update(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Validate rejects entries whose policy fields fall outside the supported
// vocabulary before they reach the datastore.
func Validate(entry *Entry) error {
	if entry.Term == "" {
		return ErrEmptyTerm
	}
	if !entry.Severity.IsValid() {
		return ErrInvalidSeverity
	}
	if entry.Action != types.ActionCensor && entry.Action != types.ActionFlag && entry.Action != types.ActionBlock {
		return ErrInvalidAction
	}
	return nil
}
