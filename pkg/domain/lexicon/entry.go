package lexicon

import (
	"time"

	"github.com/google/uuid"

	"github.com/postguard/postguard/pkg/types"
)

// Entry is a banned term or pattern with its associated policy. Entries are
// administered out of band and read-only to the moderation pipeline.
type Entry struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Term      string         `json:"term" gorm:"index"`
	IsPattern bool           `json:"is_pattern"`
	Severity  types.Severity `json:"severity"`
	Category  string         `json:"category"`
	Action    types.Action   `json:"action"`
	Active    bool           `json:"active" gorm:"index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (e Entry) TableName() string {
	return "public.lexicon_entries"
}

// IsEnforceable reports whether the entry should participate in matching.
func (e Entry) IsEnforceable() bool {
	return e.Active && e.Term != "" && e.Action != types.ActionApprove
}
