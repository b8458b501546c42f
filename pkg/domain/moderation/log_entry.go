package moderation

import (
	"time"

	"github.com/google/uuid"

	"github.com/postguard/postguard/pkg/types"
)

// LogAction is the action recorded in the audit trail. Flagging performed by
// the pipeline is recorded as auto_flag to distinguish it from moderator
// decisions.
type LogAction string

const (
	LogActionAutoFlag   LogAction = "auto_flag"
	LogActionManualFlag LogAction = "manual_flag"
	LogActionApprove    LogAction = "approve"
	LogActionBlock      LogAction = "block"
	LogActionCensor     LogAction = "censor"
)

// LogEntry is an append-only audit record. Entries are written once per
// flagged, blocked or censored submission and never mutated.
type LogEntry struct {
	ID           uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	ContentType  types.ContentType `json:"content_type"`
	ContentID    string            `json:"content_id"`
	UserID       string            `json:"user_id" gorm:"index"`
	Action       LogAction         `json:"action" gorm:"index"`
	MatchedTerms TermList          `json:"matched_terms" gorm:"type:jsonb"`
	Severity     types.Severity    `json:"severity"`
	Reason       string            `json:"reason"`
	ModeratorID  string            `json:"moderator_id,omitempty"`
	CreatedAt    time.Time         `json:"created_at" gorm:"index"`
}

func (l LogEntry) TableName() string {
	return "public.moderation_logs"
}
