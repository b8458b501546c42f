package types

import "time"

// Severity classifies how serious a lexicon violation is. Severities are
// totally ordered: low < medium < high < critical.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// Rank returns the ordinal position of the severity. Unknown severities rank
// below low so a corrupted row can never escalate a verdict.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return -1
}

func (s Severity) IsValid() bool {
	_, ok := severityRank[s]
	return ok
}

// MaxSeverity returns the higher ranked of the two severities.
func MaxSeverity(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// Action is the policy response tied to a matched lexicon entry.
// Priority when multiple entries match: block > flag > censor > approve.
type Action string

const (
	ActionApprove Action = "approve"
	ActionCensor  Action = "censor"
	ActionFlag    Action = "flag"
	ActionBlock   Action = "block"
)

var actionRank = map[Action]int{
	ActionApprove: 0,
	ActionCensor:  1,
	ActionFlag:    2,
	ActionBlock:   3,
}

func (a Action) Rank() int {
	if r, ok := actionRank[a]; ok {
		return r
	}
	return -1
}

func (a Action) IsValid() bool {
	_, ok := actionRank[a]
	return ok
}

// MaxAction returns the higher priority of the two actions.
func MaxAction(a, b Action) Action {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// Confidence is the qualitative certainty attached to a spam determination.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ContentType identifies the kind of user submission being moderated.
type ContentType string

const (
	ContentTypeTopic   ContentType = "topic"
	ContentTypeReply   ContentType = "reply"
	ContentTypeMessage ContentType = "message"
)

func (c ContentType) IsValid() bool {
	switch c {
	case ContentTypeTopic, ContentTypeReply, ContentTypeMessage:
		return true
	}
	return false
}

// ModerationResult is the outcome of matching one piece of text against the
// active lexicon.
type ModerationResult struct {
	HasViolations     bool     `json:"has_violations"`
	MatchedTerms      []string `json:"matched_terms"`
	HighestSeverity   Severity `json:"highest_severity"`
	RecommendedAction Action   `json:"recommended_action"`
}

// SpamCheckResult is the outcome of a single spam heuristic, duplicate or
// rapid-posting check.
type SpamCheckResult struct {
	IsSpam     bool       `json:"is_spam"`
	Reason     string     `json:"reason,omitempty"`
	Confidence Confidence `json:"confidence"`
}

// ModerationVerdict is the final decision for a submission. When Approved is
// false, Reason carries a human-readable message naming the matched terms.
type ModerationVerdict struct {
	Approved bool     `json:"approved"`
	Content  string   `json:"content"`
	Title    string   `json:"title,omitempty"`
	Reason   string   `json:"reason,omitempty"`
	Severity Severity `json:"severity,omitempty"`
}

// RecentPost is a prior submission by the same author, used by the duplicate
// and rapid-posting detectors.
type RecentPost struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
