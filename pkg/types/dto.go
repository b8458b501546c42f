package types

// CheckContentRequest asks for a lexicon check of a single piece of text.
type CheckContentRequest struct {
	Content string `json:"content"`
}

// CensorContentRequest asks for the censored rendition of a piece of text.
type CensorContentRequest struct {
	Content string `json:"content"`
}

// ModerateContentRequest carries a full submission through the moderation
// pipeline.
type ModerateContentRequest struct {
	Content     string      `json:"content"`
	Title       string      `json:"title,omitempty"`
	UserID      string      `json:"user_id"`
	ContentType ContentType `json:"content_type"`
	ContentID   string      `json:"content_id,omitempty"`
}

// SpamCheckRequest asks for the combined heuristic, duplicate and
// rapid-posting checks for a submission.
type SpamCheckRequest struct {
	Content string `json:"content"`
	UserID  string `json:"user_id"`
}

// CreateLexiconEntryRequest adds a banned term or pattern to the lexicon.
type CreateLexiconEntryRequest struct {
	Term      string   `json:"term"`
	IsPattern bool     `json:"is_pattern"`
	Severity  Severity `json:"severity"`
	Category  string   `json:"category"`
	Action    Action   `json:"action"`
}

// UpdateLexiconEntryRequest mutates an existing lexicon entry. Nil fields are
// left untouched.
type UpdateLexiconEntryRequest struct {
	Term      *string   `json:"term,omitempty"`
	IsPattern *bool     `json:"is_pattern,omitempty"`
	Severity  *Severity `json:"severity,omitempty"`
	Category  *string   `json:"category,omitempty"`
	Action    *Action   `json:"action,omitempty"`
	Active    *bool     `json:"active,omitempty"`
}
