package moderation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	applexicon "github.com/postguard/postguard/pkg/app/lexicon"
	"github.com/postguard/postguard/pkg/config"
	domain "github.com/postguard/postguard/pkg/domain/moderation"
	"github.com/postguard/postguard/pkg/infra/prometheus"
	"github.com/postguard/postguard/pkg/types"
)

// Orchestrator runs the full moderation pipeline for a submission: lexicon
// checks on content and title, severity and action resolution, censoring,
// and the audit trail.
type Orchestrator struct {
	finder       applexicon.Finder
	logs         domain.Repository
	matcher      *Matcher
	censor       *Censor
	onLookupErr  config.LookupErrorPolicy
	logger       *logrus.Logger
	timeProvider func() time.Time
	uuidProvider func() uuid.UUID
}

type OrchestratorOpts struct {
	TimeProvider func() time.Time
	UuidProvider func() uuid.UUID
}

func NewOrchestrator(
	finder applexicon.Finder,
	logs domain.Repository,
	onLookupErr config.LookupErrorPolicy,
	logger *logrus.Logger,
	opts *OrchestratorOpts,
) *Orchestrator {
	timeProvider := time.Now
	uuidProvider := uuid.New
	if opts != nil && opts.TimeProvider != nil {
		timeProvider = opts.TimeProvider
	}
	if opts != nil && opts.UuidProvider != nil {
		uuidProvider = opts.UuidProvider
	}

	matcher := NewMatcher(logger)
	return &Orchestrator{
		finder:       finder,
		logs:         logs,
		matcher:      matcher,
		censor:       NewCensor(matcher),
		onLookupErr:  onLookupErr,
		logger:       logger,
		timeProvider: timeProvider,
		uuidProvider: uuidProvider,
	}
}

// CheckContent matches a single piece of text against the active lexicon.
// Lexicon fetch failures fail open: the text is treated as violation-free.
func (o *Orchestrator) CheckContent(ctx context.Context, content string) types.ModerationResult {
	entries, err := o.finder.ListActive(ctx)
	if err != nil {
		o.lookupFailed(err)
		return types.ModerationResult{
			MatchedTerms:      []string{},
			HighestSeverity:   types.SeverityLow,
			RecommendedAction: types.ActionApprove,
		}
	}
	return o.matcher.Match(content, entries)
}

// CensorContent returns the censored rendition of the text. On lexicon fetch
// failure the text is returned unchanged.
func (o *Orchestrator) CensorContent(ctx context.Context, content string) string {
	entries, err := o.finder.ListActive(ctx)
	if err != nil {
		o.lookupFailed(err)
		return content
	}
	return o.censor.CensorContent(content, entries)
}

// ModerateContent produces the final verdict for a submission and records the
// audit entry for any violation before returning.
func (o *Orchestrator) ModerateContent(ctx context.Context, params types.ModerateContentRequest) types.ModerationVerdict {
	entries, err := o.finder.ListActive(ctx)
	if err != nil {
		o.lookupFailed(err)
		if o.onLookupErr == config.LookupErrorReject {
			return types.ModerationVerdict{
				Approved: false,
				Content:  params.Content,
				Title:    params.Title,
				Reason:   "content moderation is temporarily unavailable, please try again later",
			}
		}
		entries = nil
	}

	contentCheck := o.matcher.Match(params.Content, entries)

	var titleCheck *types.ModerationResult
	if params.Title != "" {
		check := o.matcher.Match(params.Title, entries)
		titleCheck = &check
	}

	highestSeverity := contentCheck.HighestSeverity
	if titleCheck != nil && titleCheck.HighestSeverity == types.SeverityCritical {
		highestSeverity = types.SeverityCritical
	}

	finalAction := contentCheck.RecommendedAction
	if titleCheck != nil {
		finalAction = types.MaxAction(finalAction, titleCheck.RecommendedAction)
	}

	matchedTerms := mergeTerms(contentCheck, titleCheck)

	if contentCheck.HasViolations || (titleCheck != nil && titleCheck.HasViolations) {
		o.appendLog(ctx, params, finalAction, matchedTerms, highestSeverity)
	}

	prometheus.ModerationVerdictTotal.WithLabelValues(string(finalAction), string(params.ContentType)).Inc()

	switch finalAction {
	case types.ActionBlock:
		return types.ModerationVerdict{
			Approved: false,
			Content:  params.Content,
			Title:    params.Title,
			Reason: fmt.Sprintf(
				"your content contains inappropriate language and cannot be published. please remove: %s",
				strings.Join(matchedTerms, ", "),
			),
			Severity: highestSeverity,
		}
	case types.ActionCensor:
		verdict := types.ModerationVerdict{
			Approved: true,
			Content:  o.censor.CensorContent(params.Content, entries),
			Severity: highestSeverity,
		}
		if params.Title != "" {
			verdict.Title = o.censor.CensorContent(params.Title, entries)
		}
		return verdict
	case types.ActionFlag:
		return types.ModerationVerdict{
			Approved: true,
			Content:  params.Content,
			Title:    params.Title,
			Severity: highestSeverity,
		}
	default:
		return types.ModerationVerdict{
			Approved: true,
			Content:  params.Content,
			Title:    params.Title,
		}
	}
}

// appendLog writes the audit entry. Failures are logged and swallowed; the
// verdict is never blocked on the audit trail.
func (o *Orchestrator) appendLog(
	ctx context.Context,
	params types.ModerateContentRequest,
	finalAction types.Action,
	matchedTerms []string,
	severity types.Severity,
) {
	contentID := params.ContentID
	if contentID == "" {
		contentID = "new"
	}

	entry := &domain.LogEntry{
		ID:           o.uuidProvider(),
		ContentType:  params.ContentType,
		ContentID:    contentID,
		UserID:       params.UserID,
		Action:       logAction(finalAction),
		MatchedTerms: matchedTerms,
		Severity:     severity,
		Reason:       fmt.Sprintf("matched terms: %s", strings.Join(matchedTerms, ", ")),
		CreatedAt:    o.timeProvider(),
	}

	if err := o.logs.Append(ctx, entry); err != nil {
		prometheus.AuditLogFailureTotal.Inc()
		o.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":      params.UserID,
			"content_type": params.ContentType,
			"action":       entry.Action,
		}).Warn("failed to append moderation log")
	}
}

func (o *Orchestrator) lookupFailed(err error) {
	prometheus.LexiconLookupErrorTotal.Inc()
	o.logger.WithError(err).Error("failed to fetch active lexicon")
}

func logAction(action types.Action) domain.LogAction {
	switch action {
	case types.ActionBlock:
		return domain.LogActionBlock
	case types.ActionFlag:
		return domain.LogActionAutoFlag
	default:
		return domain.LogActionCensor
	}
}

func mergeTerms(contentCheck types.ModerationResult, titleCheck *types.ModerationResult) []string {
	merged := make([]string, 0, len(contentCheck.MatchedTerms))
	seen := make(map[string]struct{})
	for _, term := range contentCheck.MatchedTerms {
		if _, ok := seen[term]; !ok {
			seen[term] = struct{}{}
			merged = append(merged, term)
		}
	}
	if titleCheck != nil {
		for _, term := range titleCheck.MatchedTerms {
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				merged = append(merged, term)
			}
		}
	}
	return merged
}
