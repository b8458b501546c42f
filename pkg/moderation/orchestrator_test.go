package moderation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postguard/postguard/pkg/config"
	"github.com/postguard/postguard/pkg/domain/lexicon"
	domain "github.com/postguard/postguard/pkg/domain/moderation"
	"github.com/postguard/postguard/pkg/moderation"
	"github.com/postguard/postguard/pkg/types"
)

type stubFinder struct {
	entries []lexicon.Entry
	err     error
}

func (f *stubFinder) ListActive(_ context.Context) ([]lexicon.Entry, error) {
	return f.entries, f.err
}

func (f *stubFinder) Invalidate(_ context.Context) {}

type stubLogRepository struct {
	appended  []*domain.LogEntry
	appendErr error
}

func (r *stubLogRepository) Append(_ context.Context, entry *domain.LogEntry) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.appended = append(r.appended, entry)
	return nil
}

func (r *stubLogRepository) CountByAction(_ context.Context, _ domain.LogAction, _ time.Time) (int64, error) {
	return 0, nil
}

func (r *stubLogRepository) ListRecent(_ context.Context, _ int) ([]domain.LogEntry, error) {
	return nil, nil
}

func newOrchestrator(
	finder *stubFinder,
	logs *stubLogRepository,
	policy config.LookupErrorPolicy,
) *moderation.Orchestrator {
	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fixedUUID := uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")
	return moderation.NewOrchestrator(finder, logs, policy, logrus.New(), &moderation.OrchestratorOpts{
		TimeProvider: func() time.Time { return fixedTime },
		UuidProvider: func() uuid.UUID { return fixedUUID },
	})
}

func TestOrchestrator_ModerateCleanContent(t *testing.T) {
	finder := &stubFinder{entries: []lexicon.Entry{entry("badword", types.SeverityHigh, types.ActionBlock)}}
	logs := &stubLogRepository{}
	orchestrator := newOrchestrator(finder, logs, config.LookupErrorAllow)

	verdict := orchestrator.ModerateContent(context.Background(), types.ModerateContentRequest{
		Content:     "perfectly fine text",
		UserID:      "user-1",
		ContentType: types.ContentTypeTopic,
	})

	assert.True(t, verdict.Approved)
	assert.Equal(t, "perfectly fine text", verdict.Content)
	assert.Empty(t, verdict.Reason)
	assert.Empty(t, logs.appended)
}

func TestOrchestrator_ModerateBlocks(t *testing.T) {
	finder := &stubFinder{entries: []lexicon.Entry{entry("badword", types.SeverityHigh, types.ActionBlock)}}
	logs := &stubLogRepository{}
	orchestrator := newOrchestrator(finder, logs, config.LookupErrorAllow)

	verdict := orchestrator.ModerateContent(context.Background(), types.ModerateContentRequest{
		Content:     "some badword here",
		UserID:      "user-1",
		ContentType: types.ContentTypeTopic,
	})

	assert.False(t, verdict.Approved)
	assert.Contains(t, verdict.Reason, "badword")
	assert.Equal(t, types.SeverityHigh, verdict.Severity)

	require.Len(t, logs.appended, 1)
	logged := logs.appended[0]
	assert.Equal(t, domain.LogActionBlock, logged.Action)
	assert.Equal(t, "user-1", logged.UserID)
	assert.Equal(t, "new", logged.ContentID)
	assert.Equal(t, domain.TermList{"badword"}, logged.MatchedTerms)
}

func TestOrchestrator_ModerateCensors(t *testing.T) {
	finder := &stubFinder{entries: []lexicon.Entry{entry("damn", types.SeverityLow, types.ActionCensor)}}
	logs := &stubLogRepository{}
	orchestrator := newOrchestrator(finder, logs, config.LookupErrorAllow)

	verdict := orchestrator.ModerateContent(context.Background(), types.ModerateContentRequest{
		Content:     "damn this thing",
		Title:       "damn title",
		UserID:      "user-1",
		ContentType: types.ContentTypeReply,
	})

	assert.True(t, verdict.Approved)
	assert.Equal(t, "**** this thing", verdict.Content)
	assert.Equal(t, "**** title", verdict.Title)
	assert.Equal(t, types.SeverityLow, verdict.Severity)

	require.Len(t, logs.appended, 1)
	assert.Equal(t, domain.LogActionCensor, logs.appended[0].Action)
}

func TestOrchestrator_ModerateFlags(t *testing.T) {
	finder := &stubFinder{entries: []lexicon.Entry{entry("suspicious", types.SeverityMedium, types.ActionFlag)}}
	logs := &stubLogRepository{}
	orchestrator := newOrchestrator(finder, logs, config.LookupErrorAllow)

	verdict := orchestrator.ModerateContent(context.Background(), types.ModerateContentRequest{
		Content:     "a suspicious offer",
		UserID:      "user-1",
		ContentType: types.ContentTypeMessage,
		ContentID:   "msg-42",
	})

	assert.True(t, verdict.Approved)
	assert.Equal(t, "a suspicious offer", verdict.Content)
	assert.Equal(t, types.SeverityMedium, verdict.Severity)

	require.Len(t, logs.appended, 1)
	assert.Equal(t, domain.LogActionAutoFlag, logs.appended[0].Action)
	assert.Equal(t, "msg-42", logs.appended[0].ContentID)
}

func TestOrchestrator_TitleCriticalOverridesSeverity(t *testing.T) {
	finder := &stubFinder{entries: []lexicon.Entry{
		entry("mild", types.SeverityLow, types.ActionCensor),
		entry("slur", types.SeverityCritical, types.ActionBlock),
	}}
	logs := &stubLogRepository{}
	orchestrator := newOrchestrator(finder, logs, config.LookupErrorAllow)

	verdict := orchestrator.ModerateContent(context.Background(), types.ModerateContentRequest{
		Content:     "mild annoyance",
		Title:       "a slur in the title",
		UserID:      "user-1",
		ContentType: types.ContentTypeTopic,
	})

	assert.False(t, verdict.Approved)
	assert.Equal(t, types.SeverityCritical, verdict.Severity)
	assert.Contains(t, verdict.Reason, "slur")
}

func TestOrchestrator_TitleAndContentTermsMerged(t *testing.T) {
	finder := &stubFinder{entries: []lexicon.Entry{
		entry("first", types.SeverityHigh, types.ActionBlock),
		entry("second", types.SeverityHigh, types.ActionBlock),
	}}
	logs := &stubLogRepository{}
	orchestrator := newOrchestrator(finder, logs, config.LookupErrorAllow)

	orchestrator.ModerateContent(context.Background(), types.ModerateContentRequest{
		Content:     "first term and also first again",
		Title:       "second term and first",
		UserID:      "user-1",
		ContentType: types.ContentTypeTopic,
	})

	require.Len(t, logs.appended, 1)
	assert.Equal(t, domain.TermList{"first", "second"}, logs.appended[0].MatchedTerms)
}

func TestOrchestrator_LookupErrorFailsOpen(t *testing.T) {
	finder := &stubFinder{err: errors.New("database unavailable")}
	logs := &stubLogRepository{}
	orchestrator := newOrchestrator(finder, logs, config.LookupErrorAllow)

	verdict := orchestrator.ModerateContent(context.Background(), types.ModerateContentRequest{
		Content:     "anything at all",
		UserID:      "user-1",
		ContentType: types.ContentTypeTopic,
	})

	assert.True(t, verdict.Approved)
	assert.Empty(t, logs.appended)
}

func TestOrchestrator_LookupErrorFailsClosed(t *testing.T) {
	finder := &stubFinder{err: errors.New("database unavailable")}
	logs := &stubLogRepository{}
	orchestrator := newOrchestrator(finder, logs, config.LookupErrorReject)

	verdict := orchestrator.ModerateContent(context.Background(), types.ModerateContentRequest{
		Content:     "anything at all",
		UserID:      "user-1",
		ContentType: types.ContentTypeTopic,
	})

	assert.False(t, verdict.Approved)
	assert.Contains(t, verdict.Reason, "temporarily unavailable")
}

func TestOrchestrator_AuditFailureDoesNotBlockVerdict(t *testing.T) {
	finder := &stubFinder{entries: []lexicon.Entry{entry("badword", types.SeverityHigh, types.ActionBlock)}}
	logs := &stubLogRepository{appendErr: errors.New("insert failed")}
	orchestrator := newOrchestrator(finder, logs, config.LookupErrorAllow)

	verdict := orchestrator.ModerateContent(context.Background(), types.ModerateContentRequest{
		Content:     "some badword here",
		UserID:      "user-1",
		ContentType: types.ContentTypeTopic,
	})

	assert.False(t, verdict.Approved)
}

func TestOrchestrator_CheckContentFailsOpen(t *testing.T) {
	finder := &stubFinder{err: errors.New("redis down")}
	orchestrator := newOrchestrator(finder, &stubLogRepository{}, config.LookupErrorAllow)

	result := orchestrator.CheckContent(context.Background(), "whatever")

	assert.False(t, result.HasViolations)
	assert.Equal(t, types.ActionApprove, result.RecommendedAction)
}

func TestOrchestrator_CensorContentFailsOpen(t *testing.T) {
	finder := &stubFinder{err: errors.New("redis down")}
	orchestrator := newOrchestrator(finder, &stubLogRepository{}, config.LookupErrorAllow)

	censored := orchestrator.CensorContent(context.Background(), "leave me alone")

	assert.Equal(t, "leave me alone", censored)
}
