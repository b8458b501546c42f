package moderation

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/postguard/postguard/pkg/domain/lexicon"
	"github.com/postguard/postguard/pkg/types"
)

func (m *Matcher) compiledCount() int {
	count := 0
	m.compiled.Range(func(_, _ interface{}) bool {
		count++
		return true
	})
	return count
}

func TestMatcher_EditedTermRecompiled(t *testing.T) {
	matcher := NewMatcher(logrus.New())
	e := lexicon.Entry{
		ID:       uuid.New(),
		Term:     "oldterm",
		Severity: types.SeverityHigh,
		Action:   types.ActionBlock,
		Active:   true,
	}

	result := matcher.Match("contains oldterm here", []lexicon.Entry{e})
	assert.True(t, result.HasViolations)

	e.Term = "newterm"
	result = matcher.Match("contains oldterm here", []lexicon.Entry{e})
	assert.False(t, result.HasViolations)
	result = matcher.Match("contains newterm here", []lexicon.Entry{e})
	assert.True(t, result.HasViolations)
}

func TestMatcher_EditedEntryKeepsOnePatternCached(t *testing.T) {
	matcher := NewMatcher(logrus.New())
	e := lexicon.Entry{
		ID:       uuid.New(),
		Term:     "term0",
		Severity: types.SeverityLow,
		Action:   types.ActionCensor,
		Active:   true,
	}

	for i := 0; i < 20; i++ {
		e.Term = fmt.Sprintf("term%d", i)
		matcher.Match("some content with term5 inside", []lexicon.Entry{e})
	}

	assert.Equal(t, 1, matcher.compiledCount())
}

func TestMatcher_MalformedPatternReplacedAfterEdit(t *testing.T) {
	matcher := NewMatcher(logrus.New())
	e := lexicon.Entry{
		ID:        uuid.New(),
		Term:      `[unclosed`,
		IsPattern: true,
		Severity:  types.SeverityHigh,
		Action:    types.ActionBlock,
		Active:    true,
	}

	result := matcher.Match("anything [unclosed", []lexicon.Entry{e})
	assert.False(t, result.HasViolations)

	e.Term = `b[a4]d`
	result = matcher.Match("a b4d word", []lexicon.Entry{e})
	assert.True(t, result.HasViolations)
	assert.Equal(t, 1, matcher.compiledCount())
}
