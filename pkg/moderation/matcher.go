package moderation

import (
	"regexp"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/postguard/postguard/pkg/domain/lexicon"
	"github.com/postguard/postguard/pkg/types"
)

// Matcher evaluates content against lexicon entries. Compiled expressions are
// cached per entry ID; an edited entry replaces its stale pattern on the next
// use, so the cache never holds more than one pattern per entry.
type Matcher struct {
	logger   *logrus.Logger
	compiled sync.Map // entry ID -> *compiledPattern
}

// compiledPattern records what was compiled for an entry. A nil re marks a
// malformed pattern, so the failure is logged once instead of on every check.
type compiledPattern struct {
	term      string
	isPattern bool
	re        *regexp.Regexp
}

func NewMatcher(logger *logrus.Logger) *Matcher {
	return &Matcher{
		logger: logger,
	}
}

// Match runs every enforceable entry against content and aggregates the
// result. A malformed pattern never aborts the match; the entry is skipped
// and the rest of the lexicon still applies.
func (m *Matcher) Match(content string, entries []lexicon.Entry) types.ModerationResult {
	result := types.ModerationResult{
		MatchedTerms:      []string{},
		HighestSeverity:   types.SeverityLow,
		RecommendedAction: types.ActionApprove,
	}

	seen := make(map[string]struct{})
	for _, entry := range entries {
		if !entry.IsEnforceable() {
			continue
		}
		re := m.pattern(entry)
		if re == nil || !re.MatchString(content) {
			continue
		}

		result.HasViolations = true
		if _, dup := seen[entry.Term]; !dup {
			seen[entry.Term] = struct{}{}
			result.MatchedTerms = append(result.MatchedTerms, entry.Term)
		}
		result.HighestSeverity = types.MaxSeverity(result.HighestSeverity, entry.Severity)
		result.RecommendedAction = types.MaxAction(result.RecommendedAction, entry.Action)
	}

	return result
}

// pattern returns the compiled expression for the entry, or nil when the
// entry's pattern is malformed.
func (m *Matcher) pattern(entry lexicon.Entry) *regexp.Regexp {
	key := entry.ID.String()
	if cached, ok := m.compiled.Load(key); ok {
		cp, ok := cached.(*compiledPattern)
		if ok && cp.term == entry.Term && cp.isPattern == entry.IsPattern {
			return cp.re
		}
	}

	var expr string
	if entry.IsPattern {
		expr = "(?i)" + entry.Term
	} else {
		// Whole-word, case-insensitive match for plain terms.
		expr = `(?i)\b` + regexp.QuoteMeta(entry.Term) + `\b`
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		m.logger.WithError(err).WithFields(logrus.Fields{
			"entry_id": entry.ID.String(),
			"term":     entry.Term,
		}).Warn("skipping lexicon entry with malformed pattern")
		m.compiled.Store(key, &compiledPattern{term: entry.Term, isPattern: entry.IsPattern})
		return nil
	}

	m.compiled.Store(key, &compiledPattern{term: entry.Term, isPattern: entry.IsPattern, re: re})
	return re
}
