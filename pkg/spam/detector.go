package spam

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/postguard/postguard/pkg/infra/prometheus"
	"github.com/postguard/postguard/pkg/types"
)

const (
	maxLinkCount         = 5
	uppercaseRatioLimit  = 0.7
	uppercaseMinLength   = 20
	repeatedRunLength    = 10
	spamKeywordThreshold = 2
	emojiRatioLimit      = 0.3
	emojiMinLength       = 20
	shortContentLength   = 10
	shortRepeatCount     = 3
)

// defaultSpamKeywords is the fallback list; deployments override it through
// configuration.
var defaultSpamKeywords = []string{
	"buy now",
	"click here",
	"earn money fast",
	"work from home",
	"limited time offer",
	"act now",
	"free money",
	"winner",
	"congratulations you won",
	"viagra",
	"cialis",
	"casino",
	"lottery",
}

// emojiRanges are the Unicode blocks counted by the emoji-density rule.
var emojiRanges = [][2]rune{
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F300, 0x1F5FF}, // symbols and pictographs
	{0x1F680, 0x1F6FF}, // transport and map
	{0x1F700, 0x1F77F}, // alchemical
	{0x1F780, 0x1F7FF}, // geometric shapes extended
	{0x1F800, 0x1F8FF}, // supplemental arrows
	{0x1F900, 0x1F9FF}, // supplemental symbols
	{0x1FA00, 0x1FA6F}, // chess symbols
	{0x1FA70, 0x1FAFF}, // symbols and pictographs extended
	{0x2600, 0x26FF},   // miscellaneous symbols
	{0x2700, 0x27BF},   // dingbats
}

// Detector runs the rule-based spam checks. All rules are deterministic and
// evaluated in a fixed order; the first rule that fires decides the result.
type Detector struct {
	keywords     []string
	logger       *logrus.Logger
	timeProvider func() time.Time
}

type DetectorOpts struct {
	TimeProvider func() time.Time
}

func NewDetector(keywords []string, logger *logrus.Logger, opts *DetectorOpts) *Detector {
	if len(keywords) == 0 {
		keywords = defaultSpamKeywords
	}
	timeProvider := time.Now
	if opts != nil && opts.TimeProvider != nil {
		timeProvider = opts.TimeProvider
	}
	return &Detector{
		keywords:     keywords,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// DetectSpam classifies raw text. Rules, in order: link count, capitalization
// ratio, repeated character runs, spam keywords, emoji density, repetitive
// short content.
func (d *Detector) DetectSpam(content string) types.SpamCheckResult {
	trimmed := strings.TrimSpace(content)
	length := len([]rune(trimmed))

	if linkCount := countLinks(trimmed); linkCount > maxLinkCount {
		return d.spam("links", fmt.Sprintf("too many links in content (%d links)", linkCount), types.ConfidenceHigh)
	}

	if length > uppercaseMinLength && uppercaseRatio(trimmed) > uppercaseRatioLimit {
		return d.spam("capitalization", "excessive capitalization", types.ConfidenceMedium)
	}

	if hasRepeatedRun(trimmed, repeatedRunLength) {
		return d.spam("repeated_characters", "repeated identical characters", types.ConfidenceHigh)
	}

	if d.countKeywords(trimmed) >= spamKeywordThreshold {
		return d.spam("keywords", "spam keywords detected", types.ConfidenceHigh)
	}

	if length > emojiMinLength && emojiRatio(trimmed) > emojiRatioLimit {
		return d.spam("emoji", "excessive emoji usage", types.ConfidenceLow)
	}

	if length < shortContentLength && isRepeatedString(trimmed, shortRepeatCount) {
		return d.spam("short_repetition", "repetitive short content", types.ConfidenceMedium)
	}

	return types.SpamCheckResult{
		IsSpam:     false,
		Confidence: types.ConfidenceLow,
	}
}

func (d *Detector) spam(rule, reason string, confidence types.Confidence) types.SpamCheckResult {
	prometheus.SpamDetectionTotal.WithLabelValues(rule).Inc()
	d.logger.WithFields(logrus.Fields{
		"rule":   rule,
		"reason": reason,
	}).Debug("spam rule fired")
	return types.SpamCheckResult{
		IsSpam:     true,
		Reason:     reason,
		Confidence: confidence,
	}
}

func (d *Detector) countKeywords(content string) int {
	lower := strings.ToLower(content)
	count := 0
	for _, keyword := range d.keywords {
		if strings.Contains(lower, keyword) {
			count++
		}
	}
	return count
}

func countLinks(content string) int {
	lower := strings.ToLower(content)
	return strings.Count(lower, "http://") + strings.Count(lower, "https://")
}

// uppercaseRatio is the share of uppercase ASCII letters among all ASCII
// letters; 0 when the text has no letters.
func uppercaseRatio(content string) float64 {
	var letters, upper int
	for _, r := range content {
		switch {
		case r >= 'A' && r <= 'Z':
			letters++
			upper++
		case r >= 'a' && r <= 'z':
			letters++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}

func hasRepeatedRun(content string, runLength int) bool {
	var prev rune
	run := 0
	for _, r := range content {
		if r == prev {
			run++
			if run >= runLength {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

// emojiRatio is the share of emoji codepoints over all runes; 0 for empty
// text.
func emojiRatio(content string) float64 {
	runes := []rune(content)
	if len(runes) == 0 {
		return 0
	}
	emojis := 0
	for _, r := range runes {
		for _, rng := range emojiRanges {
			if r >= rng[0] && r <= rng[1] {
				emojis++
				break
			}
		}
	}
	return float64(emojis) / float64(len(runes))
}

// isRepeatedString reports whether content is some substring repeated at
// least minRepeats times.
func isRepeatedString(content string, minRepeats int) bool {
	runes := []rune(content)
	n := len(runes)
	if n == 0 {
		return false
	}
	for period := 1; period <= n/minRepeats; period++ {
		if n%period != 0 {
			continue
		}
		unit := string(runes[:period])
		if strings.Repeat(unit, n/period) == content {
			return true
		}
	}
	return false
}
