package moderation

import (
	"strings"
	"unicode/utf8"

	"github.com/postguard/postguard/pkg/domain/lexicon"
)

const maskRune = "*"

// Censor rewrites content by masking every lexicon match with a same-length
// run of asterisks, leaving all other text untouched.
type Censor struct {
	matcher *Matcher
}

func NewCensor(matcher *Matcher) *Censor {
	return &Censor{
		matcher: matcher,
	}
}

// CensorContent masks each occurrence of every enforceable entry. The mask
// has one asterisk per masked rune, so the output stays position-stable with
// the input.
func (c *Censor) CensorContent(content string, entries []lexicon.Entry) string {
	censored := content
	for _, entry := range entries {
		if !entry.IsEnforceable() {
			continue
		}
		re := c.matcher.pattern(entry)
		if re == nil {
			continue
		}
		censored = re.ReplaceAllStringFunc(censored, func(match string) string {
			return strings.Repeat(maskRune, utf8.RuneCountInString(match))
		})
	}
	return censored
}
