package spam_test

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/postguard/postguard/pkg/spam"
	"github.com/postguard/postguard/pkg/types"
)

func newDetector() *spam.Detector {
	return spam.NewDetector(nil, logrus.New(), nil)
}

func TestDetectSpam_CleanContent(t *testing.T) {
	detector := newDetector()

	result := detector.DetectSpam("This is a perfectly normal forum post about gardening.")

	assert.False(t, result.IsSpam)
	assert.Equal(t, types.ConfidenceLow, result.Confidence)
}

func TestDetectSpam_TooManyLinks(t *testing.T) {
	detector := newDetector()
	content := strings.Repeat("check https://example.com ", 6)

	result := detector.DetectSpam(content)

	assert.True(t, result.IsSpam)
	assert.Contains(t, result.Reason, "too many links")
	assert.Equal(t, types.ConfidenceHigh, result.Confidence)
}

func TestDetectSpam_FiveLinksAllowed(t *testing.T) {
	detector := newDetector()
	content := strings.Repeat("see http://example.com ", 5)

	result := detector.DetectSpam(content)

	assert.False(t, result.IsSpam)
}

func TestDetectSpam_ExcessiveCapitalization(t *testing.T) {
	detector := newDetector()

	result := detector.DetectSpam("THIS IS ALL VERY LOUD SHOUTING TEXT")

	assert.True(t, result.IsSpam)
	assert.Equal(t, "excessive capitalization", result.Reason)
	assert.Equal(t, types.ConfidenceMedium, result.Confidence)
}

func TestDetectSpam_ShortUppercaseNotFlagged(t *testing.T) {
	detector := newDetector()

	result := detector.DetectSpam("OK FINE")

	assert.False(t, result.IsSpam)
}

func TestDetectSpam_RepeatedCharacters(t *testing.T) {
	detector := newDetector()

	result := detector.DetectSpam("this is greatttttttttt stuff")

	assert.True(t, result.IsSpam)
	assert.Equal(t, "repeated identical characters", result.Reason)
	assert.Equal(t, types.ConfidenceHigh, result.Confidence)
}

func TestDetectSpam_NineRepeatsAllowed(t *testing.T) {
	detector := newDetector()

	result := detector.DetectSpam("mild excitement yesssssss!")

	assert.False(t, result.IsSpam)
}

func TestDetectSpam_KeywordThreshold(t *testing.T) {
	detector := newDetector()

	result := detector.DetectSpam("Buy now and click here for a great deal")

	assert.True(t, result.IsSpam)
	assert.Equal(t, "spam keywords detected", result.Reason)
	assert.Equal(t, types.ConfidenceHigh, result.Confidence)
}

func TestDetectSpam_SingleKeywordAllowed(t *testing.T) {
	detector := newDetector()

	result := detector.DetectSpam("You can buy now if you want")

	assert.False(t, result.IsSpam)
}

func TestDetectSpam_CustomKeywords(t *testing.T) {
	detector := spam.NewDetector([]string{"crypto pump", "guaranteed returns"}, logrus.New(), nil)

	result := detector.DetectSpam("crypto pump with guaranteed returns today")

	assert.True(t, result.IsSpam)
	assert.Equal(t, "spam keywords detected", result.Reason)
}

func TestDetectSpam_ExcessiveEmoji(t *testing.T) {
	detector := newDetector()

	result := detector.DetectSpam("🎉🎉🎉🎉🎉🎉🎉🎉 amazing party🎊🎊🎊🎊🎊")

	assert.True(t, result.IsSpam)
	assert.Equal(t, "excessive emoji usage", result.Reason)
	assert.Equal(t, types.ConfidenceLow, result.Confidence)
}

func TestDetectSpam_RepetitiveShortContent(t *testing.T) {
	detector := newDetector()

	result := detector.DetectSpam("hahahaha")

	assert.True(t, result.IsSpam)
	assert.Equal(t, "repetitive short content", result.Reason)
	assert.Equal(t, types.ConfidenceMedium, result.Confidence)
}

func TestDetectSpam_ShortNonRepetitiveAllowed(t *testing.T) {
	detector := newDetector()

	result := detector.DetectSpam("thanks!")

	assert.False(t, result.IsSpam)
}
