package moderation_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/postguard/postguard/pkg/domain/lexicon"
	"github.com/postguard/postguard/pkg/moderation"
	"github.com/postguard/postguard/pkg/types"
)

func newCensor() *moderation.Censor {
	return moderation.NewCensor(moderation.NewMatcher(logrus.New()))
}

func TestCensor_MasksMatchWithSameLength(t *testing.T) {
	censor := newCensor()
	entries := []lexicon.Entry{entry("badword", types.SeverityMedium, types.ActionCensor)}

	censored := censor.CensorContent("this badword here", entries)

	assert.Equal(t, "this ******* here", censored)
}

func TestCensor_MasksEveryOccurrence(t *testing.T) {
	censor := newCensor()
	entries := []lexicon.Entry{entry("bad", types.SeverityMedium, types.ActionCensor)}

	censored := censor.CensorContent("bad things are bad", entries)

	assert.Equal(t, "*** things are ***", censored)
}

func TestCensor_PreservesCaseInsensitiveMatchLength(t *testing.T) {
	censor := newCensor()
	entries := []lexicon.Entry{entry("badword", types.SeverityMedium, types.ActionCensor)}

	censored := censor.CensorContent("BADWORD stays masked", entries)

	assert.Equal(t, "******* stays masked", censored)
}

func TestCensor_UnicodeMaskLength(t *testing.T) {
	censor := newCensor()
	entries := []lexicon.Entry{entry("glupost", types.SeverityLow, types.ActionCensor)}
	pattern := entry("šašav[aoi]", types.SeverityLow, types.ActionCensor)
	pattern.IsPattern = true
	entries = append(entries, pattern)

	censored := censor.CensorContent("kakva šašava glupost", entries)

	assert.Equal(t, "kakva ****** *******", censored)
}

func TestCensor_SkipsNonEnforceableEntries(t *testing.T) {
	censor := newCensor()
	inactive := entry("secret", types.SeverityHigh, types.ActionCensor)
	inactive.Active = false

	censored := censor.CensorContent("a secret phrase", []lexicon.Entry{inactive})

	assert.Equal(t, "a secret phrase", censored)
}

func TestCensor_NoEntriesNoChange(t *testing.T) {
	censor := newCensor()

	censored := censor.CensorContent("untouched content", nil)

	assert.Equal(t, "untouched content", censored)
}
