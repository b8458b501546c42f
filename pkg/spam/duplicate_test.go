package spam_test

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/postguard/postguard/pkg/spam"
	"github.com/postguard/postguard/pkg/types"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newDetectorAt(now time.Time) *spam.Detector {
	return spam.NewDetector(nil, logrus.New(), &spam.DetectorOpts{
		TimeProvider: func() time.Time { return now },
	})
}

func TestDetectDuplicate_IdenticalContent(t *testing.T) {
	detector := newDetectorAt(testNow)

	result := detector.DetectDuplicate(spam.DuplicateParams{
		Content: "  check out my new project  ",
		UserID:  "user-1",
		RecentPosts: []types.RecentPost{
			{Content: "check out my new project", CreatedAt: testNow.Add(-2 * time.Minute)},
		},
	})

	assert.True(t, result.IsSpam)
	assert.Equal(t, "identical content already posted", result.Reason)
	assert.Equal(t, types.ConfidenceHigh, result.Confidence)
}

func TestDetectDuplicate_NearDuplicate(t *testing.T) {
	detector := newDetectorAt(testNow)

	result := detector.DetectDuplicate(spam.DuplicateParams{
		Content: "check out my new project here today",
		UserID:  "user-1",
		RecentPosts: []types.RecentPost{
			{Content: "check out my new project here today!", CreatedAt: testNow.Add(-time.Minute)},
		},
	})

	assert.True(t, result.IsSpam)
	assert.Equal(t, "very similar content already posted", result.Reason)
}

func TestDetectDuplicate_DifferentContent(t *testing.T) {
	detector := newDetectorAt(testNow)

	result := detector.DetectDuplicate(spam.DuplicateParams{
		Content: "a completely different topic about cooking",
		UserID:  "user-1",
		RecentPosts: []types.RecentPost{
			{Content: "my thoughts on woodworking tools", CreatedAt: testNow.Add(-time.Minute)},
		},
	})

	assert.False(t, result.IsSpam)
}

func TestDetectDuplicate_OldPostsIgnored(t *testing.T) {
	detector := newDetectorAt(testNow)

	result := detector.DetectDuplicate(spam.DuplicateParams{
		Content: "check out my new project",
		UserID:  "user-1",
		RecentPosts: []types.RecentPost{
			{Content: "check out my new project", CreatedAt: testNow.Add(-10 * time.Minute)},
		},
	})

	assert.False(t, result.IsSpam)
}

func TestDetectDuplicate_CustomWindow(t *testing.T) {
	detector := newDetectorAt(testNow)

	result := detector.DetectDuplicate(spam.DuplicateParams{
		Content: "check out my new project",
		UserID:  "user-1",
		RecentPosts: []types.RecentPost{
			{Content: "check out my new project", CreatedAt: testNow.Add(-10 * time.Minute)},
		},
		Window: 15 * time.Minute,
	})

	assert.True(t, result.IsSpam)
}

func TestDetectDuplicate_NoHistory(t *testing.T) {
	detector := newDetectorAt(testNow)

	result := detector.DetectDuplicate(spam.DuplicateParams{
		Content: "first post ever",
		UserID:  "user-1",
	})

	assert.False(t, result.IsSpam)
}
