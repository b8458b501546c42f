package spam

import (
	"fmt"
	"time"

	"github.com/postguard/postguard/pkg/common"
	"github.com/postguard/postguard/pkg/types"
)

// RapidPostingParams describes a rapid-submission check over the author's
// recent posts.
type RapidPostingParams struct {
	UserID      string
	RecentPosts []types.RecentPost
	// MaxPostsPerMinute is the threshold; zero means the default of three.
	MaxPostsPerMinute int
}

// DetectRapidPosting flags authors who already posted MaxPostsPerMinute or
// more times in the trailing minute.
func (d *Detector) DetectRapidPosting(params RapidPostingParams) types.SpamCheckResult {
	maxPerMinute := params.MaxPostsPerMinute
	if maxPerMinute <= 0 {
		maxPerMinute = common.DefaultMaxPostsPerMinute
	}

	oneMinuteAgo := d.timeProvider().Add(-time.Minute)
	count := 0
	for _, post := range params.RecentPosts {
		if post.CreatedAt.After(oneMinuteAgo) {
			count++
		}
	}

	if count >= maxPerMinute {
		return d.spam(
			"rapid_posting",
			fmt.Sprintf("too many posts in a short time (%d posts in 1 minute)", count),
			types.ConfidenceHigh,
		)
	}

	return types.SpamCheckResult{
		IsSpam:     false,
		Confidence: types.ConfidenceLow,
	}
}

// ComprehensiveParams bundles every spam signal for a submission.
type ComprehensiveParams struct {
	Content           string
	UserID            string
	RecentPosts       []types.RecentPost
	DuplicateWindow   time.Duration
	MaxPostsPerMinute int
}

// ComprehensiveCheck runs the heuristic, duplicate and rapid-posting checks
// in order; the first spam determination wins.
func (d *Detector) ComprehensiveCheck(params ComprehensiveParams) types.SpamCheckResult {
	if result := d.DetectSpam(params.Content); result.IsSpam {
		return result
	}

	if result := d.DetectDuplicate(DuplicateParams{
		Content:     params.Content,
		UserID:      params.UserID,
		RecentPosts: params.RecentPosts,
		Window:      params.DuplicateWindow,
	}); result.IsSpam {
		return result
	}

	return d.DetectRapidPosting(RapidPostingParams{
		UserID:            params.UserID,
		RecentPosts:       params.RecentPosts,
		MaxPostsPerMinute: params.MaxPostsPerMinute,
	})
}
