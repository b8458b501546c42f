package spam

import (
	"strings"
	"time"

	"github.com/postguard/postguard/pkg/common"
	"github.com/postguard/postguard/pkg/types"
)

const similarityLimit = 0.9

// DuplicateParams describes a duplicate check: the new content and the
// author's recent submissions.
type DuplicateParams struct {
	Content     string
	UserID      string
	RecentPosts []types.RecentPost
	// Window bounds how far back posts are compared; zero means the default
	// five minutes.
	Window time.Duration
}

// DetectDuplicate flags content identical or nearly identical (similarity
// above 0.9) to a recent post by the same author.
func (d *Detector) DetectDuplicate(params DuplicateParams) types.SpamCheckResult {
	window := params.Window
	if window <= 0 {
		window = common.DefaultDuplicateWindow
	}

	now := d.timeProvider()
	trimmed := strings.TrimSpace(params.Content)

	for _, post := range params.RecentPosts {
		if now.Sub(post.CreatedAt) >= window {
			continue
		}

		if strings.TrimSpace(post.Content) == trimmed {
			return d.spam("duplicate", "identical content already posted", types.ConfidenceHigh)
		}

		if calculateSimilarity(post.Content, params.Content) > similarityLimit {
			return d.spam("near_duplicate", "very similar content already posted", types.ConfidenceHigh)
		}
	}

	return types.SpamCheckResult{
		IsSpam:     false,
		Confidence: types.ConfidenceLow,
	}
}

// calculateSimilarity maps edit distance onto [0,1]; 1 means identical. It is
// symmetric in its arguments, and two empty strings are fully similar.
func calculateSimilarity(a, b string) float64 {
	ar, br := []rune(a), []rune(b)
	maxLen := len(ar)
	if len(br) > maxLen {
		maxLen = len(br)
	}
	if maxLen == 0 {
		return 1.0
	}
	distance := levenshteinDistance(ar, br)
	return float64(maxLen-distance) / float64(maxLen)
}

// levenshteinDistance is the classic dynamic-programming edit distance with
// unit-cost insert, delete and substitute.
func levenshteinDistance(a, b []rune) int {
	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				matrix[i][j] = matrix[i-1][j-1]
				continue
			}
			min := matrix[i-1][j-1]
			if matrix[i][j-1] < min {
				min = matrix[i][j-1]
			}
			if matrix[i-1][j] < min {
				min = matrix[i-1][j]
			}
			matrix[i][j] = min + 1
		}
	}

	return matrix[len(a)][len(b)]
}
