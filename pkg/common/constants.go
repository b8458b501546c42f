package common

import "time"

const (
	// LexiconCacheTTL bounds how stale the in-memory lexicon snapshot may be
	// before the finder consults redis or the database again.
	LexiconCacheTTL = 30 * time.Second

	// LexiconRedisTTL bounds the distributed cache; lexicon writes invalidate
	// it eagerly, the TTL only covers missed invalidations.
	LexiconRedisTTL = 5 * time.Minute
)

const (
	// DefaultDuplicateWindow is how far back the duplicate detector looks.
	DefaultDuplicateWindow = 5 * time.Minute

	// DefaultMaxPostsPerMinute is the rapid-posting threshold.
	DefaultMaxPostsPerMinute = 3
)
