package ratelimit

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	shardCount           = 16
	DefaultSweepInterval = 5 * time.Minute
)

// Config describes one fixed-window limiter.
type Config struct {
	// MaxRequests is the number of requests allowed per window. Must be
	// positive.
	MaxRequests int
	// Window is the fixed window length. Must be positive.
	Window time.Duration
}

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// Reset is when the current window ends and the counter restarts.
	Reset time.Time
	// RetryAfterSeconds is the whole-second wait before the next attempt can
	// succeed. Zero when the request was allowed.
	RetryAfterSeconds int
}

type counter struct {
	count         int
	windowResetAt time.Time
}

type shard struct {
	mu       sync.Mutex
	counters map[string]*counter
}

// Limiter is an in-memory fixed-window rate limiter. Counters are sharded by
// key to keep contention low; a background sweep drops expired windows.
type Limiter struct {
	maxRequests   int
	window        time.Duration
	sweepInterval time.Duration
	shards        [shardCount]*shard
	logger        *logrus.Logger
	timeProvider  func() time.Time

	startOnce sync.Once
	stopOnce  sync.Once
	started   atomic.Bool
	stopCh    chan struct{}
	doneCh    chan struct{}
}

type LimiterOpts struct {
	SweepInterval time.Duration
	TimeProvider  func() time.Time
}

func New(cfg Config, logger *logrus.Logger, opts *LimiterOpts) (*Limiter, error) {
	if cfg.MaxRequests <= 0 {
		return nil, fmt.Errorf("max requests must be positive, got %d", cfg.MaxRequests)
	}
	if cfg.Window <= 0 {
		return nil, fmt.Errorf("window must be positive, got %s", cfg.Window)
	}

	sweepInterval := DefaultSweepInterval
	timeProvider := time.Now
	if opts != nil {
		if opts.SweepInterval > 0 {
			sweepInterval = opts.SweepInterval
		}
		if opts.TimeProvider != nil {
			timeProvider = opts.TimeProvider
		}
	}

	l := &Limiter{
		maxRequests:   cfg.MaxRequests,
		window:        cfg.Window,
		sweepInterval: sweepInterval,
		logger:        logger,
		timeProvider:  timeProvider,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
	for i := range l.shards {
		l.shards[i] = &shard{counters: make(map[string]*counter)}
	}
	return l, nil
}

// Allow records one request for key and reports whether it fits in the
// current window.
func (l *Limiter) Allow(key string) Decision {
	now := l.timeProvider()
	s := l.shardFor(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[key]
	if !ok || !now.Before(c.windowResetAt) {
		c = &counter{count: 0, windowResetAt: now.Add(l.window)}
		s.counters[key] = c
	}

	if c.count >= l.maxRequests {
		retryAfter := int(c.windowResetAt.Sub(now).Seconds())
		if c.windowResetAt.Sub(now)%time.Second != 0 {
			retryAfter++
		}
		return Decision{
			Allowed:           false,
			Limit:             l.maxRequests,
			Remaining:         0,
			Reset:             c.windowResetAt,
			RetryAfterSeconds: retryAfter,
		}
	}

	c.count++
	return Decision{
		Allowed:   true,
		Limit:     l.maxRequests,
		Remaining: l.maxRequests - c.count,
		Reset:     c.windowResetAt,
	}
}

// Start launches the background sweep. It returns immediately; the sweep runs
// until Stop is called or ctx is cancelled.
func (l *Limiter) Start(ctx context.Context) {
	l.startOnce.Do(func() {
		l.started.Store(true)
		go l.run(ctx)
	})
}

func (l *Limiter) run(ctx context.Context) {
	defer close(l.doneCh)
	ticker := time.NewTicker(l.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.stopCh:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

// Stop terminates the sweep goroutine and waits for it to exit. Safe to call
// more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopCh)
		if l.started.Load() {
			<-l.doneCh
		}
	})
}

func (l *Limiter) sweep() {
	now := l.timeProvider()
	removed := 0
	for _, s := range l.shards {
		s.mu.Lock()
		for key, c := range s.counters {
			if !now.Before(c.windowResetAt) {
				delete(s.counters, key)
				removed++
			}
		}
		s.mu.Unlock()
	}
	if removed > 0 && l.logger != nil {
		l.logger.WithField("removed", removed).Debug("swept expired rate limit windows")
	}
}

func (l *Limiter) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return l.shards[h.Sum32()%shardCount]
}
