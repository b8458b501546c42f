package lexicon

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"

	"github.com/postguard/postguard/pkg/common"
	domain "github.com/postguard/postguard/pkg/domain/lexicon"
	"github.com/postguard/postguard/pkg/infra/cache"
)

var ErrInvalidCacheType = errors.New("invalid type assertion for lexicon snapshot")

const memoryCacheKey = "active"

// Finder resolves the active lexicon, reading through the in-memory snapshot,
// the distributed cache and finally the database.
type Finder interface {
	ListActive(ctx context.Context) ([]domain.Entry, error)
	Invalidate(ctx context.Context)
}

type finder struct {
	repo        domain.Repository
	cache       cache.Client
	memoryCache *cache.TTLMap
	breaker     *gobreaker.CircuitBreaker
	group       singleflight.Group
	logger      *logrus.Logger
}

func NewFinder(
	repository domain.Repository,
	c cache.Client,
	logger *logrus.Logger,
) Finder {
	memoryCache := c.GetTTLMap(cache.LexiconTTLName)
	if memoryCache == nil {
		memoryCache = c.CreateTTLMap(cache.LexiconTTLName, common.LexiconCacheTTL)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "lexicon-db",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &finder{
		repo:        repository,
		cache:       c,
		memoryCache: memoryCache,
		breaker:     breaker,
		logger:      logger,
	}
}

func (f *finder) ListActive(ctx context.Context) ([]domain.Entry, error) {
	if entries, err := f.getFromMemoryCache(); err == nil {
		return entries, nil
	} else if errors.Is(err, ErrInvalidCacheType) {
		f.logger.WithError(err).Debug("memory cache read lexicon failure")
	}

	// Collapse concurrent refreshes into a single fetch.
	v, err, _ := f.group.Do(memoryCacheKey, func() (interface{}, error) {
		return f.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}

	entries, ok := v.([]domain.Entry)
	if !ok {
		return nil, ErrInvalidCacheType
	}
	return entries, nil
}

func (f *finder) Invalidate(ctx context.Context) {
	f.memoryCache.Delete(memoryCacheKey)
	if err := f.cache.InvalidateLexicon(ctx); err != nil {
		f.logger.WithError(err).Warn("failed to invalidate distributed lexicon cache")
	}
}

func (f *finder) refresh(ctx context.Context) ([]domain.Entry, error) {
	if cached, err := f.cache.GetActiveLexicon(ctx); err == nil {
		f.memoryCache.Set(memoryCacheKey, cached)
		return cached, nil
	} else if !errors.Is(err, context.Canceled) {
		f.logger.WithError(err).Debug("distributed cache read lexicon failure")
	}

	result, err := f.breaker.Execute(func() (interface{}, error) {
		return f.repo.ListActive(ctx)
	})
	if err != nil {
		f.logger.WithError(err).Error("failed to fetch active lexicon from repository")
		return nil, err
	}

	entries, ok := result.([]domain.Entry)
	if !ok {
		return nil, ErrInvalidCacheType
	}

	f.memoryCache.Set(memoryCacheKey, entries)
	if err := f.cache.SaveActiveLexicon(ctx, entries, common.LexiconRedisTTL); err != nil {
		f.logger.WithError(err).Warn("failed to cache active lexicon")
	}
	return entries, nil
}

func (f *finder) getFromMemoryCache() ([]domain.Entry, error) {
	cachedValue, found := f.memoryCache.Get(memoryCacheKey)
	if !found {
		return nil, errors.New("lexicon not found in memory cache")
	}

	entries, ok := cachedValue.([]domain.Entry)
	if !ok {
		return nil, ErrInvalidCacheType
	}
	return entries, nil
}
