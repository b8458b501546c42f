package cache

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/postguard/postguard/pkg/domain/lexicon"
)

const (
	ActiveLexiconKey = "lexicon:active"

	LexiconTTLName = "lexicon"
)

type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	RedisClient() *redis.Client
	CreateTTLMap(name string, ttl time.Duration) *TTLMap
	GetTTLMap(name string) *TTLMap

	GetActiveLexicon(ctx context.Context) ([]lexicon.Entry, error)
	SaveActiveLexicon(ctx context.Context, entries []lexicon.Entry, ttl time.Duration) error
	InvalidateLexicon(ctx context.Context) error
}

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	TLS      bool
}

type client struct {
	redisClient *redis.Client
	ttlMaps     sync.Map
}

func NewClient(config Config, logger *logrus.Logger) (Client, error) {
	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	}
	if config.TLS {
		options.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402
		}
	}
	redisClient := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithFields(logrus.Fields{
			"host":  config.Host,
			"port":  config.Port,
			"error": err.Error(),
		}).Error("failed to connect to redis")
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"host": config.Host,
		"port": config.Port,
	}).Info("redis connected successfully")

	return &client{
		redisClient: redisClient,
		ttlMaps:     sync.Map{},
	}, nil
}

// NewClientWithRedis wraps an existing redis client; used by tests with
// redismock.
func NewClientWithRedis(redisClient *redis.Client) Client {
	return &client{
		redisClient: redisClient,
		ttlMaps:     sync.Map{},
	}
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	return c.redisClient.Get(ctx, key).Result()
}

func (c *client) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.redisClient.Set(ctx, key, value, expiration).Err()
}

func (c *client) Delete(ctx context.Context, key string) error {
	return c.redisClient.Del(ctx, key).Err()
}

func (c *client) RedisClient() *redis.Client {
	return c.redisClient
}

func (c *client) CreateTTLMap(name string, ttl time.Duration) *TTLMap {
	ttlMap := NewTTLMap(ttl)
	c.ttlMaps.Store(name, ttlMap)
	return ttlMap
}

func (c *client) GetTTLMap(name string) *TTLMap {
	if value, ok := c.ttlMaps.Load(name); ok {
		ttlMap, ok := value.(*TTLMap)
		if !ok {
			return nil
		}
		return ttlMap
	}
	return nil
}

func (c *client) GetActiveLexicon(ctx context.Context) ([]lexicon.Entry, error) {
	res, err := c.Get(ctx, ActiveLexiconKey)
	if err != nil {
		return nil, err
	}
	var entries []lexicon.Entry
	if err := json.Unmarshal([]byte(res), &entries); err != nil {
		return nil, fmt.Errorf("malformed cached lexicon: %w", err)
	}
	return entries, nil
}

func (c *client) SaveActiveLexicon(ctx context.Context, entries []lexicon.Entry, ttl time.Duration) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.Set(ctx, ActiveLexiconKey, string(data), ttl)
}

func (c *client) InvalidateLexicon(ctx context.Context) error {
	return c.Delete(ctx, ActiveLexiconKey)
}
