package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"shortlink/models"
)

const (
	cacheKeyPrefix = "slug:"
	cacheTTL       = time.Hour
	// Unknown slugs are cached briefly so repeated lookups of garbage
	// slugs don't all reach the database.
	missTTL      = time.Minute
	missSentinel = "miss"
)

// RedisClient is the subset of redis commands the cache needs. Defined as
// an interface so tests can substitute a fake.
type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type goRedisClient struct {
	client *redis.Client
}

// NewRedisClient connects to the redis instance at addr.
func NewRedisClient(addr string) RedisClient {
	return &goRedisClient{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (r *goRedisClient) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *goRedisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *goRedisClient) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// CachedStore puts a read-through redis cache in front of a Store on the
// slug-resolution path. Slug mappings are immutable once created, so a
// cached entry can never point at a wrong destination; only the cached
// click_count lags, and resolution doesn't read it. Writes pass through
// to the backend, and Insert primes the cache so a fresh slug resolves
// without a miss.
type CachedStore struct {
	Store
	client RedisClient
}

func WithCache(backend Store, client RedisClient) *CachedStore {
	return &CachedStore{Store: backend, client: client}
}

func (c *CachedStore) FindBySlug(ctx context.Context, slug string) (*models.ShortLink, error) {
	key := cacheKeyPrefix + slug

	if data, err := c.client.Get(ctx, key); err == nil {
		if data == missSentinel {
			return nil, ErrNotFound
		}
		var link models.ShortLink
		if err := json.Unmarshal([]byte(data), &link); err == nil {
			return &link, nil
		}
		// Unparseable entry, fall through to the backend.
		_ = c.client.Del(ctx, key)
	}

	link, err := c.Store.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			_ = c.client.Set(ctx, key, missSentinel, missTTL)
		}
		return nil, err
	}

	if data, err := json.Marshal(link); err == nil {
		_ = c.client.Set(ctx, key, string(data), cacheTTL)
	}
	return link, nil
}

func (c *CachedStore) Insert(ctx context.Context, link *models.ShortLink) error {
	if err := c.Store.Insert(ctx, link); err != nil {
		return err
	}

	key := cacheKeyPrefix + link.Slug
	if data, err := json.Marshal(link); err == nil {
		_ = c.client.Set(ctx, key, string(data), cacheTTL)
	} else {
		_ = c.client.Del(ctx, key)
	}
	return nil
}
