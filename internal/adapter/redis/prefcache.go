package redis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/adapter/eventjson"
	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

const prefKeyPrefix = "calendar:prefs:"

type prefStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.CalendarPreferences, error)
	Upsert(ctx context.Context, p *domain.CalendarPreferences) error
}

// PrefCache is a cache-aside layer in front of a preference store. Writes go
// to the store first and then replace the cached copy. Redis failures are
// logged and never fail the call.
type PrefCache struct {
	client *goredis.Client
	store  prefStore
	ttl    time.Duration
	log    *slog.Logger
}

// NewPrefCache wraps store with a Redis cache. ttl <= 0 keeps entries until
// they are replaced.
func NewPrefCache(log *slog.Logger, client *goredis.Client, store prefStore, ttl time.Duration) *PrefCache {
	return &PrefCache{
		client: client,
		store:  store,
		ttl:    ttl,
		log:    log.With("component", "pref_cache"),
	}
}

// Get returns cached preferences, loading them from the store on a miss.
func (c *PrefCache) Get(ctx context.Context, userID uuid.UUID) (*domain.CalendarPreferences, error) {
	key := prefKey(userID)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		p, decErr := eventjson.UnmarshalPreferences(data)
		if decErr == nil && p != nil {
			return p, nil
		}
		c.log.WarnContext(ctx, "dropping undecodable cache entry", slog.String("key", key), slog.Any("error", decErr))
		c.client.Del(ctx, key)
	case errors.Is(err, goredis.Nil):
	default:
		c.log.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	p, err := c.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.put(ctx, p)
	return p, nil
}

// Upsert writes through to the store and replaces the cached copy.
func (c *PrefCache) Upsert(ctx context.Context, p *domain.CalendarPreferences) error {
	if err := c.store.Upsert(ctx, p); err != nil {
		return err
	}
	c.put(ctx, p)
	return nil
}

func (c *PrefCache) put(ctx context.Context, p *domain.CalendarPreferences) {
	key := prefKey(p.UserID)
	data, err := eventjson.MarshalPreferences(p)
	if err == nil {
		err = c.client.Set(ctx, key, data, c.ttl).Err()
	}
	if err != nil {
		// A stale entry would outlive the write; make the next read go to the store.
		c.client.Del(ctx, key)
		c.log.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

func prefKey(userID uuid.UUID) string {
	return prefKeyPrefix + userID.String()
}
