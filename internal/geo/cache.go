package geo

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"supportdir/internal/directory/models"
)

const cachePrefix = "geocode:"

// CachedResolver fronts a Resolver with a Redis cache keyed by normalized
// postcode. Cache failures degrade to a direct lookup; only positive results
// are cached (not-found and transient outcomes always re-resolve).
type CachedResolver struct {
	next   Resolver
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// CachedResolverOption configures a CachedResolver.
type CachedResolverOption func(*CachedResolver)

// WithCacheLogger sets a logger for cache degradation warnings.
func WithCacheLogger(logger *slog.Logger) CachedResolverOption {
	return func(c *CachedResolver) {
		c.logger = logger
	}
}

// NewCachedResolver wraps next with a Redis cache.
func NewCachedResolver(next Resolver, client redis.Cmdable, ttl time.Duration, opts ...CachedResolverOption) *CachedResolver {
	c := &CachedResolver{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CachedResolver) Resolve(ctx context.Context, postcode string) (*models.Coordinates, error) {
	normalized := NormalizePostcode(postcode)
	if normalized == "" {
		return nil, errNotFound("geo.resolve", postcode)
	}

	key := cachePrefix + cacheKey(normalized)

	cached, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var coords models.Coordinates
		if err := json.Unmarshal(cached, &coords); err == nil {
			return &coords, nil
		}
		// Corrupt entry: fall through and re-resolve.
	case err != redis.Nil:
		c.logger.Warn("geocode cache read failed, resolving directly",
			"postcode", normalized, "error", err)
	}

	coords, err := c.next.Resolve(ctx, normalized)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(coords); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("geocode cache write failed", "postcode", normalized, "error", err)
		}
	}

	return coords, nil
}
