package geography

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	domaddress "example.com/storefront/internal/domain/address"
)

// CachedSource is a cache-aside decorator over another GeographySource.
// Redis failures fall through to the wrapped source.
type CachedSource struct {
	next    domaddress.GeographySource
	client  *redis.Client
	baseTTL time.Duration
	log     zerolog.Logger
}

func NewCachedSource(next domaddress.GeographySource, client *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedSource {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedSource{next: next, client: client, baseTTL: ttl, log: log}
}

func (c *CachedSource) Provinces(ctx context.Context) ([]domaddress.Province, error) {
	return cached(ctx, c, "geo:provinces", func() ([]domaddress.Province, error) {
		return c.next.Provinces(ctx)
	})
}

func (c *CachedSource) Districts(ctx context.Context, provinceID int) ([]domaddress.District, error) {
	return cached(ctx, c, fmt.Sprintf("geo:districts:%d", provinceID), func() ([]domaddress.District, error) {
		return c.next.Districts(ctx, provinceID)
	})
}

func (c *CachedSource) Wards(ctx context.Context, districtID int) ([]domaddress.Ward, error) {
	return cached(ctx, c, fmt.Sprintf("geo:wards:%d", districtID), func() ([]domaddress.Ward, error) {
		return c.next.Wards(ctx, districtID)
	})
}

func cached[T any](ctx context.Context, c *CachedSource, key string, load func() ([]T, error)) ([]T, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var out []T
		if err := json.Unmarshal(data, &out); err == nil {
			return out, nil
		}
		c.log.Warn().Str("key", key).Msg("corrupt geography cache entry")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("geography cache read failed")
	}

	out, err := load()
	if err != nil {
		return nil, err
	}
	// Không cache danh sách rỗng để lần sau còn hỏi lại GHN.
	if len(out) == 0 {
		return out, nil
	}

	payload, err := json.Marshal(out)
	if err != nil {
		return out, nil
	}
	jitter := time.Duration(rand.Intn(30)) * time.Minute
	if err := c.client.Set(ctx, key, payload, c.baseTTL+jitter).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("geography cache write failed")
	}
	return out, nil
}
