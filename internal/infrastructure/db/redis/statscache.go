package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/fintrack/finance-system/internal/api/metrics"
	"github.com/fintrack/finance-system/internal/core/domain"
)

const statsTTL = time.Minute

// statsAllKey caches the admin all-users view.
const statsAllKey = "all"

// StatsCache is a best-effort per-user statistics cache backed by Redis.
// Key format: stats:<user_id> (or stats:all for the admin view). Every error
// degrades to a miss; the cache never decides an HTTP outcome.
type StatsCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewStatsCache(client *redis.Client, log zerolog.Logger) *StatsCache {
	return &StatsCache{client: client, log: log}
}

func (c *StatsCache) Get(ctx context.Context, key string) (*domain.Statistics, bool) {
	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("stats cache read failed")
		}
		metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var stats domain.Statistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		c.log.Warn().Err(err).Msg("stats cache entry corrupt, dropping")
		c.client.Del(ctx, c.key(key))
		metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
	return &stats, true
}

func (c *StatsCache) Set(ctx context.Context, key string, stats *domain.Statistics) {
	raw, err := json.Marshal(stats)
	if err != nil {
		c.log.Warn().Err(err).Msg("stats cache encode failed")
		return
	}
	if err := c.client.Set(ctx, c.key(key), raw, statsTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("stats cache write failed")
	}
}

// Invalidate drops the user's cached view and the admin all-users view, which
// any user write also stales.
func (c *StatsCache) Invalidate(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, c.key(userID), c.key(statsAllKey)).Err(); err != nil {
		c.log.Warn().Err(err).Msg("stats cache invalidation failed")
	}
}

func (c *StatsCache) key(suffix string) string {
	return "stats:" + suffix
}
