package clinics

import (
	"context"
	"time"

	"eligibility-workers/internal/common/database"
	"eligibility-workers/internal/common/logger"
	"eligibility-workers/internal/common/metrics"
	"eligibility-workers/internal/models"
)

const directoryCacheKey = "assessment:clinics:directory"

// CachedSource is a Redis read-through cache in front of another Source.
// Cache errors never fail a lookup; the underlying source is used instead.
type CachedSource struct {
	next   Source
	redis  *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedSource(next Source, rc *database.RedisClient, ttl time.Duration, log logger.Logger) *CachedSource {
	return &CachedSource{
		next:   next,
		redis:  rc,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "clinic-cache"}),
	}
}

func (c *CachedSource) List(ctx context.Context) ([]models.ClinicProfile, error) {
	var cached []models.ClinicProfile
	found, err := c.redis.GetJSON(ctx, directoryCacheKey, &cached)
	switch {
	case err != nil:
		metrics.ClinicCacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("clinic cache read failed", map[string]interface{}{"error": err})
	case found && len(cached) > 0:
		metrics.ClinicCacheLookups.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		metrics.ClinicCacheLookups.WithLabelValues("miss").Inc()
	}

	list, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}

	// an empty directory is not cached so a later import shows up immediately
	if len(list) > 0 {
		if err := c.redis.SetJSON(ctx, directoryCacheKey, list, c.ttl); err != nil {
			c.logger.Warn("clinic cache write failed", map[string]interface{}{"error": err})
		}
	}
	return list, nil
}

// Invalidate drops the cached directory.
func (c *CachedSource) Invalidate(ctx context.Context) error {
	return c.redis.Del(ctx, directoryCacheKey)
}
