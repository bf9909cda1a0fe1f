// Package cache holds redis-backed helpers. Every type here degrades to a
// pass-through when redis is disabled or unreachable.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bruinrecruit/recruitment-service/internal/domain"
	"github.com/bruinrecruit/recruitment-service/internal/repository"
)

const seasonsKey = "recruitment:seasons"

// SeasonCache decorates a SeasonRepository with a cached season list. Open
// season lookups, which run on every application create, are served from it.
type SeasonCache struct {
	repository.SeasonRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSeasonCache wraps repo. A nil client disables caching.
func NewSeasonCache(repo repository.SeasonRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *SeasonCache {
	return &SeasonCache{SeasonRepository: repo, client: client, ttl: ttl, logger: logger}
}

func (c *SeasonCache) List(ctx context.Context) ([]domain.Season, error) {
	if seasons, ok := c.load(ctx); ok {
		return seasons, nil
	}
	seasons, err := c.SeasonRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, seasons)
	return seasons, nil
}

func (c *SeasonCache) FindOpenFor(ctx context.Context, date time.Time) (*domain.Season, error) {
	seasons, ok := c.load(ctx)
	if !ok {
		return c.SeasonRepository.FindOpenFor(ctx, date)
	}
	// list is ordered by start date; the latest open season wins
	for i := len(seasons) - 1; i >= 0; i-- {
		if seasons[i].IsOpenAt(date) {
			season := seasons[i]
			return &season, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (c *SeasonCache) Create(ctx context.Context, season *domain.Season) error {
	if err := c.SeasonRepository.Create(ctx, season); err != nil {
		return err
	}
	c.Invalidate(ctx)
	return nil
}

func (c *SeasonCache) DeleteByID(ctx context.Context, id string) (int64, error) {
	n, err := c.SeasonRepository.DeleteByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		c.Invalidate(ctx)
	}
	return n, nil
}

// Refresh reloads the cached list from the underlying repository.
func (c *SeasonCache) Refresh(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	seasons, err := c.SeasonRepository.List(ctx)
	if err != nil {
		return err
	}
	c.store(ctx, seasons)
	return nil
}

// Invalidate drops the cached list.
func (c *SeasonCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, seasonsKey).Err(); err != nil {
		c.logger.Warn("season cache invalidate failed", zap.Error(err))
	}
}

func (c *SeasonCache) load(ctx context.Context) ([]domain.Season, bool) {
	if c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, seasonsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("season cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var seasons []domain.Season
	if err := json.Unmarshal(raw, &seasons); err != nil {
		c.logger.Warn("season cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return seasons, true
}

func (c *SeasonCache) store(ctx context.Context, seasons []domain.Season) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(seasons)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, seasonsKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("season cache write failed", zap.Error(err))
	}
}

var _ repository.SeasonRepository = (*SeasonCache)(nil)
