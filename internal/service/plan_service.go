package service

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aurasystem/aura-api/internal/models"
	appErrors "github.com/aurasystem/aura-api/pkg/errors"
)

// PlanService exposes the plan catalog to admin endpoints and owns explicit
// cache invalidation. Invalidations are broadcast over a Redis channel so
// every instance resets its in-process catalog cache, not just the one that
// received the admin call. Redis is optional; without it invalidation stays
// local and the TTL covers the rest.
type PlanService struct {
	catalog PlanCatalog
	cache   *PlanCache
	redis   *redis.Client
	channel string
	logger  *zap.Logger
}

// NewPlanService instantiates PlanService. The redis client may be nil.
func NewPlanService(catalog PlanCatalog, cache *PlanCache, rdb *redis.Client, channel string, logger *zap.Logger) *PlanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if channel == "" {
		channel = "aura:plans:invalidate"
	}
	return &PlanService{catalog: catalog, cache: cache, redis: rdb, channel: channel, logger: logger}
}

// List returns the active catalog straight from the store, bypassing the
// cache; admins editing plans want to see what is actually persisted.
func (s *PlanService) List(ctx context.Context) ([]models.Plan, error) {
	plans, err := s.catalog.FetchActivePlans(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list plans")
	}
	return plans, nil
}

// InvalidateCache resets the local catalog cache and notifies peers.
func (s *PlanService) InvalidateCache(ctx context.Context) {
	s.cache.Invalidate()
	if s.redis == nil {
		return
	}
	if err := s.redis.Publish(ctx, s.channel, "invalidate").Err(); err != nil {
		s.logger.Warn("failed to broadcast plan cache invalidation", zap.Error(err))
	}
}

// ListenInvalidations blocks on the invalidation channel and resets the local
// cache on every message. Run in a goroutine; returns when ctx is done or the
// subscription breaks.
func (s *PlanService) ListenInvalidations(ctx context.Context) {
	if s.redis == nil {
		return
	}
	sub := s.redis.Subscribe(ctx, s.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			s.logger.Debug("plan cache invalidation received", zap.String("channel", msg.Channel))
			s.cache.Invalidate()
		}
	}
}
