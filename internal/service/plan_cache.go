package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aurasystem/aura-api/internal/models"
)

// PlanCatalog supplies the active plan definitions, typically from the
// database.
type PlanCatalog interface {
	FetchActivePlans(ctx context.Context) ([]models.Plan, error)
}

// PlanCache keeps a process-wide snapshot of the plan catalog with a short
// TTL. Entitlement checks run on every request, so hitting the catalog store
// each time is not acceptable; serving a few minutes of staleness is.
//
// The refetch runs outside the lock: two concurrent expired reads may both
// fetch and the last writer wins. Each stores a complete snapshot, so the
// race costs redundant work, never a torn view.
type PlanCache struct {
	catalog PlanCatalog
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger

	mu        sync.Mutex
	plans     map[models.PlanTier]models.Plan
	fetchedAt time.Time
}

// NewPlanCache constructs a PlanCache. The clock is injectable so tests can
// control staleness without real timers.
func NewPlanCache(catalog PlanCatalog, ttl time.Duration, logger *zap.Logger, now func() time.Time) *PlanCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &PlanCache{catalog: catalog, ttl: ttl, logger: logger, now: now}
}

// Plans returns the catalog keyed by tier name. A fresh, non-empty snapshot
// is returned as-is; otherwise a refetch is attempted. When the catalog store
// fails, the stale snapshot (or an empty map if never populated) is served
// instead of surfacing the error: stale entitlement data is less harmful than
// denying every caller.
func (c *PlanCache) Plans(ctx context.Context) map[models.PlanTier]models.Plan {
	c.mu.Lock()
	snapshot := c.plans
	fresh := len(snapshot) > 0 && c.now().Sub(c.fetchedAt) < c.ttl
	c.mu.Unlock()

	if fresh {
		return snapshot
	}

	fetched, err := c.catalog.FetchActivePlans(ctx)
	if err != nil {
		c.logger.Warn("plan catalog fetch failed, serving cached snapshot", zap.Error(err))
		if snapshot != nil {
			return snapshot
		}
		return map[models.PlanTier]models.Plan{}
	}

	plans := make(map[models.PlanTier]models.Plan, len(fetched))
	for _, plan := range fetched {
		plans[plan.Name] = plan
	}

	c.mu.Lock()
	c.plans = plans
	c.fetchedAt = c.now()
	c.mu.Unlock()

	return plans
}

// Invalidate forces the next read to refetch. Used after admin edits to the
// catalog so changes propagate before the TTL elapses.
func (c *PlanCache) Invalidate() {
	c.mu.Lock()
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}
