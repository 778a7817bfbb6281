package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/aurasystem/aura-api/internal/models"
)

// EntitlementService answers plan gating questions from a subscription
// snapshot. Denials are decision values, not errors: every path returns an
// answer, and catalog trouble degrades to "no access" rather than failing
// the caller.
type EntitlementService struct {
	cache  *PlanCache
	logger *zap.Logger
	now    func() time.Time
}

// NewEntitlementService constructs an EntitlementService. The clock is
// injectable so expiry checks can be tested without real time.
func NewEntitlementService(cache *PlanCache, logger *zap.Logger, now func() time.Time) *EntitlementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &EntitlementService{cache: cache, logger: logger, now: now}
}

// HasModuleAccess reports whether the subscription grants a module.
// Cancellation always wins, regardless of expiry date or tier. The expiry
// check is deliberately redundant with the status field: either guard alone
// blocks access.
func (s *EntitlementService) HasModuleAccess(ctx context.Context, snap models.SubscriptionSnapshot, module models.Module) bool {
	if snap.Status == models.SubscriptionCanceled {
		return false
	}
	if s.expired(snap) {
		return false
	}

	plan, ok := s.cache.Plans(ctx)[snap.Plan]
	if !ok {
		s.logger.Warn("subscription references unknown plan tier",
			zap.String("plan", string(snap.Plan)),
			zap.String("module", string(module)))
		return false
	}
	return plan.HasModule(module)
}

// IsReadOnlyMode reports whether writes are denied company-wide. BASIC is the
// universal downgrade tier: a company moved there is read-only even while its
// status field says ACTIVE.
func (s *EntitlementService) IsReadOnlyMode(snap models.SubscriptionSnapshot) bool {
	if snap.Plan == models.PlanTierBasic {
		return true
	}
	if snap.Status == models.SubscriptionOverdue {
		return true
	}
	if snap.Status == models.SubscriptionTrial && s.expired(snap) {
		return true
	}
	return false
}

// CanCreateResource decides whether one more resource of the given kind may
// be created. The comparison is strict: a company sitting exactly at its
// limit cannot create the next one.
func (s *EntitlementService) CanCreateResource(ctx context.Context, snap models.SubscriptionSnapshot, currentCount int, kind models.ResourceKind) bool {
	if s.IsReadOnlyMode(snap) {
		return false
	}

	plan, ok := s.cache.Plans(ctx)[snap.Plan]
	if !ok {
		s.logger.Warn("subscription references unknown plan tier",
			zap.String("plan", string(snap.Plan)),
			zap.String("resource", string(kind)))
		return false
	}

	limit := plan.Limit(kind)
	if limit == models.UnlimitedResources {
		return true
	}
	return currentCount < limit
}

// ErrorMessage renders a human-readable denial explanation. Ordering matters:
// a cancellation message always wins over a module-specific one.
func (s *EntitlementService) ErrorMessage(ctx context.Context, snap models.SubscriptionSnapshot, module models.Module) string {
	if snap.Status == models.SubscriptionCanceled {
		return "your subscription has been canceled, contact support to reactivate your account"
	}
	if s.IsReadOnlyMode(snap) {
		return "your plan has expired, renew your subscription to resume making changes"
	}
	if module != "" && !s.HasModuleAccess(ctx, snap, module) {
		return "the " + string(module) + " module is not available in your current plan"
	}
	return "this action is not allowed for your current plan"
}

func (s *EntitlementService) expired(snap models.SubscriptionSnapshot) bool {
	return snap.ExpiresAt != nil && snap.ExpiresAt.Before(s.now())
}
