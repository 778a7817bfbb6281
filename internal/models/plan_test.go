package models

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestPlanHasModule(t *testing.T) {
	plan := Plan{Modules: pq.StringArray{"patients", "scheduling"}}

	assert.True(t, plan.HasModule(ModuleScheduling))
	assert.False(t, plan.HasModule(ModuleFinancial))
	assert.False(t, Plan{}.HasModule(ModulePatients))
}

func TestPlanLimit(t *testing.T) {
	plan := Plan{MaxPatients: 100, MaxProfessionals: UnlimitedResources}

	assert.Equal(t, 100, plan.Limit(ResourcePatients))
	assert.Equal(t, UnlimitedResources, plan.Limit(ResourceProfessionals))
	// Unknown kinds get a zero limit, which blocks creation.
	assert.Zero(t, plan.Limit(ResourceKind("rooms")))
}

func TestCompanySubscriptionSnapshot(t *testing.T) {
	expires := time.Now().Add(24 * time.Hour)
	company := Company{
		ID:                    "c1",
		Plan:                  PlanTierProfessional,
		SubscriptionStatus:    SubscriptionTrial,
		SubscriptionExpiresAt: &expires,
	}

	snap := company.Subscription()
	assert.Equal(t, PlanTierProfessional, snap.Plan)
	assert.Equal(t, SubscriptionTrial, snap.Status)
	assert.Equal(t, &expires, snap.ExpiresAt)
}
