package models

import (
	"time"

	"github.com/lib/pq"
)

// PlanTier identifies a subscription level. The set is closed: any tier
// outside this list is treated as having no access.
type PlanTier string

const (
	PlanTierFree         PlanTier = "FREE"
	PlanTierBasic        PlanTier = "BASIC"
	PlanTierStarter      PlanTier = "STARTER"
	PlanTierProfessional PlanTier = "PROFESSIONAL"
	PlanTierEnterprise   PlanTier = "ENTERPRISE"
)

// SubscriptionStatus reflects the billing state of a company.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionTrial    SubscriptionStatus = "TRIAL"
	SubscriptionOverdue  SubscriptionStatus = "OVERDUE"
	SubscriptionCanceled SubscriptionStatus = "CANCELED"
)

// Module names a feature area gated per plan tier.
type Module string

const (
	ModulePatients   Module = "patients"
	ModuleScheduling Module = "scheduling"
	ModuleInventory  Module = "inventory"
	ModuleFinancial  Module = "financial"
	ModuleCRM        Module = "crm"
	ModuleReports    Module = "reports"
)

// ResourceKind selects which per-plan limit applies to a creation attempt.
type ResourceKind string

const (
	ResourcePatients      ResourceKind = "patients"
	ResourceProfessionals ResourceKind = "professionals"
)

// UnlimitedResources marks a limit column as "no cap".
const UnlimitedResources = -1

// Plan is a catalog entry describing what a tier grants.
type Plan struct {
	ID               string         `db:"id" json:"id"`
	Name             PlanTier       `db:"name" json:"name"`
	Modules          pq.StringArray `db:"modules" json:"modules"`
	MaxPatients      int            `db:"max_patients" json:"max_patients"`
	MaxProfessionals int            `db:"max_professionals" json:"max_professionals"`
	IsActive         bool           `db:"is_active" json:"is_active"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// HasModule reports whether the plan grants the given module.
func (p Plan) HasModule(module Module) bool {
	for _, m := range p.Modules {
		if Module(m) == module {
			return true
		}
	}
	return false
}

// Limit returns the plan limit for the resource kind, UnlimitedResources when
// uncapped. Unknown kinds yield zero, which blocks creation.
func (p Plan) Limit(kind ResourceKind) int {
	switch kind {
	case ResourcePatients:
		return p.MaxPatients
	case ResourceProfessionals:
		return p.MaxProfessionals
	default:
		return 0
	}
}

// SubscriptionSnapshot is the read-only view of a company subscription that
// entitlement decisions are made from. It is never mutated by the gate.
type SubscriptionSnapshot struct {
	Plan      PlanTier           `json:"plan"`
	Status    SubscriptionStatus `json:"status"`
	ExpiresAt *time.Time         `json:"expires_at,omitempty"`
}
