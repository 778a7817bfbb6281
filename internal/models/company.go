package models

import "time"

// Company is a tenant of the platform.
type Company struct {
	ID                    string             `db:"id" json:"id"`
	Name                  string             `db:"name" json:"name"`
	Plan                  PlanTier           `db:"plan" json:"plan"`
	SubscriptionStatus    SubscriptionStatus `db:"subscription_status" json:"subscription_status"`
	SubscriptionExpiresAt *time.Time         `db:"subscription_expires_at" json:"subscription_expires_at,omitempty"`
	BusinessHours         BusinessHours      `db:"business_hours" json:"business_hours,omitempty"`
	CreatedAt             time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time          `db:"updated_at" json:"updated_at"`
}

// Subscription extracts the read-only snapshot entitlement checks run on.
func (c *Company) Subscription() SubscriptionSnapshot {
	return SubscriptionSnapshot{
		Plan:      c.Plan,
		Status:    c.SubscriptionStatus,
		ExpiresAt: c.SubscriptionExpiresAt,
	}
}
