package models

import (
	"time"

	"github.com/lib/pq"
)

// UnavailabilityRule blocks bookings on specific calendar dates within a
// daily time window. An empty ProfessionalIDs list applies the rule to every
// professional of the company. Rules are immutable once created; admins
// delete and recreate them instead of editing.
type UnavailabilityRule struct {
	ID              string         `db:"id" json:"id"`
	CompanyID       string         `db:"company_id" json:"company_id"`
	Description     *string        `db:"description" json:"description,omitempty"`
	StartTime       string         `db:"start_time" json:"start_time"`
	EndTime         string         `db:"end_time" json:"end_time"`
	Dates           pq.StringArray `db:"dates" json:"dates"`
	ProfessionalIDs pq.StringArray `db:"professional_ids" json:"professional_ids"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
}

// AppliesOn reports whether the rule lists the given YYYY-MM-DD date.
func (r UnavailabilityRule) AppliesOn(date string) bool {
	for _, d := range r.Dates {
		if d == date {
			return true
		}
	}
	return false
}

// AppliesTo reports whether the rule targets the professional. Rules with no
// listed professionals target everyone.
func (r UnavailabilityRule) AppliesTo(professionalID string) bool {
	if len(r.ProfessionalIDs) == 0 {
		return true
	}
	for _, id := range r.ProfessionalIDs {
		if id == professionalID {
			return true
		}
	}
	return false
}
