package models

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestUnavailabilityRuleAppliesOn(t *testing.T) {
	rule := UnavailabilityRule{Dates: pq.StringArray{"2025-07-01", "2025-07-02"}}

	assert.True(t, rule.AppliesOn("2025-07-01"))
	assert.False(t, rule.AppliesOn("2025-07-03"))
}

func TestUnavailabilityRuleAppliesTo(t *testing.T) {
	scoped := UnavailabilityRule{ProfessionalIDs: pq.StringArray{"p1", "p2"}}
	assert.True(t, scoped.AppliesTo("p1"))
	assert.False(t, scoped.AppliesTo("p3"))

	// No listed professionals targets everyone.
	global := UnavailabilityRule{}
	assert.True(t, global.AppliesTo("p3"))
}
