package service

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurasystem/aura-api/internal/models"
)

func weekdayHoursFixture() models.BusinessHours {
	open := models.DayHours{IsOpen: true, Start: "08:00", End: "18:00"}
	return models.BusinessHours{
		"monday":    open,
		"tuesday":   open,
		"wednesday": open,
		"thursday":  open,
		"friday":    models.DayHours{IsOpen: true, Start: "09:00", End: "17:00"},
		"saturday":  models.DayHours{IsOpen: false},
		"sunday":    models.DayHours{IsOpen: false},
	}
}

// 2025-06-09 is a Monday.
func mondayAt(hour, minute int) time.Time {
	return time.Date(2025, time.June, 9, hour, minute, 0, 0, time.UTC)
}

func TestIsWithinBusinessHoursNilTableIsAlwaysOpen(t *testing.T) {
	svc := NewAvailabilityService(nil)
	check := svc.IsWithinBusinessHours(mondayAt(3, 0), nil)
	assert.True(t, check.Valid)
}

func TestIsWithinBusinessHoursInsideWindow(t *testing.T) {
	svc := NewAvailabilityService(nil)
	check := svc.IsWithinBusinessHours(mondayAt(17, 59), weekdayHoursFixture())
	assert.True(t, check.Valid)
	assert.Empty(t, check.Message)
}

func TestIsWithinBusinessHoursClosingTimeIsExclusive(t *testing.T) {
	svc := NewAvailabilityService(nil)
	check := svc.IsWithinBusinessHours(mondayAt(18, 0), weekdayHoursFixture())
	require.False(t, check.Valid)
	assert.Contains(t, check.Message, "18:00")
}

func TestIsWithinBusinessHoursBeforeOpening(t *testing.T) {
	svc := NewAvailabilityService(nil)
	check := svc.IsWithinBusinessHours(mondayAt(7, 59), weekdayHoursFixture())
	require.False(t, check.Valid)
	assert.Contains(t, check.Message, "08:00")
}

func TestIsWithinBusinessHoursClosedDay(t *testing.T) {
	svc := NewAvailabilityService(nil)
	// 2025-06-08 is a Sunday, closed at any hour.
	sunday := time.Date(2025, time.June, 8, 10, 0, 0, 0, time.UTC)
	check := svc.IsWithinBusinessHours(sunday, weekdayHoursFixture())
	require.False(t, check.Valid)
	assert.Contains(t, check.Message, "Sunday")
}

func TestIsWithinBusinessHoursMissingDayEntry(t *testing.T) {
	svc := NewAvailabilityService(nil)
	hours := models.BusinessHours{"tuesday": {IsOpen: true, Start: "08:00", End: "18:00"}}
	check := svc.IsWithinBusinessHours(mondayAt(10, 0), hours)
	require.False(t, check.Valid)
	assert.Contains(t, check.Message, "Monday")
}

func TestCheckUnavailabilityMatchesProfessionalAndDate(t *testing.T) {
	svc := NewAvailabilityService(nil)
	description := "team meeting"
	rules := []models.UnavailabilityRule{{
		ID:              "r1",
		Description:     &description,
		StartTime:       "12:00",
		EndTime:         "13:00",
		Dates:           pq.StringArray{"2025-06-10"},
		ProfessionalIDs: pq.StringArray{"p1"},
	}}

	// 2025-06-10 12:30 for the listed professional is blocked.
	at := time.Date(2025, time.June, 10, 12, 30, 0, 0, time.UTC)
	check := svc.CheckUnavailability(at, "p1", rules)
	require.True(t, check.Blocked)
	assert.Equal(t, "team meeting", check.Reason)

	// Same slot for an unlisted professional is free.
	check = svc.CheckUnavailability(at, "p2", rules)
	assert.False(t, check.Blocked)

	// Same slot on a different date is free.
	otherDay := time.Date(2025, time.June, 11, 12, 30, 0, 0, time.UTC)
	check = svc.CheckUnavailability(otherDay, "p1", rules)
	assert.False(t, check.Blocked)
}

func TestCheckUnavailabilityEmptyProfessionalListBlocksEveryone(t *testing.T) {
	svc := NewAvailabilityService(nil)
	rules := []models.UnavailabilityRule{{
		ID:        "r1",
		StartTime: "00:00",
		EndTime:   "23:59",
		Dates:     pq.StringArray{"2025-06-10"},
	}}

	at := time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)
	for _, professionalID := range []string{"p1", "p2", "anyone"} {
		check := svc.CheckUnavailability(at, professionalID, rules)
		require.True(t, check.Blocked, "expected %s to be blocked", professionalID)
		assert.Equal(t, "the professional is unavailable at this time", check.Reason)
	}
}

func TestCheckUnavailabilityWindowBoundaries(t *testing.T) {
	svc := NewAvailabilityService(nil)
	rules := []models.UnavailabilityRule{{
		ID:        "r1",
		StartTime: "12:00",
		EndTime:   "13:00",
		Dates:     pq.StringArray{"2025-06-10"},
	}}

	day := func(hour, minute int) time.Time {
		return time.Date(2025, time.June, 10, hour, minute, 0, 0, time.UTC)
	}

	assert.False(t, svc.CheckUnavailability(day(11, 59), "p1", rules).Blocked)
	assert.True(t, svc.CheckUnavailability(day(12, 0), "p1", rules).Blocked)
	assert.True(t, svc.CheckUnavailability(day(12, 59), "p1", rules).Blocked)
	// End is exclusive.
	assert.False(t, svc.CheckUnavailability(day(13, 0), "p1", rules).Blocked)
}

func TestCheckUnavailabilityFirstMatchWins(t *testing.T) {
	svc := NewAvailabilityService(nil)
	first := "vacation"
	second := "maintenance"
	rules := []models.UnavailabilityRule{
		{ID: "r1", Description: &first, StartTime: "08:00", EndTime: "18:00", Dates: pq.StringArray{"2025-06-10"}},
		{ID: "r2", Description: &second, StartTime: "08:00", EndTime: "18:00", Dates: pq.StringArray{"2025-06-10"}},
	}

	at := time.Date(2025, time.June, 10, 10, 0, 0, 0, time.UTC)
	check := svc.CheckUnavailability(at, "p1", rules)
	require.True(t, check.Blocked)
	assert.Equal(t, "vacation", check.Reason)
}

func TestValidateAppointmentTimeHappyPath(t *testing.T) {
	svc := NewAvailabilityService(nil)
	decision := svc.ValidateAppointmentTime(mondayAt(10, 30), "p1", weekdayHoursFixture(), nil)
	assert.True(t, decision.Valid)
}

func TestValidateAppointmentTimeBusinessHoursTakePrecedence(t *testing.T) {
	svc := NewAvailabilityService(nil)
	// The slot is both after closing and inside a block rule; the
	// business-hours failure must be the one reported.
	rules := []models.UnavailabilityRule{{
		ID:        "r1",
		StartTime: "00:00",
		EndTime:   "23:59",
		Dates:     pq.StringArray{"2025-06-09"},
	}}

	decision := svc.ValidateAppointmentTime(mondayAt(19, 0), "p1", weekdayHoursFixture(), rules)
	require.False(t, decision.Valid)
	assert.Equal(t, SlotOutsideHours, decision.Reason)
	assert.Contains(t, decision.Message, "18:00")
}

func TestValidateAppointmentTimeSurfacesRuleReason(t *testing.T) {
	svc := NewAvailabilityService(nil)
	description := "national holiday"
	rules := []models.UnavailabilityRule{{
		ID:          "r1",
		Description: &description,
		StartTime:   "08:00",
		EndTime:     "18:00",
		Dates:       pq.StringArray{"2025-06-09"},
	}}

	decision := svc.ValidateAppointmentTime(mondayAt(10, 0), "p1", weekdayHoursFixture(), rules)
	require.False(t, decision.Valid)
	assert.Equal(t, SlotBlocked, decision.Reason)
	assert.Equal(t, "national holiday", decision.Message)
}

func TestValidateAppointmentTimeIsDeterministic(t *testing.T) {
	svc := NewAvailabilityService(nil)
	hours := weekdayHoursFixture()
	rules := []models.UnavailabilityRule{{
		ID:        "r1",
		StartTime: "12:00",
		EndTime:   "13:00",
		Dates:     pq.StringArray{"2025-06-09"},
	}}

	at := mondayAt(12, 15)
	first := svc.ValidateAppointmentTime(at, "p1", hours, rules)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, svc.ValidateAppointmentTime(at, "p1", hours, rules))
	}
}

func TestParseClockRejectsMalformedValues(t *testing.T) {
	for _, raw := range []string{"", "8", "08:60", "24:00", "ab:cd", "08:00:00x"} {
		_, err := parseClock(raw)
		assert.Error(t, err, "expected %q to be rejected", raw)
	}

	minutes, err := parseClock("18:00")
	require.NoError(t, err)
	assert.Equal(t, 18*60, minutes)
}
