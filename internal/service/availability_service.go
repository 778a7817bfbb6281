package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aurasystem/aura-api/internal/models"
)

// SlotReason categorises why a candidate slot was denied.
type SlotReason string

const (
	SlotOutsideHours SlotReason = "OUTSIDE_BUSINESS_HOURS"
	SlotBlocked      SlotReason = "UNAVAILABLE"
)

// SlotDecision is the outcome of validating a candidate appointment time.
type SlotDecision struct {
	Valid   bool       `json:"valid"`
	Reason  SlotReason `json:"reason,omitempty"`
	Message string     `json:"message,omitempty"`
}

// HoursCheck is the outcome of a business-hours validation.
type HoursCheck struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// UnavailabilityCheck is the outcome of matching unavailability rules.
type UnavailabilityCheck struct {
	Blocked bool   `json:"blocked"`
	Reason  string `json:"reason,omitempty"`
}

// AvailabilityService decides whether a candidate appointment slot is
// bookable. All methods are pure functions over the snapshots the caller
// supplies; nothing is loaded or stored here, so the same inputs always
// produce the same decision.
type AvailabilityService struct {
	logger *zap.Logger
}

// NewAvailabilityService instantiates AvailabilityService.
func NewAvailabilityService(logger *zap.Logger) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{logger: logger}
}

// IsWithinBusinessHours checks a timestamp against the weekly opening table.
// A nil table means the company never configured hours and is treated as
// always open; new companies book freely until settings are saved.
func (s *AvailabilityService) IsWithinBusinessHours(t time.Time, hours models.BusinessHours) HoursCheck {
	if hours == nil {
		return HoursCheck{Valid: true}
	}

	day, ok := hours.ForWeekday(t.Weekday())
	if !ok || !day.IsOpen {
		return HoursCheck{Message: fmt.Sprintf("the clinic is closed on %s", weekdayNames[t.Weekday()])}
	}

	openAt, err := parseClock(day.Start)
	if err != nil {
		s.logger.Warn("malformed business hours entry", zap.String("weekday", models.WeekdayKey(t.Weekday())), zap.Error(err))
		return HoursCheck{Valid: true}
	}
	closeAt, err := parseClock(day.End)
	if err != nil {
		s.logger.Warn("malformed business hours entry", zap.String("weekday", models.WeekdayKey(t.Weekday())), zap.Error(err))
		return HoursCheck{Valid: true}
	}

	minute := minutesOfDay(t)
	if minute < openAt {
		return HoursCheck{Message: fmt.Sprintf("before opening hours, the clinic opens at %s", day.Start)}
	}
	// Closing time is an exclusive bound: a slot starting exactly at closing
	// is rejected.
	if minute >= closeAt {
		return HoursCheck{Message: fmt.Sprintf("after closing hours, the clinic closes at %s", day.End)}
	}

	return HoursCheck{Valid: true}
}

// CheckUnavailability matches a timestamp against the company's block rules.
// Rules are evaluated in input order and the first satisfying rule wins;
// overlapping rules carry no priority beyond their position.
func (s *AvailabilityService) CheckUnavailability(t time.Time, professionalID string, rules []models.UnavailabilityRule) UnavailabilityCheck {
	date := dateKey(t)
	minute := minutesOfDay(t)

	for _, rule := range rules {
		if !rule.AppliesOn(date) {
			continue
		}
		if !rule.AppliesTo(professionalID) {
			continue
		}
		start, err := parseClock(rule.StartTime)
		if err != nil {
			s.logger.Warn("skipping malformed unavailability rule", zap.String("rule_id", rule.ID), zap.Error(err))
			continue
		}
		end, err := parseClock(rule.EndTime)
		if err != nil {
			s.logger.Warn("skipping malformed unavailability rule", zap.String("rule_id", rule.ID), zap.Error(err))
			continue
		}
		if minute < start || minute >= end {
			continue
		}
		reason := "the professional is unavailable at this time"
		if rule.Description != nil && *rule.Description != "" {
			reason = *rule.Description
		}
		return UnavailabilityCheck{Blocked: true, Reason: reason}
	}

	return UnavailabilityCheck{}
}

// ValidateAppointmentTime composes both checks. Business hours run first and
// short-circuit: when a slot is both outside opening hours and inside a block
// rule, the business-hours message is the one surfaced.
func (s *AvailabilityService) ValidateAppointmentTime(t time.Time, professionalID string, hours models.BusinessHours, rules []models.UnavailabilityRule) SlotDecision {
	if check := s.IsWithinBusinessHours(t, hours); !check.Valid {
		return SlotDecision{Reason: SlotOutsideHours, Message: check.Message}
	}
	if check := s.CheckUnavailability(t, professionalID, rules); check.Blocked {
		return SlotDecision{Reason: SlotBlocked, Message: check.Reason}
	}
	return SlotDecision{Valid: true}
}
