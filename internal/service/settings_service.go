package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/aurasystem/aura-api/internal/models"
	appErrors "github.com/aurasystem/aura-api/pkg/errors"
)

type businessHoursWriter interface {
	ReplaceBusinessHours(ctx context.Context, companyID string, hours models.BusinessHours) error
}

type unavailabilityRepository interface {
	ListByCompany(ctx context.Context, companyID string) ([]models.UnavailabilityRule, error)
	Create(ctx context.Context, rule *models.UnavailabilityRule) error
	Delete(ctx context.Context, companyID, id string) error
}

// UpdateBusinessHoursRequest replaces the weekly opening table wholesale.
type UpdateBusinessHoursRequest struct {
	Hours models.BusinessHours `json:"hours" validate:"required"`
}

// CreateUnavailabilityRequest describes a new block rule.
type CreateUnavailabilityRequest struct {
	Description     string   `json:"description" validate:"omitempty,max=200"`
	StartTime       string   `json:"start_time" validate:"required"`
	EndTime         string   `json:"end_time" validate:"required"`
	Dates           []string `json:"dates" validate:"required,min=1"`
	ProfessionalIDs []string `json:"professional_ids"`
}

// SettingsService manages company scheduling settings. Rules and hours are
// validated here, on write, so the availability resolver can trust its
// inputs.
type SettingsService struct {
	companies    businessHoursWriter
	rules        unavailabilityRepository
	entitlements *EntitlementService
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewSettingsService instantiates SettingsService.
func NewSettingsService(companies businessHoursWriter, rules unavailabilityRepository, entitlements *EntitlementService, validate *validator.Validate, logger *zap.Logger) *SettingsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{
		companies:    companies,
		rules:        rules,
		entitlements: entitlements,
		validator:    validate,
		logger:       logger,
	}
}

// UpdateBusinessHours validates and stores the full weekly table.
func (s *SettingsService) UpdateBusinessHours(ctx context.Context, company *models.Company, req UpdateBusinessHoursRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid business hours payload")
	}
	snap := company.Subscription()
	if s.entitlements.IsReadOnlyMode(snap) {
		return appErrors.Clone(appErrors.ErrReadOnlyMode, s.entitlements.ErrorMessage(ctx, snap, ""))
	}

	for key, day := range req.Hours {
		if !validWeekdayKey(key) {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown weekday %q", key))
		}
		if !day.IsOpen {
			continue
		}
		start, err := parseClock(day.Start)
		if err != nil {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid start time for %s", key))
		}
		end, err := parseClock(day.End)
		if err != nil {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid end time for %s", key))
		}
		if start >= end {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s closes before it opens", key))
		}
	}

	if err := s.companies.ReplaceBusinessHours(ctx, company.ID, req.Hours); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update business hours")
	}
	return nil
}

// ListUnavailability returns the company's block rules in match order.
func (s *SettingsService) ListUnavailability(ctx context.Context, companyID string) ([]models.UnavailabilityRule, error) {
	rules, err := s.rules.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list unavailability rules")
	}
	return rules, nil
}

// CreateUnavailability validates and stores a block rule.
func (s *SettingsService) CreateUnavailability(ctx context.Context, company *models.Company, req CreateUnavailabilityRequest) (*models.UnavailabilityRule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid unavailability payload")
	}
	snap := company.Subscription()
	if s.entitlements.IsReadOnlyMode(snap) {
		return nil, appErrors.Clone(appErrors.ErrReadOnlyMode, s.entitlements.ErrorMessage(ctx, snap, ""))
	}

	start, err := parseClock(req.StartTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid start time")
	}
	end, err := parseClock(req.EndTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid end time")
	}
	if start >= end {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end time must be after start time")
	}
	for _, date := range req.Dates {
		if !validDateKey(date) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
		}
	}

	rule := models.UnavailabilityRule{
		CompanyID:       company.ID,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Dates:           pq.StringArray(req.Dates),
		ProfessionalIDs: pq.StringArray(req.ProfessionalIDs),
	}
	if req.Description != "" {
		description := req.Description
		rule.Description = &description
	}

	if err := s.rules.Create(ctx, &rule); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create unavailability rule")
	}
	return &rule, nil
}

// DeleteUnavailability removes a block rule.
func (s *SettingsService) DeleteUnavailability(ctx context.Context, company *models.Company, id string) error {
	snap := company.Subscription()
	if s.entitlements.IsReadOnlyMode(snap) {
		return appErrors.Clone(appErrors.ErrReadOnlyMode, s.entitlements.ErrorMessage(ctx, snap, ""))
	}
	if err := s.rules.Delete(ctx, company.ID, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "unavailability rule not found")
	}
	return nil
}

func validWeekdayKey(key string) bool {
	switch key {
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		return true
	default:
		return false
	}
}
