package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurasystem/aura-api/internal/models"
	appErrors "github.com/aurasystem/aura-api/pkg/errors"
)

type businessHoursWriterStub struct {
	replaced models.BusinessHours
	calls    int
}

func (s *businessHoursWriterStub) ReplaceBusinessHours(ctx context.Context, companyID string, hours models.BusinessHours) error {
	s.calls++
	s.replaced = hours
	return nil
}

type ruleRepoStub struct {
	rules   []models.UnavailabilityRule
	created []*models.UnavailabilityRule
	deleted []string
}

func (s *ruleRepoStub) ListByCompany(ctx context.Context, companyID string) ([]models.UnavailabilityRule, error) {
	return s.rules, nil
}

func (s *ruleRepoStub) Create(ctx context.Context, rule *models.UnavailabilityRule) error {
	s.created = append(s.created, rule)
	return nil
}

func (s *ruleRepoStub) Delete(ctx context.Context, companyID, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type settingsFixture struct {
	service   *SettingsService
	companies *businessHoursWriterStub
	rules     *ruleRepoStub
}

func newSettingsFixture(t *testing.T) *settingsFixture {
	t.Helper()
	companies := &businessHoursWriterStub{}
	rules := &ruleRepoStub{}
	catalog := &planCatalogStub{plans: catalogFixture()}
	clock := newFakeClock()
	cache := NewPlanCache(catalog, 5*time.Minute, nil, clock.Now)
	svc := NewSettingsService(companies, rules, NewEntitlementService(cache, nil, clock.Now), nil, nil)
	return &settingsFixture{service: svc, companies: companies, rules: rules}
}

func TestUpdateBusinessHoursStoresValidTable(t *testing.T) {
	f := newSettingsFixture(t)
	company := companyFixture(models.PlanTierStarter, models.SubscriptionActive)

	err := f.service.UpdateBusinessHours(context.Background(), company, UpdateBusinessHoursRequest{
		Hours: weekdayHoursFixture(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.companies.calls)
}

func TestUpdateBusinessHoursRejectsBadInput(t *testing.T) {
	f := newSettingsFixture(t)
	company := companyFixture(models.PlanTierStarter, models.SubscriptionActive)

	tests := []struct {
		name  string
		hours models.BusinessHours
	}{
		{"unknown weekday key", models.BusinessHours{"funday": {IsOpen: true, Start: "08:00", End: "18:00"}}},
		{"malformed start time", models.BusinessHours{"monday": {IsOpen: true, Start: "8am", End: "18:00"}}},
		{"malformed end time", models.BusinessHours{"monday": {IsOpen: true, Start: "08:00", End: "25:00"}}},
		{"closes before it opens", models.BusinessHours{"monday": {IsOpen: true, Start: "18:00", End: "08:00"}}},
		{"zero-length day", models.BusinessHours{"monday": {IsOpen: true, Start: "08:00", End: "08:00"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.service.UpdateBusinessHours(context.Background(), company, UpdateBusinessHoursRequest{Hours: tt.hours})
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
	assert.Zero(t, f.companies.calls)
}

func TestUpdateBusinessHoursSkipsClockCheckOnClosedDays(t *testing.T) {
	f := newSettingsFixture(t)
	company := companyFixture(models.PlanTierStarter, models.SubscriptionActive)

	// Closed days carry no usable times; they must not fail validation.
	err := f.service.UpdateBusinessHours(context.Background(), company, UpdateBusinessHoursRequest{
		Hours: models.BusinessHours{"sunday": {IsOpen: false}},
	})
	require.NoError(t, err)
}

func TestUpdateBusinessHoursDeniedInReadOnlyMode(t *testing.T) {
	f := newSettingsFixture(t)
	company := companyFixture(models.PlanTierBasic, models.SubscriptionActive)

	err := f.service.UpdateBusinessHours(context.Background(), company, UpdateBusinessHoursRequest{
		Hours: weekdayHoursFixture(),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrReadOnlyMode.Code, appErrors.FromError(err).Code)
	assert.Zero(t, f.companies.calls)
}

func TestCreateUnavailabilityStoresRule(t *testing.T) {
	f := newSettingsFixture(t)
	company := companyFixture(models.PlanTierStarter, models.SubscriptionActive)

	rule, err := f.service.CreateUnavailability(context.Background(), company, CreateUnavailabilityRequest{
		Description:     "vacation",
		StartTime:       "08:00",
		EndTime:         "18:00",
		Dates:           []string{"2025-07-01", "2025-07-02"},
		ProfessionalIDs: []string{"p1"},
	})
	require.NoError(t, err)
	require.Len(t, f.rules.created, 1)
	assert.Equal(t, "c1", rule.CompanyID)
	require.NotNil(t, rule.Description)
	assert.Equal(t, "vacation", *rule.Description)
}

func TestCreateUnavailabilityValidation(t *testing.T) {
	f := newSettingsFixture(t)
	company := companyFixture(models.PlanTierStarter, models.SubscriptionActive)

	tests := []struct {
		name string
		req  CreateUnavailabilityRequest
	}{
		{"missing dates", CreateUnavailabilityRequest{StartTime: "08:00", EndTime: "18:00"}},
		{"malformed start", CreateUnavailabilityRequest{StartTime: "eight", EndTime: "18:00", Dates: []string{"2025-07-01"}}},
		{"malformed end", CreateUnavailabilityRequest{StartTime: "08:00", EndTime: "18:61", Dates: []string{"2025-07-01"}}},
		{"inverted window", CreateUnavailabilityRequest{StartTime: "18:00", EndTime: "08:00", Dates: []string{"2025-07-01"}}},
		{"malformed date", CreateUnavailabilityRequest{StartTime: "08:00", EndTime: "18:00", Dates: []string{"01/07/2025"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.CreateUnavailability(context.Background(), company, tt.req)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
	assert.Empty(t, f.rules.created)
}

func TestCreateUnavailabilityDeniedInReadOnlyMode(t *testing.T) {
	f := newSettingsFixture(t)
	company := companyFixture(models.PlanTierStarter, models.SubscriptionOverdue)

	_, err := f.service.CreateUnavailability(context.Background(), company, CreateUnavailabilityRequest{
		StartTime: "08:00",
		EndTime:   "18:00",
		Dates:     []string{"2025-07-01"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrReadOnlyMode.Code, appErrors.FromError(err).Code)
}

func TestDeleteUnavailability(t *testing.T) {
	f := newSettingsFixture(t)
	company := companyFixture(models.PlanTierStarter, models.SubscriptionActive)

	require.NoError(t, f.service.DeleteUnavailability(context.Background(), company, "r1"))
	assert.Equal(t, []string{"r1"}, f.rules.deleted)
}

func TestDeleteUnavailabilityDeniedInReadOnlyMode(t *testing.T) {
	f := newSettingsFixture(t)
	company := companyFixture(models.PlanTierBasic, models.SubscriptionActive)

	err := f.service.DeleteUnavailability(context.Background(), company, "r1")
	require.Error(t, err)
	assert.Empty(t, f.rules.deleted)
}
