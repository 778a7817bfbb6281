package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/aurasystem/aura-api/internal/models"
	appErrors "github.com/aurasystem/aura-api/pkg/errors"
)

type appointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	FindByID(ctx context.Context, companyID, id string) (*models.Appointment, error)
	List(ctx context.Context, companyID string, filter models.AppointmentFilter) ([]models.Appointment, int, error)
	UpdateStatus(ctx context.Context, companyID, id string, status models.AppointmentStatus) error
}

type unavailabilityReader interface {
	ListByCompany(ctx context.Context, companyID string) ([]models.UnavailabilityRule, error)
}

type professionalReader interface {
	FindByID(ctx context.Context, companyID, id string) (*models.Professional, error)
}

// CreateAppointmentRequest describes payload for booking a slot.
type CreateAppointmentRequest struct {
	PatientID      string    `json:"patient_id" validate:"required"`
	ProfessionalID string    `json:"professional_id" validate:"required"`
	StartsAt       time.Time `json:"starts_at" validate:"required"`
	DurationMin    int       `json:"duration_min" validate:"omitempty,min=5,max=480"`
	Notes          string    `json:"notes" validate:"omitempty,max=2000"`
}

// AppointmentServiceConfig tunes booking behaviour.
type AppointmentServiceConfig struct {
	DefaultDurationMin int
}

// AppointmentService coordinates booking: entitlement gate first (fail fast
// on plan restrictions), then the availability resolver, then the write.
type AppointmentService struct {
	repo          appointmentRepository
	rules         unavailabilityReader
	professionals professionalReader
	availability  *AvailabilityService
	entitlements  *EntitlementService
	validator     *validator.Validate
	logger        *zap.Logger
	defaultDurMin int
}

// NewAppointmentService instantiates AppointmentService.
func NewAppointmentService(
	repo appointmentRepository,
	rules unavailabilityReader,
	professionals professionalReader,
	availability *AvailabilityService,
	entitlements *EntitlementService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg AppointmentServiceConfig,
) *AppointmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	defaultDur := cfg.DefaultDurationMin
	if defaultDur <= 0 {
		defaultDur = 60
	}
	return &AppointmentService{
		repo:          repo,
		rules:         rules,
		professionals: professionals,
		availability:  availability,
		entitlements:  entitlements,
		validator:     validate,
		logger:        logger,
		defaultDurMin: defaultDur,
	}
}

// Create books an appointment after running both rule engines.
func (s *AppointmentService) Create(ctx context.Context, company *models.Company, req CreateAppointmentRequest) (*models.Appointment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid appointment payload")
	}

	snap := company.Subscription()
	if !s.entitlements.HasModuleAccess(ctx, snap, models.ModuleScheduling) {
		return nil, appErrors.Clone(appErrors.ErrModuleNotAvailable, s.entitlements.ErrorMessage(ctx, snap, models.ModuleScheduling))
	}
	if s.entitlements.IsReadOnlyMode(snap) {
		return nil, appErrors.Clone(appErrors.ErrReadOnlyMode, s.entitlements.ErrorMessage(ctx, snap, ""))
	}

	professional, err := s.professionals.FindByID(ctx, company.ID, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "professional not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load professional")
	}
	if !professional.IsActive {
		return nil, appErrors.Clone(appErrors.ErrValidation, "professional is not accepting appointments")
	}

	decision, err := s.CheckSlot(ctx, company, req.ProfessionalID, req.StartsAt)
	if err != nil {
		return nil, err
	}
	if !decision.Valid {
		return nil, denialError(decision)
	}

	duration := req.DurationMin
	if duration <= 0 {
		duration = s.defaultDurMin
	}

	appt := models.Appointment{
		CompanyID:      company.ID,
		PatientID:      req.PatientID,
		ProfessionalID: req.ProfessionalID,
		StartsAt:       req.StartsAt,
		DurationMin:    duration,
		Status:         models.AppointmentScheduled,
	}
	if req.Notes != "" {
		notes := req.Notes
		appt.Notes = &notes
	}

	if err := s.repo.Create(ctx, &appt); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create appointment")
	}

	s.logger.Info("appointment booked",
		zap.String("company_id", company.ID),
		zap.String("professional_id", appt.ProfessionalID),
		zap.Time("starts_at", appt.StartsAt))
	return &appt, nil
}

// CheckSlot runs the availability resolver against fresh rule data without
// writing anything. Exposed for the slot preview endpoint.
func (s *AppointmentService) CheckSlot(ctx context.Context, company *models.Company, professionalID string, startsAt time.Time) (SlotDecision, error) {
	rules, err := s.rules.ListByCompany(ctx, company.ID)
	if err != nil {
		return SlotDecision{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load unavailability rules")
	}
	return s.availability.ValidateAppointmentTime(startsAt, professionalID, company.BusinessHours, rules), nil
}

// List returns bookings with pagination metadata.
func (s *AppointmentService) List(ctx context.Context, companyID string, filter models.AppointmentFilter) ([]models.Appointment, *models.Pagination, error) {
	appts, total, err := s.repo.List(ctx, companyID, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list appointments")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return appts, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Cancel transitions a booking to CANCELED. Cancellation is still a write, so
// read-only companies are refused.
func (s *AppointmentService) Cancel(ctx context.Context, company *models.Company, id string) error {
	snap := company.Subscription()
	if s.entitlements.IsReadOnlyMode(snap) {
		return appErrors.Clone(appErrors.ErrReadOnlyMode, s.entitlements.ErrorMessage(ctx, snap, ""))
	}

	appt, err := s.repo.FindByID(ctx, company.ID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load appointment")
	}
	if appt.Status == models.AppointmentCanceled {
		return appErrors.Clone(appErrors.ErrConflict, "appointment is already canceled")
	}

	if err := s.repo.UpdateStatus(ctx, company.ID, id, models.AppointmentCanceled); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cancel appointment")
	}
	return nil
}

func denialError(decision SlotDecision) *appErrors.Error {
	switch decision.Reason {
	case SlotBlocked:
		return appErrors.Clone(appErrors.ErrTimeUnavailable, decision.Message)
	default:
		return appErrors.Clone(appErrors.ErrOutsideBusinessHours, decision.Message)
	}
}
