package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/aurasystem/aura-api/internal/models"
	appErrors "github.com/aurasystem/aura-api/pkg/errors"
)

type patientRepository interface {
	ListByCompany(ctx context.Context, companyID string) ([]models.Patient, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
	Create(ctx context.Context, patient *models.Patient) error
}

type professionalRepository interface {
	ListByCompany(ctx context.Context, companyID string) ([]models.Professional, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
	Create(ctx context.Context, professional *models.Professional) error
}

// CreatePatientRequest describes a new patient record.
type CreatePatientRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Phone string `json:"phone" validate:"omitempty,max=30"`
	Email string `json:"email" validate:"omitempty,email"`
}

// CreateProfessionalRequest describes a new roster entry.
type CreateProfessionalRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Specialty string `json:"specialty" validate:"omitempty,max=100"`
}

// RosterService manages patients and professionals, enforcing per-plan
// creation limits through the entitlement gate.
type RosterService struct {
	patients      patientRepository
	professionals professionalRepository
	entitlements  *EntitlementService
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewRosterService instantiates RosterService.
func NewRosterService(patients patientRepository, professionals professionalRepository, entitlements *EntitlementService, validate *validator.Validate, logger *zap.Logger) *RosterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{
		patients:      patients,
		professionals: professionals,
		entitlements:  entitlements,
		validator:     validate,
		logger:        logger,
	}
}

// ListPatients returns the company's patients.
func (s *RosterService) ListPatients(ctx context.Context, companyID string) ([]models.Patient, error) {
	patients, err := s.patients.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list patients")
	}
	return patients, nil
}

// CreatePatient adds a patient after the plan limit check. The count is read
// live so the strict less-than comparison sees current data.
func (s *RosterService) CreatePatient(ctx context.Context, company *models.Company, req CreatePatientRequest) (*models.Patient, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid patient payload")
	}

	count, err := s.patients.CountByCompany(ctx, company.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count patients")
	}
	snap := company.Subscription()
	if !s.entitlements.CanCreateResource(ctx, snap, count, models.ResourcePatients) {
		return nil, appErrors.Clone(appErrors.ErrResourceLimitReached, s.entitlements.ErrorMessage(ctx, snap, ""))
	}

	patient := models.Patient{CompanyID: company.ID, Name: req.Name}
	if req.Phone != "" {
		phone := req.Phone
		patient.Phone = &phone
	}
	if req.Email != "" {
		email := req.Email
		patient.Email = &email
	}

	if err := s.patients.Create(ctx, &patient); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create patient")
	}
	return &patient, nil
}

// ListProfessionals returns the company's roster.
func (s *RosterService) ListProfessionals(ctx context.Context, companyID string) ([]models.Professional, error) {
	professionals, err := s.professionals.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list professionals")
	}
	return professionals, nil
}

// CreateProfessional adds a roster entry after the plan limit check.
func (s *RosterService) CreateProfessional(ctx context.Context, company *models.Company, req CreateProfessionalRequest) (*models.Professional, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid professional payload")
	}

	count, err := s.professionals.CountByCompany(ctx, company.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count professionals")
	}
	snap := company.Subscription()
	if !s.entitlements.CanCreateResource(ctx, snap, count, models.ResourceProfessionals) {
		return nil, appErrors.Clone(appErrors.ErrResourceLimitReached, s.entitlements.ErrorMessage(ctx, snap, ""))
	}

	professional := models.Professional{CompanyID: company.ID, Name: req.Name, IsActive: true}
	if req.Specialty != "" {
		specialty := req.Specialty
		professional.Specialty = &specialty
	}

	if err := s.professionals.Create(ctx, &professional); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create professional")
	}
	return &professional, nil
}
