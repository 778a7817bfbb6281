package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aurasystem/aura-api/internal/middleware"
	"github.com/aurasystem/aura-api/internal/models"
	"github.com/aurasystem/aura-api/internal/service"
	appErrors "github.com/aurasystem/aura-api/pkg/errors"
	"github.com/aurasystem/aura-api/pkg/response"
)

type rosterService interface {
	ListPatients(ctx context.Context, companyID string) ([]models.Patient, error)
	CreatePatient(ctx context.Context, company *models.Company, req service.CreatePatientRequest) (*models.Patient, error)
	ListProfessionals(ctx context.Context, companyID string) ([]models.Professional, error)
	CreateProfessional(ctx context.Context, company *models.Company, req service.CreateProfessionalRequest) (*models.Professional, error)
}

// RosterHandler exposes patient and professional endpoints.
type RosterHandler struct {
	service rosterService
}

// NewRosterHandler builds a new handler.
func NewRosterHandler(svc rosterService) *RosterHandler {
	return &RosterHandler{service: svc}
}

// ListPatients godoc
// @Summary List patients
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /patients [get]
func (h *RosterHandler) ListPatients(c *gin.Context) {
	company := middleware.CompanyFromContext(c)
	patients, err := h.service.ListPatients(c.Request.Context(), company.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, patients, nil)
}

// CreatePatient godoc
// @Summary Create a patient
// @Tags Roster
// @Accept json
// @Produce json
// @Param payload body service.CreatePatientRequest true "Patient payload"
// @Success 201 {object} response.Envelope
// @Router /patients [post]
func (h *RosterHandler) CreatePatient(c *gin.Context) {
	var req service.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid patient payload"))
		return
	}

	company := middleware.CompanyFromContext(c)
	patient, err := h.service.CreatePatient(c.Request.Context(), company, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, patient)
}

// ListProfessionals godoc
// @Summary List professionals
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /professionals [get]
func (h *RosterHandler) ListProfessionals(c *gin.Context) {
	company := middleware.CompanyFromContext(c)
	professionals, err := h.service.ListProfessionals(c.Request.Context(), company.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, professionals, nil)
}

// CreateProfessional godoc
// @Summary Create a professional
// @Tags Roster
// @Accept json
// @Produce json
// @Param payload body service.CreateProfessionalRequest true "Professional payload"
// @Success 201 {object} response.Envelope
// @Router /professionals [post]
func (h *RosterHandler) CreateProfessional(c *gin.Context) {
	var req service.CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid professional payload"))
		return
	}

	company := middleware.CompanyFromContext(c)
	professional, err := h.service.CreateProfessional(c.Request.Context(), company, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, professional)
}
