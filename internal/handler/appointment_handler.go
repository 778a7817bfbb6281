package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aurasystem/aura-api/internal/middleware"
	"github.com/aurasystem/aura-api/internal/models"
	"github.com/aurasystem/aura-api/internal/service"
	appErrors "github.com/aurasystem/aura-api/pkg/errors"
	"github.com/aurasystem/aura-api/pkg/response"
)

type appointmentService interface {
	Create(ctx context.Context, company *models.Company, req service.CreateAppointmentRequest) (*models.Appointment, error)
	CheckSlot(ctx context.Context, company *models.Company, professionalID string, startsAt time.Time) (service.SlotDecision, error)
	List(ctx context.Context, companyID string, filter models.AppointmentFilter) ([]models.Appointment, *models.Pagination, error)
	Cancel(ctx context.Context, company *models.Company, id string) error
}

// AppointmentHandler exposes booking endpoints.
type AppointmentHandler struct {
	service appointmentService
	metrics *service.MetricsService
}

// NewAppointmentHandler builds a new handler.
func NewAppointmentHandler(svc appointmentService, metrics *service.MetricsService) *AppointmentHandler {
	return &AppointmentHandler{service: svc, metrics: metrics}
}

// Create godoc
// @Summary Book an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param payload body service.CreateAppointmentRequest true "Appointment payload"
// @Success 201 {object} response.Envelope
// @Router /appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req service.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid appointment payload"))
		return
	}

	company := middleware.CompanyFromContext(c)
	appt, err := h.service.Create(c.Request.Context(), company, req)
	if err != nil {
		h.recordDenial(err)
		response.Error(c, err)
		return
	}
	response.Created(c, appt)
}

// CheckAvailability godoc
// @Summary Preview whether a slot is bookable
// @Tags Appointments
// @Produce json
// @Param professional_id query string true "Professional ID"
// @Param starts_at query string true "RFC 3339 timestamp"
// @Success 200 {object} response.Envelope
// @Router /appointments/availability [get]
func (h *AppointmentHandler) CheckAvailability(c *gin.Context) {
	professionalID := c.Query("professional_id")
	if professionalID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "professional_id is required"))
		return
	}
	startsAt, err := time.Parse(time.RFC3339, c.Query("starts_at"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "starts_at must be an RFC 3339 timestamp"))
		return
	}

	company := middleware.CompanyFromContext(c)
	decision, err := h.service.CheckSlot(c.Request.Context(), company, professionalID, startsAt)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !decision.Valid && h.metrics != nil {
		h.metrics.RecordSlotDenial(string(decision.Reason))
	}
	response.JSON(c, http.StatusOK, decision, nil)
}

// List godoc
// @Summary List appointments
// @Tags Appointments
// @Produce json
// @Param professional_id query string false "Professional ID"
// @Param status query string false "Status filter"
// @Success 200 {object} response.Envelope
// @Router /appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	company := middleware.CompanyFromContext(c)

	filter := models.AppointmentFilter{
		ProfessionalID: c.Query("professional_id"),
		PatientID:      c.Query("patient_id"),
		Status:         models.AppointmentStatus(c.Query("status")),
		Page:           intQuery(c, "page", 1),
		PageSize:       intQuery(c, "page_size", 20),
	}
	if from, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		filter.From = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		filter.To = &to
	}

	appts, pagination, err := h.service.List(c.Request.Context(), company.ID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, appts, pagination)
}

// Cancel godoc
// @Summary Cancel an appointment
// @Tags Appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 204
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	company := middleware.CompanyFromContext(c)
	if err := h.service.Cancel(c.Request.Context(), company, c.Param("id")); err != nil {
		h.recordDenial(err)
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *AppointmentHandler) recordDenial(err error) {
	if h.metrics == nil {
		return
	}
	switch appErrors.FromError(err).Code {
	case appErrors.ErrOutsideBusinessHours.Code:
		h.metrics.RecordSlotDenial(string(service.SlotOutsideHours))
	case appErrors.ErrTimeUnavailable.Code:
		h.metrics.RecordSlotDenial(string(service.SlotBlocked))
	case appErrors.ErrReadOnlyMode.Code:
		h.metrics.RecordEntitlementDenial("read_only")
	case appErrors.ErrModuleNotAvailable.Code:
		h.metrics.RecordEntitlementDenial("module_access")
	}
}
