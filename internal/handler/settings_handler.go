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

type settingsService interface {
	UpdateBusinessHours(ctx context.Context, company *models.Company, req service.UpdateBusinessHoursRequest) error
	ListUnavailability(ctx context.Context, companyID string) ([]models.UnavailabilityRule, error)
	CreateUnavailability(ctx context.Context, company *models.Company, req service.CreateUnavailabilityRequest) (*models.UnavailabilityRule, error)
	DeleteUnavailability(ctx context.Context, company *models.Company, id string) error
}

// SettingsHandler exposes scheduling settings endpoints.
type SettingsHandler struct {
	service settingsService
}

// NewSettingsHandler builds a new handler.
func NewSettingsHandler(svc settingsService) *SettingsHandler {
	return &SettingsHandler{service: svc}
}

// GetBusinessHours godoc
// @Summary Get the weekly opening table
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings/business-hours [get]
func (h *SettingsHandler) GetBusinessHours(c *gin.Context) {
	company := middleware.CompanyFromContext(c)
	response.JSON(c, http.StatusOK, company.BusinessHours, nil)
}

// UpdateBusinessHours godoc
// @Summary Replace the weekly opening table
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body service.UpdateBusinessHoursRequest true "Business hours payload"
// @Success 200 {object} response.Envelope
// @Router /settings/business-hours [put]
func (h *SettingsHandler) UpdateBusinessHours(c *gin.Context) {
	var req service.UpdateBusinessHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid business hours payload"))
		return
	}

	company := middleware.CompanyFromContext(c)
	if err := h.service.UpdateBusinessHours(c.Request.Context(), company, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, req.Hours, nil)
}

// ListUnavailability godoc
// @Summary List unavailability rules
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings/unavailability [get]
func (h *SettingsHandler) ListUnavailability(c *gin.Context) {
	company := middleware.CompanyFromContext(c)
	rules, err := h.service.ListUnavailability(c.Request.Context(), company.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rules, nil)
}

// CreateUnavailability godoc
// @Summary Create an unavailability rule
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body service.CreateUnavailabilityRequest true "Unavailability payload"
// @Success 201 {object} response.Envelope
// @Router /settings/unavailability [post]
func (h *SettingsHandler) CreateUnavailability(c *gin.Context) {
	var req service.CreateUnavailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid unavailability payload"))
		return
	}

	company := middleware.CompanyFromContext(c)
	rule, err := h.service.CreateUnavailability(c.Request.Context(), company, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rule)
}

// DeleteUnavailability godoc
// @Summary Delete an unavailability rule
// @Tags Settings
// @Param id path string true "Rule ID"
// @Success 204
// @Router /settings/unavailability/{id} [delete]
func (h *SettingsHandler) DeleteUnavailability(c *gin.Context) {
	company := middleware.CompanyFromContext(c)
	if err := h.service.DeleteUnavailability(c.Request.Context(), company, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
