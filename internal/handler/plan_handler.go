package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aurasystem/aura-api/internal/models"
	"github.com/aurasystem/aura-api/pkg/response"
)

type planService interface {
	List(ctx context.Context) ([]models.Plan, error)
	InvalidateCache(ctx context.Context)
}

// PlanHandler exposes the plan catalog admin endpoints.
type PlanHandler struct {
	service planService
}

// NewPlanHandler builds a new handler.
func NewPlanHandler(svc planService) *PlanHandler {
	return &PlanHandler{service: svc}
}

// List godoc
// @Summary List active plans
// @Tags Plans
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /plans [get]
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plans, nil)
}

// InvalidateCache godoc
// @Summary Force every instance to reload the plan catalog
// @Tags Plans
// @Success 204
// @Router /plans/cache [delete]
func (h *PlanHandler) InvalidateCache(c *gin.Context) {
	h.service.InvalidateCache(c.Request.Context())
	response.NoContent(c)
}
