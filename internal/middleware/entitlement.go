package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/aurasystem/aura-api/internal/models"
	appErrors "github.com/aurasystem/aura-api/pkg/errors"
	"github.com/aurasystem/aura-api/pkg/response"
)

type entitlementGate interface {
	HasModuleAccess(ctx context.Context, snap models.SubscriptionSnapshot, module models.Module) bool
	IsReadOnlyMode(snap models.SubscriptionSnapshot) bool
	ErrorMessage(ctx context.Context, snap models.SubscriptionSnapshot, module models.Module) string
}

type denialRecorder interface {
	RecordEntitlementDenial(check string)
}

// RequireModule blocks routes whose module the company's plan does not grant.
func RequireModule(gate entitlementGate, metrics denialRecorder, module models.Module) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := CompanyFromContext(c)
		if company == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		snap := company.Subscription()
		if !gate.HasModuleAccess(c.Request.Context(), snap, module) {
			if metrics != nil {
				metrics.RecordEntitlementDenial("module_access")
			}
			response.Error(c, appErrors.Clone(appErrors.ErrModuleNotAvailable, gate.ErrorMessage(c.Request.Context(), snap, module)))
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireWritable blocks mutating routes for companies in read-only mode.
// Reads stay available; only writes are refused.
func RequireWritable(gate entitlementGate, metrics denialRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := CompanyFromContext(c)
		if company == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		snap := company.Subscription()
		if gate.IsReadOnlyMode(snap) {
			if metrics != nil {
				metrics.RecordEntitlementDenial("read_only")
			}
			response.Error(c, appErrors.Clone(appErrors.ErrReadOnlyMode, gate.ErrorMessage(c.Request.Context(), snap, "")))
			c.Abort()
			return
		}

		c.Next()
	}
}
