package middleware

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/aurasystem/aura-api/internal/models"
	appErrors "github.com/aurasystem/aura-api/pkg/errors"
	"github.com/aurasystem/aura-api/pkg/response"
)

// ContextCompanyKey is the gin context key storing the resolved tenant.
const ContextCompanyKey = "currentCompany"

// CompanyHeader carries the tenant id, set by the auth gateway in front of
// this service after it validates the session.
const CompanyHeader = "X-Company-ID"

type companyReader interface {
	FindByID(ctx context.Context, id string) (*models.Company, error)
}

// CompanyContext resolves the tenant for every request. Handlers downstream
// can rely on a loaded company with a current subscription snapshot.
func CompanyContext(companies companyReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := c.GetHeader(CompanyHeader)
		if companyID == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		company, err := companies.FindByID(c.Request.Context(), companyID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "unknown company"))
			} else {
				response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve company"))
			}
			c.Abort()
			return
		}

		c.Set(ContextCompanyKey, company)
		c.Next()
	}
}

// CompanyFromContext returns the tenant stored by CompanyContext.
func CompanyFromContext(c *gin.Context) *models.Company {
	if v, exists := c.Get(ContextCompanyKey); exists {
		if company, ok := v.(*models.Company); ok {
			return company
		}
	}
	return nil
}
