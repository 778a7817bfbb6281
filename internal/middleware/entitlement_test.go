package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurasystem/aura-api/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type gateStub struct {
	moduleAccess bool
	readOnly     bool
	message      string
}

func (s *gateStub) HasModuleAccess(ctx context.Context, snap models.SubscriptionSnapshot, module models.Module) bool {
	return s.moduleAccess
}

func (s *gateStub) IsReadOnlyMode(snap models.SubscriptionSnapshot) bool {
	return s.readOnly
}

func (s *gateStub) ErrorMessage(ctx context.Context, snap models.SubscriptionSnapshot, module models.Module) string {
	return s.message
}

type denialRecorderStub struct {
	checks []string
}

func (s *denialRecorderStub) RecordEntitlementDenial(check string) {
	s.checks = append(s.checks, check)
}

type companyReaderStub struct {
	company *models.Company
	err     error
}

func (s *companyReaderStub) FindByID(ctx context.Context, id string) (*models.Company, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.company, nil
}

func testCompany() *models.Company {
	return &models.Company{
		ID:                 "c1",
		Plan:               models.PlanTierStarter,
		SubscriptionStatus: models.SubscriptionActive,
	}
}

func withCompany(company *models.Company) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextCompanyKey, company)
		c.Next()
	}
}

func performRequest(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func TestRequireModuleGranted(t *testing.T) {
	gate := &gateStub{moduleAccess: true}
	r := gin.New()
	r.GET("/x", withCompany(testCompany()), RequireModule(gate, nil, models.ModuleScheduling), okHandler)

	w := performRequest(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireModuleDenied(t *testing.T) {
	gate := &gateStub{moduleAccess: false, message: "the scheduling module is not available in your current plan"}
	metrics := &denialRecorderStub{}
	r := gin.New()
	r.GET("/x", withCompany(testCompany()), RequireModule(gate, metrics, models.ModuleScheduling), okHandler)

	w := performRequest(r, http.MethodGet, "/x", nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "MODULE_NOT_AVAILABLE")
	assert.Contains(t, w.Body.String(), "scheduling module is not available")
	assert.Equal(t, []string{"module_access"}, metrics.checks)
}

func TestRequireModuleWithoutCompany(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequireModule(&gateStub{moduleAccess: true}, nil, models.ModuleScheduling), okHandler)

	w := performRequest(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireWritableAllowsWrites(t *testing.T) {
	r := gin.New()
	r.POST("/x", withCompany(testCompany()), RequireWritable(&gateStub{}, nil), okHandler)

	w := performRequest(r, http.MethodPost, "/x", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireWritableBlocksReadOnlyCompanies(t *testing.T) {
	gate := &gateStub{readOnly: true, message: "your plan has expired, renew your subscription to resume making changes"}
	metrics := &denialRecorderStub{}
	r := gin.New()
	r.POST("/x", withCompany(testCompany()), RequireWritable(gate, metrics), okHandler)

	w := performRequest(r, http.MethodPost, "/x", nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "READ_ONLY_MODE")
	assert.Equal(t, []string{"read_only"}, metrics.checks)
}

func TestCompanyContextResolvesTenant(t *testing.T) {
	companies := &companyReaderStub{company: testCompany()}
	r := gin.New()
	r.GET("/x", CompanyContext(companies), func(c *gin.Context) {
		company := CompanyFromContext(c)
		require.NotNil(t, company)
		c.JSON(http.StatusOK, gin.H{"company_id": company.ID})
	})

	w := performRequest(r, http.MethodGet, "/x", map[string]string{CompanyHeader: "c1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "c1")
}

func TestCompanyContextMissingHeader(t *testing.T) {
	r := gin.New()
	r.GET("/x", CompanyContext(&companyReaderStub{}), okHandler)

	w := performRequest(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCompanyContextUnknownCompany(t *testing.T) {
	r := gin.New()
	r.GET("/x", CompanyContext(&companyReaderStub{err: sql.ErrNoRows}), okHandler)

	w := performRequest(r, http.MethodGet, "/x", map[string]string{CompanyHeader: "ghost"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unknown company")
}
