package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-ferrari-store/internal/config"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/mock"
	"github.com/MKhiriev/go-ferrari-store/internal/service"
	"github.com/MKhiriev/go-ferrari-store/internal/utils"
	"github.com/MKhiriev/go-ferrari-store/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// Fixtures
// ─────────────────────────────────────────────

type serviceMocks struct {
	auth     *mock.MockAuthService
	users    *mock.MockUserService
	products *mock.MockProductService
	category *mock.MockCategoryService
	cart     *mock.MockCartService
	orders   *mock.MockOrderService
	appInfo  *mock.MockAppInfoService
}

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		Storage: config.Storage{Files: config.Files{PublicPrefix: "/static/images/", MaxUploadBytes: 1 << 20}},
	}
}

// newTestHandler builds a Handler whose services are all gomock mocks.
func newTestHandler(t *testing.T) (*Handler, serviceMocks) {
	t.Helper()
	return newTestHandlerWithConfig(t, testConfig())
}

func newTestHandlerWithConfig(t *testing.T, cfg config.StructuredConfig) (*Handler, serviceMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := serviceMocks{
		auth:     mock.NewMockAuthService(ctrl),
		users:    mock.NewMockUserService(ctrl),
		products: mock.NewMockProductService(ctrl),
		category: mock.NewMockCategoryService(ctrl),
		cart:     mock.NewMockCartService(ctrl),
		orders:   mock.NewMockOrderService(ctrl),
		appInfo:  mock.NewMockAppInfoService(ctrl),
	}
	svcs := &service.Services{
		AuthService:     m.auth,
		UserService:     m.users,
		ProductService:  m.products,
		CategoryService: m.category,
		CartService:     m.cart,
		OrderService:    m.orders,
		AppInfoService:  m.appInfo,
	}
	return NewHandler(svcs, cfg, logger.Nop()), m
}

// asUser attaches the identity the auth middleware would have set.
func asUser(r *http.Request, userID int64, role models.Role) *http.Request {
	return r.WithContext(utils.WithUser(r.Context(), userID, role))
}

// serve runs a single handler with chi URL params resolved through a
// throwaway router.
func serve(method, pattern, target string, body io.Reader, h http.HandlerFunc, decorate func(*http.Request) *http.Request) *httptest.ResponseRecorder {
	router := newPatternRouter(method, pattern, h)
	req := httptest.NewRequest(method, target, body)
	if decorate != nil {
		req = decorate(req)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func newPatternRouter(method, pattern string, h http.HandlerFunc) *chi.Mux {
	router := chi.NewRouter()
	router.MethodFunc(method, pattern, h)
	return router
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_StoresDependencies(t *testing.T) {
	svcs := &service.Services{}
	log := logger.Nop()
	cfg := testConfig()
	cfg.Server.AuthRateLimit = 2
	cfg.Server.AuthRateBurst = 3

	h := NewHandler(svcs, cfg, log)

	require.NotNil(t, h)
	assert.Equal(t, svcs, h.services)
	assert.Equal(t, log, h.logger)
	assert.Equal(t, cfg.Storage.Files, h.files)
	require.NotNil(t, h.authLimiter)
	assert.Equal(t, 3, h.authLimiter.burst)
}

func TestNewHandler_RateLimitDisabled(t *testing.T) {
	h := NewHandler(&service.Services{}, testConfig(), logger.Nop())

	assert.Nil(t, h.authLimiter)
}

func TestNewHandler_IndependentInstances(t *testing.T) {
	h1 := NewHandler(&service.Services{}, testConfig(), logger.Nop())
	h2 := NewHandler(&service.Services{}, testConfig(), logger.Nop())

	assert.NotSame(t, h1, h2)
}

// ─────────────────────────────────────────────
// Version / health
// ─────────────────────────────────────────────

func TestGetServerVersion(t *testing.T) {
	h, m := newTestHandler(t)
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.4.0")

	rec := httptest.NewRecorder()
	h.getServerVersion(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1.4.0", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}

func TestGetHealth(t *testing.T) {
	tests := []struct {
		name       string
		health     models.HealthStatus
		wantStatus int
	}{
		{name: "up", health: models.HealthStatus{Status: "ok", Database: "up"}, wantStatus: http.StatusOK},
		{name: "database down", health: models.HealthStatus{Status: "degraded", Database: "down"}, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.appInfo.EXPECT().CheckHealth(gomock.Any()).Return(tt.health)

			rec := httptest.NewRecorder()
			h.getHealth(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil).WithContext(context.Background()))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.health.Database)
		})
	}
}
