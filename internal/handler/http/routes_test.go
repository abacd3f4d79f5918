package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-ferrari-store/internal/app"
	"github.com/MKhiriev/go-ferrari-store/internal/service"
	"github.com/MKhiriev/go-ferrari-store/models"
)

func do(t *testing.T, router http.Handler, method, target, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func expectTokens(m serviceMocks) {
	m.auth.EXPECT().ParseToken(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s string) (models.Token, error) {
		switch s {
		case "customer":
			return models.Token{UserID: 21, Role: models.RoleUser}, nil
		case "admin":
			return models.Token{UserID: 1, Role: models.RoleAdmin}, nil
		}
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}).AnyTimes()
}

func TestRoutes_Public(t *testing.T) {
	h, m := newTestHandler(t)
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("2.0.0")
	m.products.EXPECT().ListProducts(gomock.Any(), gomock.Any()).Return(models.ProductPage{}, nil)
	m.category.EXPECT().ListCategories(gomock.Any()).Return([]models.Category{}, nil)
	router := h.Init()

	for _, target := range []string{"/api/version", "/api/products", "/api/categories"} {
		rec := do(t, router, http.MethodGet, target, "")
		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.NotEmpty(t, rec.Header().Get(traceIDHeader), target)
	}
}

func TestRoutes_Protection(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		token      string
		wantStatus int
		wantBody   string
	}{
		{name: "cart without token", method: http.MethodGet, target: "/api/cart", wantStatus: http.StatusUnauthorized, wantBody: app.MsgTokenIsExpiredOrInvalid},
		{name: "orders with forged token", method: http.MethodGet, target: "/api/orders", token: "forged", wantStatus: http.StatusUnauthorized, wantBody: app.MsgTokenIsExpiredOrInvalid},
		{name: "admin route without token", method: http.MethodGet, target: "/api/admin/users", wantStatus: http.StatusUnauthorized},
		{name: "admin route as customer", method: http.MethodGet, target: "/api/admin/users", token: "customer", wantStatus: http.StatusForbidden, wantBody: app.MsgAdminOnly},
		{name: "admin delete as customer", method: http.MethodDelete, target: "/api/admin/products/3", token: "customer", wantStatus: http.StatusForbidden, wantBody: app.MsgAdminOnly},
		{name: "unrouted method", method: http.MethodPatch, target: "/api/products", wantStatus: http.StatusNotFound},
		{name: "unknown path", method: http.MethodGet, target: "/api/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			expectTokens(m)

			rec := do(t, h.Init(), tt.method, tt.target, tt.token)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
			}
		})
	}
}

func TestRoutes_AuthorizedFlows(t *testing.T) {
	h, m := newTestHandler(t)
	expectTokens(m)
	m.cart.EXPECT().GetCart(gomock.Any(), int64(21)).Return(models.CartView{}, nil)
	m.users.EXPECT().ListUsers(gomock.Any(), 0, 0).Return(models.UserList{}, nil)
	router := h.Init()

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/api/cart", "customer").Code)
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/api/admin/users", "admin").Code)
}

func TestRoutes_StaticImages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "7-f40.png"), []byte("\x89PNG\r\n\x1a\nfake"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	cfg := testConfig()
	cfg.Storage.Files.ImagesDir = dir
	h, _ := newTestHandlerWithConfig(t, cfg)
	router := h.Init()

	rec := do(t, router, http.MethodGet, "/static/images/7-f40.png", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/static/images/missing.png", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/static/images/nested/", "").Code)
}

func TestRoutes_StaticImagesDisabled(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(t, h.Init(), http.MethodGet, "/static/images/7-f40.png", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
