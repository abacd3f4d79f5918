// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/MKhiriev/go-ferrari-store/internal/app"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/service"
	"github.com/MKhiriev/go-ferrari-store/internal/utils"
	"github.com/MKhiriev/go-ferrari-store/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Stub AuthService
// ─────────────────────────────────────────────

// stubAuthService implements service.AuthService. Only parseTokenFn is
// consulted by the middleware.
type stubAuthService struct {
	parseTokenFn func(ctx context.Context, tokenString string) (models.Token, error)
}

func (s *stubAuthService) RegisterUser(context.Context, models.User) (models.User, error) {
	return models.User{}, errors.New("not used")
}

func (s *stubAuthService) Login(context.Context, models.User) (models.User, error) {
	return models.User{}, errors.New("not used")
}

func (s *stubAuthService) CreateToken(context.Context, models.User) (models.Token, error) {
	return models.Token{}, errors.New("not used")
}

func (s *stubAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return s.parseTokenFn(ctx, tokenString)
}

func tokensByString(valid map[string]models.Token) *stubAuthService {
	return &stubAuthService{parseTokenFn: func(_ context.Context, s string) (models.Token, error) {
		if s == "expired" {
			return models.Token{}, fmt.Errorf("%w: exp in the past", service.ErrTokenIsExpired)
		}
		if tok, ok := valid[s]; ok {
			return tok, nil
		}
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}}
}

func newHandlerWithAuthService(authSvc service.AuthService) *Handler {
	return NewHandler(&service.Services{AuthService: authSvc}, testConfig(), logger.Nop())
}

func executeAuth(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rec, req)
	return rec
}

// ─────────────────────────────────────────────
// getTokenFromAuthHeader
// ─────────────────────────────────────────────

func TestGetTokenFromAuthHeader_TableTest(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "surrounding spaces", header: "  Bearer   abc  ", want: "abc"},
		{name: "no token", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "empty token", header: "Bearer  ", wantErr: ErrInvalidAuthorizationHeader},
		{name: "basic auth", header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidAuthorizationHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ─────────────────────────────────────────────
// auth
// ─────────────────────────────────────────────

func TestAuth_Middleware_TableTest(t *testing.T) {
	h := newHandlerWithAuthService(tokensByString(map[string]models.Token{
		"good": {UserID: 7, Role: models.RoleUser},
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
		wantNext   bool
	}{
		{name: "valid token", header: "Bearer good", wantStatus: http.StatusOK, wantNext: true},
		{name: "missing header", wantStatus: http.StatusUnauthorized, wantBody: app.MsgTokenIsExpiredOrInvalid},
		{name: "malformed header", header: "good", wantStatus: http.StatusUnauthorized, wantBody: app.MsgTokenIsExpiredOrInvalid},
		{name: "expired token", header: "Bearer expired", wantStatus: http.StatusUnauthorized, wantBody: app.MsgTokenIsExpired},
		{name: "forged token", header: "Bearer forged", wantStatus: http.StatusUnauthorized, wantBody: app.MsgTokenIsExpiredOrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			rec := executeAuth(h, tt.header, next)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, called)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
			}
		})
	}
}

func TestAuth_UserInContext(t *testing.T) {
	h := newHandlerWithAuthService(tokensByString(map[string]models.Token{
		"admin": {UserID: 1, Role: models.RoleAdmin},
	}))

	var (
		gotID   int64
		gotRole models.Role
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = utils.GetUserIDFromContext(r.Context())
		gotRole, _ = utils.GetRoleFromContext(r.Context())
	})

	executeAuth(h, "Bearer admin", next)

	assert.Equal(t, int64(1), gotID)
	assert.Equal(t, models.RoleAdmin, gotRole)
}

func TestAuth_ConcurrentRequests(t *testing.T) {
	valid := map[string]models.Token{}
	for i := 1; i <= 20; i++ {
		valid[fmt.Sprintf("t%d", i)] = models.Token{UserID: int64(i), Role: models.RoleUser}
	}
	h := newHandlerWithAuthService(tokensByString(valid))

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, _ := utils.GetUserIDFromContext(r.Context())
				assert.Equal(t, int64(i), id)
			})
			rec := executeAuth(h, fmt.Sprintf("Bearer t%d", i), next)
			assert.Equal(t, http.StatusOK, rec.Code)
		}(i)
	}
	wg.Wait()
}

// ─────────────────────────────────────────────
// adminOnly
// ─────────────────────────────────────────────

func TestAdminOnly(t *testing.T) {
	h := newHandlerWithAuthService(&stubAuthService{})

	tests := []struct {
		name       string
		role       models.Role
		anonymous  bool
		wantStatus int
	}{
		{name: "admin passes", role: models.RoleAdmin, wantStatus: http.StatusNoContent},
		{name: "customer refused", role: models.RoleUser, wantStatus: http.StatusForbidden},
		{name: "no identity", anonymous: true, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})
			req := httptest.NewRequest(http.MethodDelete, "/api/admin/products/1", nil)
			if !tt.anonymous {
				req = asUser(req, 3, tt.role)
			}
			rec := httptest.NewRecorder()

			h.adminOnly(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusForbidden {
				assert.Equal(t, app.MsgAdminOnly, strings.TrimSpace(rec.Body.String()))
			}
		})
	}
}
