package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/go-ferrari-store/internal/adapter"
	"github.com/MKhiriev/go-ferrari-store/internal/app"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/mock"
	"github.com/MKhiriev/go-ferrari-store/internal/store"
	"github.com/MKhiriev/go-ferrari-store/internal/utils"
	"github.com/MKhiriev/go-ferrari-store/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

// newTestAuthSvc wires clientAuthService to mocks and a fixed clock.
func newTestAuthSvc(t *testing.T) (
	*clientAuthService,
	*mock.MockServerAdapter,
	*mock.MockLocalSessionRepository,
	*mock.MockClientCartService,
) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockSessions := mock.NewMockLocalSessionRepository(ctrl)
	mockCart := mock.NewMockClientCartService(ctrl)

	svc := NewClientAuthService(mockSessions, mockAdapter, mockCart, logger.Nop()).(*clientAuthService)
	svc.now = func() time.Time { return fixedNow }

	return svc, mockAdapter, mockSessions, mockCart
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestClientAuthService_Register_Success(t *testing.T) {
	svc, mockAdapter, mockSessions, mockCart := newTestAuthSvc(t)
	ctx := context.Background()

	mockAdapter.EXPECT().
		Register(ctx, models.User{Email: "enzo@ferrari.it", Password: "cavallino"}).
		Return(models.User{UserID: 42, Name: "Enzo"}, nil)
	mockAdapter.EXPECT().Token().Return("jwt-token").AnyTimes()
	mockSessions.EXPECT().SaveSession(ctx, models.LocalSession{
		UserID:  42,
		Email:   "enzo@ferrari.it",
		Token:   "jwt-token",
		SavedAt: fixedNow,
	}).Return(nil)
	mockCart.EXPECT().SyncLocalCart(ctx).Return(nil)

	got, err := svc.Register(ctx, models.User{Email: "  Enzo@Ferrari.IT ", Password: "cavallino"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, "enzo@ferrari.it", got.Email)
}

func TestClientAuthService_Register_EmailTaken(t *testing.T) {
	svc, mockAdapter, _, _ := newTestAuthSvc(t)

	mockAdapter.EXPECT().Register(gomock.Any(), gomock.Any()).
		Return(models.User{}, fmt.Errorf("register: %w", fmt.Errorf("%w: %s", adapter.ErrConflict, app.MsgEmailAlreadyExists)))

	_, err := svc.Register(context.Background(), models.User{Email: "enzo@ferrari.it", Password: "cavallino"})
	assert.ErrorIs(t, err, ErrRegisterOnServer)
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestClientAuthService_Register_SaveSessionFails(t *testing.T) {
	svc, mockAdapter, mockSessions, _ := newTestAuthSvc(t)
	diskErr := errors.New("disk full")

	mockAdapter.EXPECT().Register(gomock.Any(), gomock.Any()).Return(models.User{UserID: 1}, nil)
	mockAdapter.EXPECT().Token().Return("jwt-token").AnyTimes()
	mockSessions.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(diskErr)

	_, err := svc.Register(context.Background(), models.User{Email: "a@b.it", Password: "cavallino"})
	assert.ErrorIs(t, err, diskErr)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestClientAuthService_Login_UserIDFromToken(t *testing.T) {
	svc, mockAdapter, mockSessions, mockCart := newTestAuthSvc(t)
	ctx := context.Background()

	token, err := utils.GenerateJWTToken("ferrari-store", 77, models.RoleUser, time.Hour, "key")
	require.NoError(t, err)

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(models.User{Email: "kimi@ferrari.it"}, nil)
	mockAdapter.EXPECT().Token().Return(token.SignedString).AnyTimes()
	mockSessions.EXPECT().SaveSession(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, s models.LocalSession) error {
			assert.Equal(t, int64(77), s.UserID)
			assert.Equal(t, token.SignedString, s.Token)
			return nil
		})
	mockCart.EXPECT().SyncLocalCart(ctx).Return(nil)

	_, err = svc.Login(ctx, models.User{Email: "kimi@ferrari.it", Password: "iceman2007"})
	require.NoError(t, err)
}

func TestClientAuthService_Login_CartMergeFailureIsNotFatal(t *testing.T) {
	svc, mockAdapter, mockSessions, mockCart := newTestAuthSvc(t)

	mockAdapter.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{UserID: 5}, nil)
	mockAdapter.EXPECT().Token().Return("jwt-token").AnyTimes()
	mockSessions.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(nil)
	mockCart.EXPECT().SyncLocalCart(gomock.Any()).Return(ErrCartSignatureRejected)

	got, err := svc.Login(context.Background(), models.User{Email: "a@b.it", Password: "cavallino"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.UserID)
}

func TestClientAuthService_Login_Errors(t *testing.T) {
	tests := []struct {
		name       string
		adapterErr error
		wantErr    error
	}{
		{
			name:       "wrong password",
			adapterErr: fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgInvalidEmailPassword),
			wantErr:    ErrWrongPassword,
		},
		{
			name:       "rate limited",
			adapterErr: fmt.Errorf("%w: %s", adapter.ErrTooManyRequests, app.MsgTooManyRequests),
			wantErr:    ErrTooManyRequests,
		},
		{
			name:       "invalid input",
			adapterErr: fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgInvalidDataProvided),
			wantErr:    ErrInvalidDataProvided,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockAdapter, _, _ := newTestAuthSvc(t)
			mockAdapter.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{}, tt.adapterErr)

			_, err := svc.Login(context.Background(), models.User{Email: "a@b.it", Password: "x"})
			assert.ErrorIs(t, err, ErrLoginOnServer)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── Logout / RestoreSession ─────────────────────────────────────────────────

func TestClientAuthService_Logout(t *testing.T) {
	svc, mockAdapter, mockSessions, _ := newTestAuthSvc(t)

	mockAdapter.EXPECT().SetToken("")
	mockSessions.EXPECT().DeleteSession(gomock.Any()).Return(nil)

	require.NoError(t, svc.Logout(context.Background()))
}

func TestClientAuthService_RestoreSession_Valid(t *testing.T) {
	svc, mockAdapter, mockSessions, _ := newTestAuthSvc(t)
	session := models.LocalSession{UserID: 3, Email: "a@b.it", Token: "jwt", SavedAt: fixedNow}

	mockSessions.EXPECT().GetSession(gomock.Any()).Return(session, nil)
	mockAdapter.EXPECT().SetToken("jwt")
	mockAdapter.EXPECT().Profile(gomock.Any()).Return(models.User{UserID: 3}, nil)

	got, err := svc.RestoreSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestClientAuthService_RestoreSession_NoSession(t *testing.T) {
	svc, _, mockSessions, _ := newTestAuthSvc(t)
	mockSessions.EXPECT().GetSession(gomock.Any()).Return(models.LocalSession{}, store.ErrLocalSessionNotFound)

	_, err := svc.RestoreSession(context.Background())
	assert.ErrorIs(t, err, store.ErrLocalSessionNotFound)
}

func TestClientAuthService_RestoreSession_Expired(t *testing.T) {
	svc, mockAdapter, mockSessions, _ := newTestAuthSvc(t)

	gomock.InOrder(
		mockSessions.EXPECT().GetSession(gomock.Any()).Return(models.LocalSession{Token: "old"}, nil),
		mockAdapter.EXPECT().SetToken("old"),
		mockAdapter.EXPECT().Profile(gomock.Any()).
			Return(models.User{}, fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgTokenIsExpired)),
		mockAdapter.EXPECT().SetToken(""),
		mockSessions.EXPECT().DeleteSession(gomock.Any()).Return(nil),
	)

	_, err := svc.RestoreSession(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestClientAuthService_RestoreSession_ServerDown(t *testing.T) {
	svc, mockAdapter, mockSessions, _ := newTestAuthSvc(t)
	netErr := errors.New("connection refused")

	mockSessions.EXPECT().GetSession(gomock.Any()).Return(models.LocalSession{Token: "jwt"}, nil)
	mockAdapter.EXPECT().SetToken("jwt")
	mockAdapter.EXPECT().Profile(gomock.Any()).Return(models.User{}, netErr)
	mockAdapter.EXPECT().SetToken("")

	_, err := svc.RestoreSession(context.Background())
	assert.ErrorIs(t, err, netErr)
	assert.NotErrorIs(t, err, ErrSessionExpired)
}

func TestClientAuthService_LoggedIn(t *testing.T) {
	svc, mockAdapter, _, _ := newTestAuthSvc(t)

	mockAdapter.EXPECT().Token().Return("")
	assert.False(t, svc.LoggedIn())

	mockAdapter.EXPECT().Token().Return("jwt")
	assert.True(t, svc.LoggedIn())
}
