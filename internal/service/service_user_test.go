package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/mock"
	"github.com/MKhiriev/go-ferrari-store/internal/store"
	"github.com/MKhiriev/go-ferrari-store/internal/validators"
	"github.com/MKhiriev/go-ferrari-store/models"
)

func strPtr(s string) *string { return &s }

func newTestUserService(t *testing.T) (UserService, *mock.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	return NewUserService(repo, validators.NewStoreValidator(), bcrypt.MinCost, logger.Nop()), repo
}

func TestUserService_GetProfile_Sanitized(t *testing.T) {
	svc, repo := newTestUserService(t)

	repo.EXPECT().FindUserByID(gomock.Any(), int64(3)).Return(models.User{UserID: 3, PasswordHash: "hash"}, nil)

	got, err := svc.GetProfile(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, got.PasswordHash)
}

func TestUserService_UpdateProfile_RehashesPassword(t *testing.T) {
	svc, repo := newTestUserService(t)

	repo.EXPECT().
		UpdateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.UserUpdate) (models.User, error) {
			assert.Nil(t, u.Password)
			require.NotNil(t, u.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte("new-password-1")))
			return models.User{UserID: u.UserID, PasswordHash: *u.PasswordHash}, nil
		})

	got, err := svc.UpdateProfile(context.Background(), models.UserUpdate{UserID: 3, Password: strPtr("new-password-1")})
	require.NoError(t, err)
	assert.Empty(t, got.PasswordHash)
}

func TestUserService_UpdateProfile_Invalid(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.UpdateProfile(context.Background(), models.UserUpdate{UserID: 3})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.UpdateProfile(context.Background(), models.UserUpdate{UserID: 3, Password: strPtr("short")})
	assert.ErrorIs(t, err, validators.ErrPasswordTooShort)
}

func TestUserService_ListUsers_Paging(t *testing.T) {
	tests := []struct {
		name                string
		limit, offset       int
		wantLimit, wantOffs int
	}{
		{name: "defaults", limit: 0, offset: -5, wantLimit: 20, wantOffs: 0},
		{name: "clamped", limit: 1000, offset: 40, wantLimit: 100, wantOffs: 40},
		{name: "as given", limit: 10, offset: 10, wantLimit: 10, wantOffs: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestUserService(t)
			repo.EXPECT().
				ListUsers(gomock.Any(), tt.wantLimit, tt.wantOffs).
				Return([]models.User{{UserID: 1, PasswordHash: "hash"}}, nil)

			got, err := svc.ListUsers(context.Background(), tt.limit, tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, got.Limit)
			assert.Equal(t, tt.wantOffs, got.Offset)
			assert.Empty(t, got.Users[0].PasswordHash)
		})
	}
}

func TestUserService_SetRole(t *testing.T) {
	t.Run("promote another user", func(t *testing.T) {
		svc, repo := newTestUserService(t)
		repo.EXPECT().UpdateRole(gomock.Any(), int64(8), models.RoleAdmin).Return(nil)

		assert.NoError(t, svc.SetRole(context.Background(), 1, 8, models.RoleAdmin))
	})

	t.Run("cannot demote self", func(t *testing.T) {
		svc, _ := newTestUserService(t)

		assert.ErrorIs(t, svc.SetRole(context.Background(), 1, 1, models.RoleUser), ErrCannotModifySelf)
	})

	t.Run("unknown role", func(t *testing.T) {
		svc, _ := newTestUserService(t)

		err := svc.SetRole(context.Background(), 1, 8, models.Role("owner"))
		assert.ErrorIs(t, err, validators.ErrInvalidRole)
	})

	t.Run("missing user", func(t *testing.T) {
		svc, repo := newTestUserService(t)
		repo.EXPECT().UpdateRole(gomock.Any(), int64(8), models.RoleUser).Return(store.ErrUserNotFound)

		assert.ErrorIs(t, svc.SetRole(context.Background(), 1, 8, models.RoleUser), store.ErrUserNotFound)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	svc, repo := newTestUserService(t)

	assert.ErrorIs(t, svc.DeleteUser(context.Background(), 4, 4), ErrCannotModifySelf)

	repo.EXPECT().DeleteUser(gomock.Any(), int64(9)).Return(nil)
	assert.NoError(t, svc.DeleteUser(context.Background(), 4, 9))
}
