package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/store"
	"github.com/MKhiriev/go-ferrari-store/internal/validators"
	"github.com/MKhiriev/go-ferrari-store/models"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type userService struct {
	userRepository store.UserRepository
	validator      validators.Validator
	bcryptCost     int
	logger         *logger.Logger
}

func NewUserService(userRepository store.UserRepository, validator validators.Validator, bcryptCost int, logger *logger.Logger) UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		userRepository: userRepository,
		validator:      validator,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	return user.Sanitized(), nil
}

// UpdateProfile applies a partial profile update. A new password is
// re-hashed before it reaches the repository.
func (s *userService) UpdateProfile(ctx context.Context, update models.UserUpdate) (models.User, error) {
	if err := s.validator.Validate(ctx, update); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if update.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), s.bcryptCost)
		if err != nil {
			return models.User{}, fmt.Errorf("error hashing password: %w", err)
		}
		hashed := string(hash)
		update.PasswordHash = &hashed
		update.Password = nil
	}

	user, err := s.userRepository.UpdateUser(ctx, update)
	if err != nil {
		return models.User{}, err
	}

	logger.FromContext(ctx).Info().Int64("user_id", update.UserID).Msg("profile updated")
	return user.Sanitized(), nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) (models.UserList, error) {
	limit, offset = normalizePage(limit, offset)

	users, err := s.userRepository.ListUsers(ctx, limit, offset)
	if err != nil {
		return models.UserList{}, err
	}
	for i := range users {
		users[i] = users[i].Sanitized()
	}

	return models.UserList{Users: users, Limit: limit, Offset: offset}, nil
}

// SetRole changes the role of userID. An admin cannot demote themselves,
// which keeps at least the acting admin in place.
func (s *userService) SetRole(ctx context.Context, actorID, userID int64, role models.Role) error {
	if err := s.validator.Validate(ctx, models.RoleUpdate{Role: role}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if actorID == userID && role != models.RoleAdmin {
		return ErrCannotModifySelf
	}

	if err := s.userRepository.UpdateRole(ctx, userID, role); err != nil {
		return err
	}

	logger.FromContext(ctx).Info().
		Int64("actor_id", actorID).
		Int64("user_id", userID).
		Str("role", string(role)).
		Msg("user role changed")
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, actorID, userID int64) error {
	if actorID == userID {
		return ErrCannotModifySelf
	}
	if err := s.userRepository.DeleteUser(ctx, userID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info().Int64("actor_id", actorID).Int64("user_id", userID).Msg("user deleted")
	return nil
}

// normalizePage applies the default page size and clamps it to the maximum.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	limit = min(limit, maxPageLimit)
	offset = max(offset, 0)
	return limit, offset
}
