package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/petrescuehub/rescuehub-api/internal/models"
	appErrors "github.com/petrescuehub/rescuehub-api/pkg/errors"
)

type userRepository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
}

// UpdateUserRequest carries a partial profile update. Nil fields keep the
// stored value. Role changes are admin-only and validated separately.
type UpdateUserRequest struct {
	Email          *string `json:"email" validate:"omitempty,email"`
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
	Role           *string `json:"role"`
}

// UserService handles profile reads and updates.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs the user service.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// Get returns a user's profile. Access is gated at the route level;
// password hashes never serialize out of the model.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user, nil
}

// List returns a page of users. Callers gate this to admins.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]models.User, *models.Pagination, error) {
	filter.Normalize()
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	return users, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Update applies a partial profile update. Users may edit their own
// profile; admins may edit anyone. Only admins may change roles, and the
// new role must be one of the known roles.
func (s *UserService) Update(ctx context.Context, id int64, actor *models.JWTClaims, req UpdateUserRequest) (*models.User, error) {
	if actor == nil || (actor.UserID != id && actor.Role != models.RoleAdmin) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "not allowed to update this user")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid user payload")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	if req.Email != nil && !strings.EqualFold(*req.Email, user.Email) {
		existing, err := s.repo.FindByEmail(ctx, *req.Email)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
		}
		if existing != nil && existing.ID != id {
			return nil, appErrors.Clone(appErrors.ErrConflict, "email is already in use")
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = req.ProfilePicture
	}
	if req.Role != nil {
		if actor.Role != models.RoleAdmin {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "only admins can change roles")
		}
		role := models.Role(*req.Role)
		if !role.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
		}
		user.Role = role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user")
	}

	s.logger.Info("user updated",
		zap.Int64("user_id", user.ID),
		zap.Int64("actor_id", actor.UserID),
	)
	return user, nil
}
