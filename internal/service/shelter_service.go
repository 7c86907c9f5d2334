package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/petrescuehub/rescuehub-api/internal/models"
	appErrors "github.com/petrescuehub/rescuehub-api/pkg/errors"
)

type shelterRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Shelter, error)
	List(ctx context.Context) ([]models.Shelter, error)
	Create(ctx context.Context, shelter *models.Shelter) error
	Update(ctx context.Context, shelter *models.Shelter) error
}

// ShelterRequest holds the payload for creating or updating a shelter.
type ShelterRequest struct {
	Name        string  `json:"name" validate:"required"`
	Address     string  `json:"address" validate:"required"`
	City        string  `json:"city" validate:"required"`
	State       string  `json:"state" validate:"required"`
	Zip         string  `json:"zip" validate:"required"`
	Phone       string  `json:"phone" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Website     *string `json:"website" validate:"omitempty,url"`
	Description *string `json:"description"`
}

// ShelterService handles shelter directory use-cases.
type ShelterService struct {
	repo      shelterRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewShelterService constructs the shelter service.
func NewShelterService(repo shelterRepository, validate *validator.Validate, logger *zap.Logger) *ShelterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShelterService{repo: repo, validator: validate, logger: logger}
}

// List returns every shelter.
func (s *ShelterService) List(ctx context.Context) ([]models.Shelter, error) {
	shelters, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list shelters")
	}
	return shelters, nil
}

// Get returns a single shelter.
func (s *ShelterService) Get(ctx context.Context, id int64) (*models.Shelter, error) {
	shelter, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "shelter not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shelter")
	}
	return shelter, nil
}

// Create registers a new shelter.
func (s *ShelterService) Create(ctx context.Context, req ShelterRequest) (*models.Shelter, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid shelter payload")
	}
	shelter := &models.Shelter{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Zip:         req.Zip,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, shelter); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create shelter")
	}
	s.logger.Info("shelter created", zap.Int64("shelter_id", shelter.ID))
	return shelter, nil
}

// Update modifies an existing shelter.
func (s *ShelterService) Update(ctx context.Context, id int64, req ShelterRequest) (*models.Shelter, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid shelter payload")
	}
	shelter, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "shelter not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shelter")
	}

	shelter.Name = req.Name
	shelter.Address = req.Address
	shelter.City = req.City
	shelter.State = req.State
	shelter.Zip = req.Zip
	shelter.Phone = req.Phone
	shelter.Email = req.Email
	shelter.Website = req.Website
	shelter.Description = req.Description

	if err := s.repo.Update(ctx, shelter); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update shelter")
	}
	return shelter, nil
}
