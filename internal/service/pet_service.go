package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/petrescuehub/rescuehub-api/internal/models"
	appErrors "github.com/petrescuehub/rescuehub-api/pkg/errors"
)

type petRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Pet, error)
	List(ctx context.Context, filter models.PetFilter) ([]models.Pet, error)
	Create(ctx context.Context, pet *models.Pet) error
	Update(ctx context.Context, pet *models.Pet) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type petShelterReader interface {
	FindByID(ctx context.Context, id int64) (*models.Shelter, error)
}

// PetRequest holds the payload for creating or updating a pet. The status
// field is honored only on administrative edits; it defaults to available
// on create and never routes through a blind merge.
type PetRequest struct {
	Name             string           `json:"name" validate:"required"`
	Type             string           `json:"type" validate:"required"`
	Breed            *string          `json:"breed"`
	Age              *int             `json:"age" validate:"omitempty,gte=0"`
	Gender           *string          `json:"gender" validate:"omitempty,oneof=male female unknown"`
	Size             *string          `json:"size" validate:"omitempty,oneof=small medium large"`
	Color            *string          `json:"color"`
	Weight           *string          `json:"weight"`
	Description      *string          `json:"description"`
	Status           models.PetStatus `json:"status" validate:"omitempty,oneof=available pending adopted"`
	GoodWithChildren *bool            `json:"good_with_children"`
	GoodWithDogs     *bool            `json:"good_with_dogs"`
	GoodWithCats     *bool            `json:"good_with_cats"`
	ShelterID        *int64           `json:"shelter_id"`
	Images           []string         `json:"images"`
}

// PetService handles catalog use-cases with a Redis-backed list cache.
type PetService struct {
	repo      petRepository
	shelters  petShelterReader
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPetService constructs the pet service.
func NewPetService(repo petRepository, shelters petShelterReader, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *PetService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PetService{repo: repo, shelters: shelters, cache: cache, validator: validate, logger: logger}
}

// List returns pets matching the filter, serving cached results when the
// cache is enabled.
func (s *PetService) List(ctx context.Context, filter models.PetFilter) ([]models.Pet, error) {
	key := petListCacheKey(filter)

	if s.cache.Enabled() {
		var cached []models.Pet
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("pet list cache read failed", zap.Error(err))
		}
		if hit {
			return cached, nil
		}
	}

	pets, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pets")
	}

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, key, pets); err != nil {
			s.logger.Warn("pet list cache write failed", zap.Error(err))
		}
	}
	return pets, nil
}

// Get returns a single pet.
func (s *PetService) Get(ctx context.Context, id int64) (*models.Pet, error) {
	pet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "pet not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pet")
	}
	return pet, nil
}

// Create registers a new pet in the catalog.
func (s *PetService) Create(ctx context.Context, req PetRequest) (*models.Pet, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid pet payload")
	}
	if err := s.checkShelter(ctx, req.ShelterID); err != nil {
		return nil, err
	}

	pet := &models.Pet{
		Name:             req.Name,
		Type:             req.Type,
		Breed:            req.Breed,
		Age:              req.Age,
		Gender:           req.Gender,
		Size:             req.Size,
		Color:            req.Color,
		Weight:           req.Weight,
		Description:      req.Description,
		Status:           models.PetAvailable,
		GoodWithChildren: req.GoodWithChildren,
		GoodWithDogs:     req.GoodWithDogs,
		GoodWithCats:     req.GoodWithCats,
		ShelterID:        req.ShelterID,
		Images:           pq.StringArray(req.Images),
	}
	if err := s.repo.Create(ctx, pet); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create pet")
	}

	s.cache.InvalidatePets(ctx)
	s.logger.Info("pet created", zap.Int64("pet_id", pet.ID), zap.String("type", pet.Type))
	return pet, nil
}

// Update performs an administrative edit. Fields are applied from the
// validated request, including a direct status override when provided.
func (s *PetService) Update(ctx context.Context, id int64, req PetRequest) (*models.Pet, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid pet payload")
	}

	pet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "pet not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pet")
	}
	if err := s.checkShelter(ctx, req.ShelterID); err != nil {
		return nil, err
	}

	pet.Name = req.Name
	pet.Type = req.Type
	pet.Breed = req.Breed
	pet.Age = req.Age
	pet.Gender = req.Gender
	pet.Size = req.Size
	pet.Color = req.Color
	pet.Weight = req.Weight
	pet.Description = req.Description
	pet.GoodWithChildren = req.GoodWithChildren
	pet.GoodWithDogs = req.GoodWithDogs
	pet.GoodWithCats = req.GoodWithCats
	pet.ShelterID = req.ShelterID
	pet.Images = pq.StringArray(req.Images)
	if req.Status != "" {
		pet.Status = req.Status
	}

	if err := s.repo.Update(ctx, pet); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update pet")
	}

	s.cache.InvalidatePets(ctx)
	return pet, nil
}

// Delete removes a pet from the catalog.
func (s *PetService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete pet")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "pet not found")
	}
	s.cache.InvalidatePets(ctx)
	return nil
}

func (s *PetService) checkShelter(ctx context.Context, shelterID *int64) error {
	if shelterID == nil || s.shelters == nil {
		return nil
	}
	if _, err := s.shelters.FindByID(ctx, *shelterID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrValidation, "shelter does not exist")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check shelter")
	}
	return nil
}

func petListCacheKey(filter models.PetFilter) string {
	return fmt.Sprintf("pets:list:type=%s:status=%s:gender=%s:size=%s", filter.Type, filter.Status, filter.Gender, filter.Size)
}
