package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/petrescuehub/rescuehub-api/internal/models"
	appErrors "github.com/petrescuehub/rescuehub-api/pkg/errors"
)

type adoptionRepository interface {
	LockByID(ctx context.Context, tx *sqlx.Tx, id int64) (*models.AdoptionRequest, error)
	Create(ctx context.Context, tx *sqlx.Tx, req *models.AdoptionRequest) error
	UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id int64, status models.AdoptionStatus) error
	RejectPendingForPet(ctx context.Context, exec sqlx.ExtContext, petID, excludeID int64) (int64, error)
	CountOpenForPet(ctx context.Context, tx *sqlx.Tx, petID int64) (pending int, approved int, err error)
	ListByUserWithPet(ctx context.Context, userID int64) ([]models.AdoptionRequestWithPet, error)
	ListByPetWithUser(ctx context.Context, petID int64) ([]models.AdoptionRequestWithUser, error)
}

type adoptionPetRepository interface {
	LockByID(ctx context.Context, tx *sqlx.Tx, id int64) (*models.Pet, error)
	UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id int64, status models.PetStatus) error
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type catalogInvalidator interface {
	InvalidatePets(ctx context.Context)
}

// SubmitAdoptionRequest holds the payload for requesting an adoption.
type SubmitAdoptionRequest struct {
	PetID   int64   `json:"pet_id" validate:"required,gt=0"`
	Message *string `json:"message"`
}

// DecideAdoptionRequest holds the payload for approving or rejecting a
// request. pending is not an accepted target: decisions are final.
type DecideAdoptionRequest struct {
	Status models.AdoptionStatus `json:"status" validate:"required,oneof=approved rejected"`
}

// AdoptionService owns the pet status lifecycle. Every transition runs in
// a single transaction holding the pet row lock, so two concurrent
// decisions for the same pet serialize and the cascade can never leave
// the pet status inconsistent with its requests.
type AdoptionService struct {
	requests  adoptionRepository
	pets      adoptionPetRepository
	tx        txProvider
	cache     catalogInvalidator
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAdoptionService constructs the adoption service.
func NewAdoptionService(requests adoptionRepository, pets adoptionPetRepository, tx txProvider, cache catalogInvalidator, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AdoptionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdoptionService{requests: requests, pets: pets, tx: tx, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// Submit creates a pending request for an available pet and moves the pet
// to pending in the same transaction.
func (s *AdoptionService) Submit(ctx context.Context, userID int64, req SubmitAdoptionRequest) (*models.AdoptionRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid adoption request payload")
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to start transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	pet, err := s.pets.LockByID(ctx, tx, req.PetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "pet not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pet")
	}

	if pet.Status != models.PetAvailable {
		err = appErrors.Clone(appErrors.ErrInvalidState, "pet is not available for adoption")
		return nil, err
	}

	request := &models.AdoptionRequest{
		PetID:     pet.ID,
		UserID:    userID,
		Status:    models.AdoptionPending,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err = s.requests.Create(ctx, tx, request); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create adoption request")
	}
	if err = s.pets.UpdateStatus(ctx, tx, pet.ID, models.PetPending); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update pet status")
	}

	if err = tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit adoption request")
	}

	if s.cache != nil {
		s.cache.InvalidatePets(ctx)
	}
	if s.metrics != nil {
		s.metrics.RecordAdoptionTransition("submitted")
	}
	s.logger.Info("adoption request submitted",
		zap.Int64("request_id", request.ID),
		zap.Int64("pet_id", pet.ID),
		zap.Int64("user_id", userID),
	)
	return request, nil
}

// Decide approves or rejects a pending request. Approval adopts the pet
// and rejects every pending sibling; rejection reopens the pet when no
// pending or approved request remains. Deciding an already-terminal
// request fails with an invalid-state error.
func (s *AdoptionService) Decide(ctx context.Context, id int64, req DecideAdoptionRequest) (*models.AdoptionRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid status")
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to start transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	request, err := s.requests.LockByID(ctx, tx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "adoption request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load adoption request")
	}

	if request.Status.Terminal() {
		err = appErrors.Clone(appErrors.ErrInvalidState, "adoption request has already been decided")
		return nil, err
	}

	pet, err := s.pets.LockByID(ctx, tx, request.PetID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pet")
	}

	switch req.Status {
	case models.AdoptionApproved:
		if err = s.requests.UpdateStatus(ctx, tx, request.ID, models.AdoptionApproved); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to approve request")
		}
		if err = s.pets.UpdateStatus(ctx, tx, pet.ID, models.PetAdopted); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update pet status")
		}
		var rejected int64
		if rejected, err = s.requests.RejectPendingForPet(ctx, tx, pet.ID, request.ID); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reject competing requests")
		}
		request.Status = models.AdoptionApproved
		s.logger.Info("adoption request approved",
			zap.Int64("request_id", request.ID),
			zap.Int64("pet_id", pet.ID),
			zap.Int64("siblings_rejected", rejected),
		)

	case models.AdoptionRejected:
		if err = s.requests.UpdateStatus(ctx, tx, request.ID, models.AdoptionRejected); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reject request")
		}
		var pending, approved int
		if pending, approved, err = s.requests.CountOpenForPet(ctx, tx, pet.ID); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to inspect remaining requests")
		}
		if pending == 0 && approved == 0 {
			if err = s.pets.UpdateStatus(ctx, tx, pet.ID, models.PetAvailable); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reopen pet")
			}
		}
		request.Status = models.AdoptionRejected
		s.logger.Info("adoption request rejected",
			zap.Int64("request_id", request.ID),
			zap.Int64("pet_id", pet.ID),
			zap.Int("remaining_pending", pending),
		)
	}

	if err = tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit decision")
	}

	if s.cache != nil {
		s.cache.InvalidatePets(ctx)
	}
	if s.metrics != nil {
		s.metrics.RecordAdoptionTransition(string(request.Status))
	}
	return request, nil
}

// ListForUser returns the caller's requests joined with their pets.
func (s *AdoptionService) ListForUser(ctx context.Context, userID int64) ([]models.AdoptionRequestWithPet, error) {
	items, err := s.requests.ListByUserWithPet(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list adoption requests")
	}
	return items, nil
}

// ListForPet returns the requests for a pet joined with their requesters.
func (s *AdoptionService) ListForPet(ctx context.Context, petID int64) ([]models.AdoptionRequestWithUser, error) {
	items, err := s.requests.ListByPetWithUser(ctx, petID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list adoption requests")
	}
	return items, nil
}
