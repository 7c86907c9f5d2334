package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrescuehub/rescuehub-api/internal/models"
	appErrors "github.com/petrescuehub/rescuehub-api/pkg/errors"
)

type shelterStore struct {
	shelters map[int64]*models.Shelter
	nextID   int64
}

func newShelterStore() *shelterStore {
	return &shelterStore{shelters: make(map[int64]*models.Shelter), nextID: 1}
}

func (s *shelterStore) FindByID(ctx context.Context, id int64) (*models.Shelter, error) {
	shelter, ok := s.shelters[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *shelter
	return &copied, nil
}

func (s *shelterStore) List(ctx context.Context) ([]models.Shelter, error) {
	out := make([]models.Shelter, 0, len(s.shelters))
	for _, shelter := range s.shelters {
		out = append(out, *shelter)
	}
	return out, nil
}

func (s *shelterStore) Create(ctx context.Context, shelter *models.Shelter) error {
	shelter.ID = s.nextID
	s.nextID++
	copied := *shelter
	s.shelters[shelter.ID] = &copied
	return nil
}

func (s *shelterStore) Update(ctx context.Context, shelter *models.Shelter) error {
	copied := *shelter
	s.shelters[shelter.ID] = &copied
	return nil
}

func validShelter() ShelterRequest {
	return ShelterRequest{
		Name:    "Happy Paws Rescue",
		Address: "12 Oak Lane",
		City:    "Springfield",
		State:   "IL",
		Zip:     "62704",
		Phone:   "555-0101",
		Email:   "contact@happypaws.example",
	}
}

func TestShelterServiceCreateAndGet(t *testing.T) {
	store := newShelterStore()
	svc := NewShelterService(store, nil, nil)

	created, err := svc.Create(context.Background(), validShelter())
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Happy Paws Rescue", got.Name)
}

func TestShelterServiceCreateValidates(t *testing.T) {
	svc := NewShelterService(newShelterStore(), nil, nil)

	req := validShelter()
	req.Email = "not-an-email"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "Email", appErr.Errors[0].Field)
	assert.Equal(t, "email", appErr.Errors[0].Rule)
}

func TestShelterServiceUpdate(t *testing.T) {
	store := newShelterStore()
	svc := NewShelterService(store, nil, nil)

	created, err := svc.Create(context.Background(), validShelter())
	require.NoError(t, err)

	req := validShelter()
	req.Name = "Second Chance Shelter"
	updated, err := svc.Update(context.Background(), created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Second Chance Shelter", updated.Name)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Second Chance Shelter", got.Name)
}

func TestShelterServiceUpdateUnknown(t *testing.T) {
	svc := NewShelterService(newShelterStore(), nil, nil)

	_, err := svc.Update(context.Background(), 42, validShelter())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestShelterServiceGetUnknown(t *testing.T) {
	svc := NewShelterService(newShelterStore(), nil, nil)

	_, err := svc.Get(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
