package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrescuehub/rescuehub-api/internal/models"
	appErrors "github.com/petrescuehub/rescuehub-api/pkg/errors"
)

type petStore struct {
	pets      map[int64]*models.Pet
	nextID    int64
	listCalls int
}

func newPetStore(pets ...*models.Pet) *petStore {
	store := &petStore{pets: make(map[int64]*models.Pet), nextID: 1}
	for _, p := range pets {
		store.pets[p.ID] = p
		if p.ID >= store.nextID {
			store.nextID = p.ID + 1
		}
	}
	return store
}

func (s *petStore) FindByID(ctx context.Context, id int64) (*models.Pet, error) {
	pet, ok := s.pets[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *pet
	return &copied, nil
}

func (s *petStore) List(ctx context.Context, filter models.PetFilter) ([]models.Pet, error) {
	s.listCalls++
	var pets []models.Pet
	for _, p := range s.pets {
		if filter.Type != "" && p.Type != filter.Type {
			continue
		}
		if filter.Status != "" && string(p.Status) != filter.Status {
			continue
		}
		pets = append(pets, *p)
	}
	return pets, nil
}

func (s *petStore) Create(ctx context.Context, pet *models.Pet) error {
	pet.ID = s.nextID
	s.nextID++
	copied := *pet
	s.pets[pet.ID] = &copied
	return nil
}

func (s *petStore) Update(ctx context.Context, pet *models.Pet) error {
	copied := *pet
	s.pets[pet.ID] = &copied
	return nil
}

func (s *petStore) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := s.pets[id]; !ok {
		return false, nil
	}
	delete(s.pets, id)
	return true, nil
}

type shelterReaderStub struct {
	ids map[int64]struct{}
}

func (s *shelterReaderStub) FindByID(ctx context.Context, id int64) (*models.Shelter, error) {
	if _, ok := s.ids[id]; !ok {
		return nil, sql.ErrNoRows
	}
	return &models.Shelter{ID: id, Name: "Happy Paws Rescue"}, nil
}

func strPtr(v string) *string { return &v }

func TestPetServiceCreateDefaultsToAvailable(t *testing.T) {
	store := newPetStore()
	svc := NewPetService(store, nil, nil, nil, nil)

	pet, err := svc.Create(context.Background(), PetRequest{
		Name:   "Max",
		Type:   "dog",
		Gender: strPtr("male"),
		Size:   strPtr("large"),
		Status: models.PetAdopted,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PetAvailable, pet.Status, "create ignores a supplied status")
	assert.NotNil(t, pet.Images)
}

func TestPetServiceCreateValidatesPayload(t *testing.T) {
	svc := NewPetService(newPetStore(), nil, nil, nil, nil)

	_, err := svc.Create(context.Background(), PetRequest{Type: "dog"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(context.Background(), PetRequest{Name: "Max", Type: "dog", Gender: strPtr("robot")})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPetServiceCreateChecksShelter(t *testing.T) {
	shelters := &shelterReaderStub{ids: map[int64]struct{}{1: {}}}
	svc := NewPetService(newPetStore(), shelters, nil, nil, nil)

	known := int64(1)
	_, err := svc.Create(context.Background(), PetRequest{Name: "Max", Type: "dog", ShelterID: &known})
	require.NoError(t, err)

	unknown := int64(42)
	_, err = svc.Create(context.Background(), PetRequest{Name: "Max", Type: "dog", ShelterID: &unknown})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "shelter does not exist", appErr.Message)
}

func TestPetServiceUpdateAppliesStatusOverride(t *testing.T) {
	store := newPetStore(&models.Pet{ID: 1, Name: "Max", Type: "dog", Status: models.PetAvailable})
	svc := NewPetService(store, nil, nil, nil, nil)

	pet, err := svc.Update(context.Background(), 1, PetRequest{Name: "Max", Type: "dog", Status: models.PetAdopted})
	require.NoError(t, err)
	assert.Equal(t, models.PetAdopted, pet.Status)

	pet, err = svc.Update(context.Background(), 1, PetRequest{Name: "Maximus", Type: "dog"})
	require.NoError(t, err)
	assert.Equal(t, "Maximus", pet.Name)
	assert.Equal(t, models.PetAdopted, pet.Status, "omitted status keeps the stored value")
}

func TestPetServiceUpdateUnknownPet(t *testing.T) {
	svc := NewPetService(newPetStore(), nil, nil, nil, nil)

	_, err := svc.Update(context.Background(), 99, PetRequest{Name: "Max", Type: "dog"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPetServiceDelete(t *testing.T) {
	store := newPetStore(&models.Pet{ID: 1, Name: "Max", Type: "dog", Status: models.PetAvailable})
	svc := NewPetService(store, nil, nil, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), 1))

	err := svc.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPetServiceListFilters(t *testing.T) {
	store := newPetStore(
		&models.Pet{ID: 1, Name: "Max", Type: "dog", Status: models.PetAvailable},
		&models.Pet{ID: 2, Name: "Luna", Type: "cat", Status: models.PetAvailable},
		&models.Pet{ID: 3, Name: "Charlie", Type: "dog", Status: models.PetAdopted},
	)
	svc := NewPetService(store, nil, nil, nil, nil)

	dogs, err := svc.List(context.Background(), models.PetFilter{Type: "dog"})
	require.NoError(t, err)
	assert.Len(t, dogs, 2)

	available, err := svc.List(context.Background(), models.PetFilter{Type: "dog", Status: "available"})
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Max", available[0].Name)
}

type cacheRepoStub struct {
	data    map[string][]byte
	deleted []string
}

func (c *cacheRepoStub) Get(ctx context.Context, key string, dest interface{}) error {
	if _, ok := c.data[key]; !ok {
		return appErrors.ErrCacheMiss
	}
	pets := dest.(*[]models.Pet)
	*pets = []models.Pet{{ID: 1, Name: "Cached", Type: "dog", Status: models.PetAvailable}}
	return nil
}

func (c *cacheRepoStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.data[key] = []byte("set")
	return nil
}

func (c *cacheRepoStub) DeleteByPattern(ctx context.Context, pattern string) error {
	c.deleted = append(c.deleted, pattern)
	for k := range c.data {
		delete(c.data, k)
	}
	return nil
}

func TestPetServiceListUsesCache(t *testing.T) {
	store := newPetStore(&models.Pet{ID: 1, Name: "Max", Type: "dog", Status: models.PetAvailable})
	cacheRepo := &cacheRepoStub{data: make(map[string][]byte)}
	cacheSvc := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	svc := NewPetService(store, nil, cacheSvc, nil, nil)

	_, err := svc.List(context.Background(), models.PetFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, store.listCalls, "miss goes to the repository and fills the cache")

	cached, err := svc.List(context.Background(), models.PetFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, store.listCalls, "second call is served from cache")
	require.Len(t, cached, 1)
	assert.Equal(t, "Cached", cached[0].Name)
}

func TestPetServiceMutationsInvalidateCache(t *testing.T) {
	store := newPetStore()
	cacheRepo := &cacheRepoStub{data: map[string][]byte{"pets:list:type=:status=:gender=:size=": []byte("x")}}
	cacheSvc := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	svc := NewPetService(store, nil, cacheSvc, nil, nil)

	_, err := svc.Create(context.Background(), PetRequest{Name: "Max", Type: "dog"})
	require.NoError(t, err)
	require.NotEmpty(t, cacheRepo.deleted)
	assert.Equal(t, "pets:list:*", cacheRepo.deleted[0])
}
