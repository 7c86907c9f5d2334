package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrescuehub/rescuehub-api/internal/models"
	appErrors "github.com/petrescuehub/rescuehub-api/pkg/errors"
)

type txProviderMock struct {
	db   *sqlx.DB
	mock sqlmock.Sqlmock
}

func newTxProviderMock(t *testing.T) (txProvider, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { db.Close() })
	return &txProviderMock{db: sqlxdb, mock: mock}, mock
}

func (t *txProviderMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return t.db.BeginTxx(ctx, opts)
}

// adoptionStore keeps pets and requests in memory while satisfying the
// transactional repository interfaces. The passed tx is ignored; the real
// SQL behavior is covered in the repository tests.
type adoptionStore struct {
	pets     map[int64]*models.Pet
	requests map[int64]*models.AdoptionRequest
	nextID   int64
}

func newAdoptionStore(pets ...*models.Pet) *adoptionStore {
	store := &adoptionStore{
		pets:     make(map[int64]*models.Pet),
		requests: make(map[int64]*models.AdoptionRequest),
		nextID:   1,
	}
	for _, p := range pets {
		store.pets[p.ID] = p
	}
	return store
}

func (s *adoptionStore) FindByID(ctx context.Context, id int64) (*models.AdoptionRequest, error) {
	req, ok := s.requests[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *req
	return &copied, nil
}

func (s *adoptionStore) LockByID(ctx context.Context, tx *sqlx.Tx, id int64) (*models.AdoptionRequest, error) {
	return s.FindByID(ctx, id)
}

func (s *adoptionStore) Create(ctx context.Context, tx *sqlx.Tx, req *models.AdoptionRequest) error {
	req.ID = s.nextID
	s.nextID++
	copied := *req
	s.requests[req.ID] = &copied
	return nil
}

func (s *adoptionStore) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id int64, status models.AdoptionStatus) error {
	s.requests[id].Status = status
	return nil
}

func (s *adoptionStore) RejectPendingForPet(ctx context.Context, exec sqlx.ExtContext, petID, excludeID int64) (int64, error) {
	var rejected int64
	for _, req := range s.requests {
		if req.PetID == petID && req.ID != excludeID && req.Status == models.AdoptionPending {
			req.Status = models.AdoptionRejected
			rejected++
		}
	}
	return rejected, nil
}

func (s *adoptionStore) CountOpenForPet(ctx context.Context, tx *sqlx.Tx, petID int64) (int, int, error) {
	var pending, approved int
	for _, req := range s.requests {
		if req.PetID != petID {
			continue
		}
		switch req.Status {
		case models.AdoptionPending:
			pending++
		case models.AdoptionApproved:
			approved++
		}
	}
	return pending, approved, nil
}

func (s *adoptionStore) ListByUserWithPet(ctx context.Context, userID int64) ([]models.AdoptionRequestWithPet, error) {
	var items []models.AdoptionRequestWithPet
	for _, req := range s.requests {
		if req.UserID == userID {
			items = append(items, models.AdoptionRequestWithPet{AdoptionRequest: *req, Pet: *s.pets[req.PetID]})
		}
	}
	return items, nil
}

func (s *adoptionStore) ListByPetWithUser(ctx context.Context, petID int64) ([]models.AdoptionRequestWithUser, error) {
	var items []models.AdoptionRequestWithUser
	for _, req := range s.requests {
		if req.PetID == petID {
			items = append(items, models.AdoptionRequestWithUser{AdoptionRequest: *req})
		}
	}
	return items, nil
}

// petLocker adapts the store to the pet repository interface.
type petLocker struct {
	store *adoptionStore
}

func (p *petLocker) LockByID(ctx context.Context, tx *sqlx.Tx, id int64) (*models.Pet, error) {
	pet, ok := p.store.pets[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *pet
	return &copied, nil
}

func (p *petLocker) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id int64, status models.PetStatus) error {
	p.store.pets[id].Status = status
	return nil
}

func availablePet(id int64, name string) *models.Pet {
	gender, size := "male", "large"
	return &models.Pet{
		ID:        id,
		Name:      name,
		Type:      "dog",
		Gender:    &gender,
		Size:      &size,
		Status:    models.PetAvailable,
		CreatedAt: time.Now().UTC(),
	}
}

func newAdoptionFixture(t *testing.T, store *adoptionStore) (*AdoptionService, sqlmock.Sqlmock) {
	txMock, mock := newTxProviderMock(t)
	svc := NewAdoptionService(store, &petLocker{store: store}, txMock, nil, nil, nil, nil)
	return svc, mock
}

func TestAdoptionServiceSubmitMovesPetToPending(t *testing.T) {
	store := newAdoptionStore(availablePet(1, "Max"))
	svc, mock := newAdoptionFixture(t, store)

	mock.ExpectBegin()
	mock.ExpectCommit()

	msg := "we have a big yard"
	req, err := svc.Submit(context.Background(), 10, SubmitAdoptionRequest{PetID: 1, Message: &msg})
	require.NoError(t, err)
	assert.Equal(t, models.AdoptionPending, req.Status)
	assert.Equal(t, models.PetPending, store.pets[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdoptionServiceSubmitRejectsUnavailablePet(t *testing.T) {
	pet := availablePet(1, "Max")
	pet.Status = models.PetPending
	store := newAdoptionStore(pet)
	svc, mock := newAdoptionFixture(t, store)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Submit(context.Background(), 10, SubmitAdoptionRequest{PetID: 1})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidState.Code, appErr.Code)
	assert.Equal(t, "pet is not available for adoption", appErr.Message)
	assert.Empty(t, store.requests, "no request row may be created")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdoptionServiceSubmitUnknownPet(t *testing.T) {
	store := newAdoptionStore()
	svc, mock := newAdoptionFixture(t, store)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Submit(context.Background(), 10, SubmitAdoptionRequest{PetID: 99})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAdoptionServiceApproveCascadesSiblings(t *testing.T) {
	store := newAdoptionStore(availablePet(1, "Max"))
	svc, mock := newAdoptionFixture(t, store)

	mock.ExpectBegin()
	mock.ExpectCommit()
	first, err := svc.Submit(context.Background(), 10, SubmitAdoptionRequest{PetID: 1})
	require.NoError(t, err)

	// competing request while the pet is pending gets created directly;
	// submissions are blocked once the pet left available.
	second := &models.AdoptionRequest{PetID: 1, UserID: 11, Status: models.AdoptionPending, CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Create(context.Background(), nil, second))
	third := &models.AdoptionRequest{PetID: 1, UserID: 12, Status: models.AdoptionPending, CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Create(context.Background(), nil, third))

	mock.ExpectBegin()
	mock.ExpectCommit()
	decided, err := svc.Decide(context.Background(), first.ID, DecideAdoptionRequest{Status: models.AdoptionApproved})
	require.NoError(t, err)

	assert.Equal(t, models.AdoptionApproved, decided.Status)
	assert.Equal(t, models.PetAdopted, store.pets[1].Status)
	assert.Equal(t, models.AdoptionRejected, store.requests[second.ID].Status)
	assert.Equal(t, models.AdoptionRejected, store.requests[third.ID].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdoptionServiceRejectLastPendingReopensPet(t *testing.T) {
	store := newAdoptionStore(availablePet(1, "Luna"))
	svc, mock := newAdoptionFixture(t, store)

	mock.ExpectBegin()
	mock.ExpectCommit()
	req, err := svc.Submit(context.Background(), 10, SubmitAdoptionRequest{PetID: 1})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	decided, err := svc.Decide(context.Background(), req.ID, DecideAdoptionRequest{Status: models.AdoptionRejected})
	require.NoError(t, err)

	assert.Equal(t, models.AdoptionRejected, decided.Status)
	assert.Equal(t, models.PetAvailable, store.pets[1].Status, "pet reopens when nothing pending remains")
}

func TestAdoptionServiceRejectOneOfManyKeepsPetPending(t *testing.T) {
	store := newAdoptionStore(availablePet(1, "Luna"))
	svc, mock := newAdoptionFixture(t, store)

	mock.ExpectBegin()
	mock.ExpectCommit()
	first, err := svc.Submit(context.Background(), 10, SubmitAdoptionRequest{PetID: 1})
	require.NoError(t, err)

	second := &models.AdoptionRequest{PetID: 1, UserID: 11, Status: models.AdoptionPending, CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Create(context.Background(), nil, second))

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.Decide(context.Background(), first.ID, DecideAdoptionRequest{Status: models.AdoptionRejected})
	require.NoError(t, err)

	assert.Equal(t, models.PetPending, store.pets[1].Status, "other pending request keeps the pet reserved")
	assert.Equal(t, models.AdoptionPending, store.requests[second.ID].Status)
}

func TestAdoptionServiceDecideTerminalRequestFails(t *testing.T) {
	store := newAdoptionStore(availablePet(1, "Charlie"))
	svc, mock := newAdoptionFixture(t, store)

	mock.ExpectBegin()
	mock.ExpectCommit()
	req, err := svc.Submit(context.Background(), 10, SubmitAdoptionRequest{PetID: 1})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.Decide(context.Background(), req.ID, DecideAdoptionRequest{Status: models.AdoptionApproved})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Decide(context.Background(), req.ID, DecideAdoptionRequest{Status: models.AdoptionRejected})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidState.Code, appErr.Code)
	assert.Equal(t, "adoption request has already been decided", appErr.Message)
	assert.Equal(t, models.PetAdopted, store.pets[1].Status, "decided state stays untouched")
}

func TestAdoptionServiceDecideUnknownRequest(t *testing.T) {
	store := newAdoptionStore()
	svc, mock := newAdoptionFixture(t, store)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Decide(context.Background(), 404, DecideAdoptionRequest{Status: models.AdoptionApproved})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAdoptionServiceDecideValidatesStatus(t *testing.T) {
	store := newAdoptionStore(availablePet(1, "Max"))
	svc, _ := newAdoptionFixture(t, store)

	_, err := svc.Decide(context.Background(), 1, DecideAdoptionRequest{Status: "pending"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAdoptionServiceListForUser(t *testing.T) {
	store := newAdoptionStore(availablePet(1, "Max"))
	svc, mock := newAdoptionFixture(t, store)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Submit(context.Background(), 10, SubmitAdoptionRequest{PetID: 1})
	require.NoError(t, err)

	items, err := svc.ListForUser(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Max", items[0].Pet.Name)

	empty, err := svc.ListForUser(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
