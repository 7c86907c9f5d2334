package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrescuehub/rescuehub-api/internal/models"
)

func petColumnsList() []string {
	return []string{"id", "name", "type", "breed", "age", "gender", "size", "color", "weight", "description", "status", "good_with_children", "good_with_dogs", "good_with_cats", "shelter_id", "images", "created_at"}
}

func TestPetRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPetRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(petColumnsList()).
		AddRow(int64(1), "Max", "dog", "Golden Retriever", 3, "male", "large", nil, nil, "Friendly", "available", true, nil, nil, int64(1), "{photo1.jpg}", now)

	mock.ExpectQuery("SELECT .* FROM pets WHERE id = \\$1 LIMIT 1").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	pet, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Max", pet.Name)
	assert.Equal(t, models.PetAvailable, pet.Status)
	require.NotNil(t, pet.Breed)
	assert.Equal(t, "Golden Retriever", *pet.Breed)
	assert.Equal(t, pq.StringArray{"photo1.jpg"}, pet.Images)
}

func TestPetRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPetRepository(db)

	mock.ExpectQuery("SELECT .* FROM pets").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPetRepositoryListAppliesFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPetRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(petColumnsList()).
		AddRow(int64(1), "Max", "dog", nil, nil, "male", "large", nil, nil, nil, "available", nil, nil, nil, nil, "{}", now)

	mock.ExpectQuery("FROM pets WHERE 1=1 AND type = \\$1 AND status = \\$2 ORDER BY created_at DESC").
		WithArgs("dog", "available").
		WillReturnRows(rows)

	pets, err := repo.List(context.Background(), models.PetFilter{Type: "dog", Status: "available"})
	require.NoError(t, err)
	require.Len(t, pets, 1)
	assert.Equal(t, "Max", pets[0].Name)
}

func TestPetRepositoryListNoFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPetRepository(db)

	mock.ExpectQuery("FROM pets WHERE 1=1 ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(petColumnsList()))

	pets, err := repo.List(context.Background(), models.PetFilter{})
	require.NoError(t, err)
	assert.Empty(t, pets)
}

func TestPetRepositoryCreateDefaults(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPetRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO pets")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	pet := &models.Pet{Name: "Luna", Type: "cat"}
	require.NoError(t, repo.Create(context.Background(), pet))
	assert.Equal(t, int64(9), pet.ID)
	assert.Equal(t, models.PetAvailable, pet.Status, "status defaults to available")
	assert.NotNil(t, pet.Images, "images default to an empty array")
}

func TestPetRepositoryUpdateStatusInTx(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPetRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE pets SET status = $2 WHERE id = $1`)).
		WithArgs(int64(1), models.PetAdopted).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tx, err := db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(context.Background(), tx, 1, models.PetAdopted))
}

func TestPetRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPetRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM pets WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM pets WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, deleted)
}
