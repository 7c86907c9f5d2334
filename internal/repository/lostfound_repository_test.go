package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrescuehub/rescuehub-api/internal/models"
)

func lostFoundColumnsList() []string {
	return []string{
		"id", "type", "pet_type", "breed", "name", "gender", "description",
		"location", "date", "status", "reporter_id", "contact_name",
		"contact_email", "contact_phone", "images", "created_at",
	}
}

func TestLostFoundRepositoryListFiltersByType(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLostFoundRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(lostFoundColumnsList()).
		AddRow(int64(1), "lost", "dog", nil, nil, nil, "Golden retriever, red collar",
			"Riverside Park", now, "open", int64(2), "Jane", "jane@example.com", "",
			"{sighting1.jpg}", now)

	mock.ExpectQuery("FROM lost_found_pets WHERE type = \\$1 ORDER BY created_at DESC").
		WithArgs("lost").
		WillReturnRows(rows)

	reports, err := repo.List(context.Background(), "lost")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, models.ReportLost, reports[0].Type)
	assert.Equal(t, []string{"sighting1.jpg"}, []string(reports[0].Images))
	require.NotNil(t, reports[0].ReporterID)
	assert.Equal(t, int64(2), *reports[0].ReporterID)
}

func TestLostFoundRepositoryCreateAnonymous(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLostFoundRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO lost_found_pets")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	report := &models.LostFoundPet{
		Type:        models.ReportFound,
		PetType:     "cat",
		Description: "Tabby near the bakery",
		Location:    "Main St",
		Date:        time.Now().UTC(),
		ContactName: "Sam",
	}
	require.NoError(t, repo.Create(context.Background(), report))
	assert.Equal(t, int64(3), report.ID)
	assert.Equal(t, models.ReportOpen, report.Status)
	assert.NotNil(t, report.Images)
	assert.Nil(t, report.ReporterID)
}
