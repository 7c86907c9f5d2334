package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrescuehub/rescuehub-api/internal/models"
)

func userColumnsList() []string {
	return []string{"id", "username", "email", "password_hash", "name", "role", "phone", "bio", "profile_picture", "created_at", "updated_at"}
}

func TestUserRepositoryFindByUsername(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(userColumnsList()).
		AddRow(int64(1), "jane", "jane@example.com", "hash", "Jane", "adopter", nil, nil, nil, now, now)

	mock.ExpectQuery("FROM users WHERE username = \\$1 LIMIT 1").
		WithArgs("jane").
		WillReturnRows(rows)

	user, err := repo.FindByUsername(context.Background(), "jane")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, models.RoleAdopter, user.Role)
}

func TestUserRepositoryFindByUsernameMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("FROM users WHERE username").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	user := &models.User{Username: "jane", Email: "jane@example.com", PasswordHash: "hash", Name: "Jane", Role: models.RoleAdopter}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, int64(3), user.ID)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUserRepositoryUpdatePersistsEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET email = $1, name = $2, role = $3, phone = $4, bio = $5, profile_picture = $6, updated_at = $7 WHERE id = $8")).
		WithArgs("jane.new@example.com", "Jane", models.RoleAdopter, nil, nil, nil, sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &models.User{ID: 7, Username: "jane", Email: "jane.new@example.com", Name: "Jane", Role: models.RoleAdopter}
	require.NoError(t, repo.Update(context.Background(), user))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryListWithRoleFilter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(userColumnsList()).
		AddRow(int64(2), "staff", "staff@example.com", "hash", "Staff", "shelter_staff", nil, nil, nil, now, now)

	mock.ExpectQuery("FROM users WHERE 1=1 AND role = \\$1 ORDER BY created_at DESC").
		WithArgs(models.RoleShelterStaff).
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users WHERE 1=1 AND role = \\$1").
		WithArgs(models.RoleShelterStaff).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	role := models.RoleShelterStaff
	users, total, err := repo.List(context.Background(), models.UserFilter{Role: &role})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "staff", users[0].Username)
}

func TestUserRepositoryRefreshTokenLifecycle(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO refresh_tokens")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM refresh_tokens WHERE token = \\$1 LIMIT 1").
		WithArgs("tok").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token", "expires_at", "created_at", "revoked", "revoked_at"}).
			AddRow("uuid-1", int64(1), "tok", now.Add(time.Hour), now, false, nil))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE refresh_tokens SET revoked = TRUE")).
		WithArgs("uuid-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	token := &models.RefreshToken{ID: "uuid-1", UserID: 1, Token: "tok", ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repo.CreateRefreshToken(context.Background(), token))

	stored, err := repo.FindRefreshToken(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "uuid-1", stored.ID)
	assert.False(t, stored.Revoked)

	require.NoError(t, repo.RevokeRefreshToken(context.Background(), "uuid-1", now))
	assert.NoError(t, mock.ExpectationsWereMet())
}
