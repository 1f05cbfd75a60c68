// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/petshop-backend/internal/core"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return NewRepository(sqlx.NewDb(mockDB, "pgx")), mock
}

func TestRepositoryCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("ana@example.com", "hash", "Ana", RoleUser).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(int64(11), created))

	u := &User{
		Email:        "ana@example.com",
		PasswordHash: "hash",
		Name:         "Ana",
		Role:         RoleUser,
	}
	require.NoError(t, repo.Create(context.Background(), u))

	assert.Equal(t, int64(11), u.ID)
	assert.Equal(t, created, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateDuplicateEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &User{Email: "dup@example.com"})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT .* FROM users WHERE id = \\$1").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepositoryListFilters(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM users WHERE TRUE AND (email ILIKE $1 OR name ILIKE $1) AND role = $2",
	)).
		WithArgs("%ana\\_%", "admin").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery("ORDER BY created_at DESC, id DESC").
		WithArgs("%ana\\_%", "admin", 20, 0).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "email", "password_hash", "name", "role", "created_at"},
		).AddRow(int64(1), "ana_@example.com", "h", "Ana", "admin", time.Now()))

	users, total, err := repo.List(context.Background(), ListUsersParams{
		Search: "ana_",
		Role:   "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "ana_@example.com", users[0].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}
