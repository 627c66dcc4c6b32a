package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"job_portal/internal/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewUserRepository(mockPool)
	user := &model.User{
		Email:        "alice@example.com",
		PasswordHash: "hashed",
		Type:         model.TypeApplicant,
		CreatedAt:    time.Now(),
	}

	mockPool.ExpectQuery("INSERT INTO users").
		WithArgs(user.Email, user.PasswordHash, user.Type, user.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(1))

	err = repo.Create(context.Background(), user)

	assert.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewUserRepository(mockPool)
	user := &model.User{
		Email:        "alice@example.com",
		PasswordHash: "hashed",
		Type:         model.TypeApplicant,
		CreatedAt:    time.Now(),
	}

	mockPool.ExpectQuery("INSERT INTO users").
		WithArgs(user.Email, user.PasswordHash, user.Type, user.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	err = repo.Create(context.Background(), user)

	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestUserRepository_Delete(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewUserRepository(mockPool)

	mockPool.ExpectExec("DELETE FROM users").
		WithArgs(7).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err = repo.Delete(context.Background(), 7)

	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestUserRepository_Delete_NotFound(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewUserRepository(mockPool)

	mockPool.ExpectExec("DELETE FROM users").
		WithArgs(99).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = repo.Delete(context.Background(), 99)

	assert.Error(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewUserRepository(mockPool)
	createdAt := time.Now()

	rows := pgxmock.NewRows([]string{"id", "email", "password_hash", "type", "created_at"}).
		AddRow(3, "bob@example.com", "hashed", model.TypeRecruiter, createdAt)
	mockPool.ExpectQuery("SELECT id, email, password_hash, type, created_at FROM users WHERE email").
		WithArgs("bob@example.com").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "bob@example.com")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 3, user.ID)
	assert.Equal(t, model.TypeRecruiter, user.Type)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewUserRepository(mockPool)

	mockPool.ExpectQuery("SELECT id, email, password_hash, type, created_at FROM users WHERE email").
		WithArgs("nobody@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash", "type", "created_at"}))

	user, err := repo.FindByEmail(context.Background(), "nobody@example.com")

	// not found is reported as nil user, nil error
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestUserRepository_FindByID_Error(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewUserRepository(mockPool)

	mockPool.ExpectQuery("SELECT id, email, password_hash, type, created_at FROM users WHERE id").
		WithArgs(5).
		WillReturnError(errors.New("connection refused"))

	user, err := repo.FindByID(context.Background(), 5)

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestUserRepository_CountByType(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewUserRepository(mockPool)

	rows := pgxmock.NewRows([]string{"type", "count"}).
		AddRow(model.TypeApplicant, int64(12)).
		AddRow(model.TypeRecruiter, int64(4)).
		AddRow(model.TypeAdmin, int64(1))
	mockPool.ExpectQuery("SELECT type, COUNT").WillReturnRows(rows)

	counts, err := repo.CountByType(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(12), counts[model.TypeApplicant])
	assert.Equal(t, int64(4), counts[model.TypeRecruiter])
	assert.Equal(t, int64(1), counts[model.TypeAdmin])
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
