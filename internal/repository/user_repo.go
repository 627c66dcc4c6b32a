package repository

import (
	"context"
	"errors"
	"fmt"

	"job_portal/internal/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateEmail is returned by Create when the email is already taken.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository defines operations for credential data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindFirstByType(ctx context.Context, userType string) (*model.User, error)
	CountByType(ctx context.Context) (map[string]int64, error)
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new credential into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (email, password_hash, type, created_at)
            VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRow(ctx, sql, user.Email, user.PasswordHash, user.Type, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Delete removes a credential. Used as the compensating action when role
// profile creation fails during signup.
func (r *userRepository) Delete(ctx context.Context, id int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found for deletion")
	}
	return nil
}

// FindByEmail retrieves a credential by email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, email, password_hash, type, created_at FROM users WHERE email = $1`
	err := r.db.QueryRow(ctx, sql, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Type, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found is not an error here, service layer handles it
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindByID retrieves a credential by its ID
func (r *userRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, email, password_hash, type, created_at FROM users WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Type, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// FindFirstByType retrieves any one credential of the given type. Used by
// the admin seeding command to keep it idempotent.
func (r *userRepository) FindFirstByType(ctx context.Context, userType string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, email, password_hash, type, created_at FROM users WHERE type = $1 ORDER BY id LIMIT 1`
	err := r.db.QueryRow(ctx, sql, userType).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Type, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by type: %w", err)
	}
	return user, nil
}

// CountByType returns the number of credentials per account type
func (r *userRepository) CountByType(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT type, COUNT(*) FROM users GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("failed to count users by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var userType string
		var count int64
		if err := rows.Scan(&userType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan user count row: %w", err)
		}
		counts[userType] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user count rows: %w", err)
	}
	return counts, nil
}
