package repository

import (
	"context"
	"database/sql"
	"errors"

	"studio-api/core/database"
	"studio-api/core/logger"
	"studio-api/modules/auth/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ErrDuplicateEmail is returned when a register hits an existing email
// or booking slug.
var ErrDuplicateEmail = errors.New("email or booking slug already registered")

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	UpdateTimezone(ctx context.Context, id uuid.UUID, timezone string) error
}

type UserRepository struct {
	db database.IDatabase
}

func NewUserRepository(db database.IDatabase) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (email, password_hash, display_name, timezone, booking_slug)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.DisplayName, user.Timezone, user.BookingSlug,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		logger.Error("UserRepository:Create", err)
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, email, password_hash, display_name, timezone, booking_slug, created_at, updated_at
		FROM users WHERE email = $1
	`
	var user entity.User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:GetByEmail", err)
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT id, email, password_hash, display_name, timezone, booking_slug, created_at, updated_at
		FROM users WHERE id = $1
	`
	var user entity.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:GetByID", err)
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateTimezone(ctx context.Context, id uuid.UUID, timezone string) error {
	err := r.db.ExecContext(ctx, `UPDATE users SET timezone = $2, updated_at = NOW() WHERE id = $1`, id, timezone)
	if err != nil {
		logger.Error("UserRepository:UpdateTimezone", err)
		return err
	}
	return nil
}

// IsUniqueViolation reports a Postgres 23505 unique_violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
