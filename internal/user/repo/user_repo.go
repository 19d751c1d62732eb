package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/taskdeck/taskdeck/internal/user/entity"
	"github.com/taskdeck/taskdeck/pkg/utilities"
)

var (
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when the unique constraint on
	// users.email rejects an insert. The constraint is the enforcement
	// point; any existence pre-check is only an early exit.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Repository provides data access for user accounts.
type Repository interface {
	Create(ctx context.Context, email, passwordHash string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// Delete removes the user; owned tasks go with it via ON DELETE CASCADE.
	Delete(ctx context.Context, id string) (bool, error)
}

// PostgresRepository implements Repository on the users table using sqlx.
type PostgresRepository struct {
	db *sqlx.DB
}

var _ Repository = (*PostgresRepository)(nil)

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const pgUniqueViolation = "23505"

func (r *PostgresRepository) Create(ctx context.Context, email, passwordHash string) (*entity.User, error) {
	const q = `INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, password_hash, created_at, updated_at`
	var row entity.User
	if err := r.db.GetContext(ctx, &row, q, utilities.NewKSUID(), email, passwordHash); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &row, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const q = `SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email=$1`
	var row entity.User
	if err := r.db.GetContext(ctx, &row, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return &row, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	const q = `SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id=$1`
	var row entity.User
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select user by id: %w", err)
	}
	return &row, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
