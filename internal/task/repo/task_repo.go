package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/taskdeck/taskdeck/internal/task/entity"
	"github.com/taskdeck/taskdeck/pkg/utilities"
)

// ErrNotFound is returned when a task does not exist or is owned by another
// user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("task not found")

// Repository provides data access for tasks. Every method takes the owning
// user id; rows belonging to other users are invisible.
type Repository interface {
	Create(ctx context.Context, userID, title string) (*entity.Task, error)
	Get(ctx context.Context, taskID, userID string) (*entity.Task, error)
	List(ctx context.Context, userID string, includeCompleted, includeArchived bool) ([]*entity.Task, error)
	UpdateTitle(ctx context.Context, taskID, userID, title string) (*entity.Task, error)
	// SetCompletion flips both flags to the given value in a single UPDATE.
	SetCompletion(ctx context.Context, taskID, userID string, completed bool) (*entity.Task, error)
	Delete(ctx context.Context, taskID, userID string) (bool, error)
}

// PostgresRepository implements Repository on the tasks table using sqlx.
type PostgresRepository struct {
	db *sqlx.DB
}

var _ Repository = (*PostgresRepository)(nil)

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const taskColumns = `id, user_id, title, completed, is_archived, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, userID, title string) (*entity.Task, error) {
	const q = `INSERT INTO tasks (id, user_id, title)
		VALUES ($1, $2, $3)
		RETURNING ` + taskColumns
	var row entity.Task
	if err := r.db.GetContext(ctx, &row, q, utilities.NewKSUID(), userID, title); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return &row, nil
}

func (r *PostgresRepository) Get(ctx context.Context, taskID, userID string) (*entity.Task, error) {
	const q = `SELECT ` + taskColumns + ` FROM tasks WHERE id=$1 AND user_id=$2`
	var row entity.Task
	if err := r.db.GetContext(ctx, &row, q, taskID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select task: %w", err)
	}
	return &row, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, includeCompleted, includeArchived bool) ([]*entity.Task, error) {
	q := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id=$1`
	if !includeCompleted {
		q += ` AND completed=false`
	}
	if !includeArchived {
		q += ` AND is_archived=false`
	}
	q += ` ORDER BY created_at DESC`

	tasks := []*entity.Task{}
	if err := r.db.SelectContext(ctx, &tasks, q, userID); err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	return tasks, nil
}

func (r *PostgresRepository) UpdateTitle(ctx context.Context, taskID, userID, title string) (*entity.Task, error) {
	const q = `UPDATE tasks SET title=$3, updated_at=now()
		WHERE id=$1 AND user_id=$2
		RETURNING ` + taskColumns
	var row entity.Task
	if err := r.db.GetContext(ctx, &row, q, taskID, userID, title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update task title: %w", err)
	}
	return &row, nil
}

func (r *PostgresRepository) SetCompletion(ctx context.Context, taskID, userID string, completed bool) (*entity.Task, error) {
	const q = `UPDATE tasks SET completed=$3, is_archived=$3, updated_at=now()
		WHERE id=$1 AND user_id=$2
		RETURNING ` + taskColumns
	var row entity.Task
	if err := r.db.GetContext(ctx, &row, q, taskID, userID, completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update task completion: %w", err)
	}
	return &row, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, taskID, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id=$1 AND user_id=$2`, taskID, userID)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
