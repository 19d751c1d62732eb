package task

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/taskdeck/taskdeck/internal/task/entity"
	taskrepo "github.com/taskdeck/taskdeck/internal/task/repo"
)

const maxTitleLength = 500

var (
	ErrNotFound     = taskrepo.ErrNotFound
	ErrEmptyTitle   = errors.New("task title cannot be empty")
	ErrTitleTooLong = errors.New("task title cannot exceed 500 characters")
)

// Service holds the task business rules: title validation and the coupled
// completed/archived transitions. All persistence is delegated to the repo.
type Service struct {
	repo taskrepo.Repository
}

func NewService(r taskrepo.Repository) *Service {
	return &Service{repo: r}
}

// validateTitle checks the raw title and returns the trimmed form to store.
func validateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", ErrTitleTooLong
	}
	return trimmed, nil
}

// Create stores a new task for userID. New tasks start active:
// completed=false, is_archived=false.
func (s *Service) Create(ctx context.Context, userID, title string) (*entity.Task, error) {
	trimmed, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, userID, trimmed)
}

// Get returns the task iff it exists and belongs to userID.
func (s *Service) Get(ctx context.Context, taskID, userID string) (*entity.Task, error) {
	return s.repo.Get(ctx, taskID, userID)
}

// List returns the user's tasks newest first. Completed and archived rows
// are excluded unless explicitly included.
func (s *Service) List(ctx context.Context, userID string, includeCompleted, includeArchived bool) ([]*entity.Task, error) {
	return s.repo.List(ctx, userID, includeCompleted, includeArchived)
}

// UpdateTitle changes the title only; the completion flags are untouched.
func (s *Service) UpdateTitle(ctx context.Context, taskID, userID, title string) (*entity.Task, error) {
	trimmed, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateTitle(ctx, taskID, userID, trimmed)
}

// MarkComplete sets completed=true and is_archived=true together.
func (s *Service) MarkComplete(ctx context.Context, taskID, userID string) (*entity.Task, error) {
	return s.repo.SetCompletion(ctx, taskID, userID, true)
}

// MarkIncomplete sets completed=false and is_archived=false together.
func (s *Service) MarkIncomplete(ctx context.Context, taskID, userID string) (*entity.Task, error) {
	return s.repo.SetCompletion(ctx, taskID, userID, false)
}

// Delete removes the task permanently. Repeated deletes report false rather
// than an error.
func (s *Service) Delete(ctx context.Context, taskID, userID string) (bool, error) {
	return s.repo.Delete(ctx, taskID, userID)
}
