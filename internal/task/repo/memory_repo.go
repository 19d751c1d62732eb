package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taskdeck/taskdeck/internal/task/entity"
	"github.com/taskdeck/taskdeck/pkg/utilities"
)

// MemoryRepository is an in-memory Repository used in tests.
type MemoryRepository struct {
	mu    sync.Mutex
	tasks map[string]*entity.Task
	seq   int64
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tasks: make(map[string]*entity.Task)}
}

func (r *MemoryRepository) Create(ctx context.Context, userID, title string) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// monotonic offset keeps creation order stable even within one clock tick
	r.seq++
	now := time.Now().UTC().Add(time.Duration(r.seq) * time.Nanosecond)
	t := &entity.Task{
		ID:        utilities.NewKSUID(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.tasks[t.ID] = t
	cp := *t
	return &cp, nil
}

func (r *MemoryRepository) Get(ctx context.Context, taskID, userID string) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *MemoryRepository) List(ctx context.Context, userID string, includeCompleted, includeArchived bool) ([]*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Task{}
	for _, t := range r.tasks {
		if t.UserID != userID {
			continue
		}
		if !includeCompleted && t.Completed {
			continue
		}
		if !includeArchived && t.IsArchived {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) UpdateTitle(ctx context.Context, taskID, userID, title string) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, ErrNotFound
	}
	t.Title = title
	t.UpdatedAt = time.Now().UTC()
	cp := *t
	return &cp, nil
}

func (r *MemoryRepository) SetCompletion(ctx context.Context, taskID, userID string, completed bool) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, ErrNotFound
	}
	t.Completed = completed
	t.IsArchived = completed
	t.UpdatedAt = time.Now().UTC()
	cp := *t
	return &cp, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, taskID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[taskID]
	if !ok || t.UserID != userID {
		return false, nil
	}
	delete(r.tasks, taskID)
	return true, nil
}
