package repo

import (
	"context"
	"sync"
	"time"

	"github.com/taskdeck/taskdeck/internal/user/entity"
	"github.com/taskdeck/taskdeck/pkg/utilities"
)

// MemoryRepository is an in-memory Repository used in tests. It enforces
// email uniqueness under a mutex the same way the database constraint does.
type MemoryRepository struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*entity.User)}
}

func (r *MemoryRepository) Create(ctx context.Context, email, passwordHash string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return nil, ErrDuplicateEmail
		}
	}
	now := time.Now().UTC()
	u := &entity.User{
		ID:           utilities.NewKSUID(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}
