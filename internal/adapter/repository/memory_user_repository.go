package repository

import (
	"context"
	"strings"
	"sync"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

type memoryUserRepository struct {
	mu      sync.RWMutex
	users   map[int64]*entity.User
	byEmail map[string]int64
	nextID  int64
}

func NewMemoryUserRepository() repository.UserRepository {
	return &memoryUserRepository{
		users:   make(map[int64]*entity.User),
		byEmail: make(map[string]int64),
		nextID:  1,
	}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, exists := r.byEmail[key]; exists {
		return errors.BadRequest("Email already registered", nil)
	}

	user.ID = r.nextID
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	r.byEmail[key] = user.ID
	return nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	cp := *user
	return &cp, nil
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	cp := *r.users[id]
	return &cp, nil
}

func (r *memoryUserRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}
