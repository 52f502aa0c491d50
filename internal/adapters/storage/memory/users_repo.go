package memory

import (
	"context"
	"sync"
)

type UserRepo struct {
	mu     sync.RWMutex
	byUser map[string]string
}

func NewUserRepo() *UserRepo {
	return &UserRepo{byUser: make(map[string]string)}
}

func (r *UserRepo) SetRole(ctx context.Context, userID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[userID] = role
	return nil
}

func (r *UserRepo) Role(ctx context.Context, userID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	role, ok := r.byUser[userID]
	if !ok {
		return "", ErrNotFound
	}
	return role, nil
}
