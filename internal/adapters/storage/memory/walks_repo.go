package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-walks/internal/domain/walks"
)

type WalkRepo struct {
	mu   sync.RWMutex
	byID map[string]walks.Walk
}

func NewWalkRepo() *WalkRepo {
	return &WalkRepo{
		byID: make(map[string]walks.Walk),
	}
}

func (r *WalkRepo) Create(ctx context.Context, w walks.Walk) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(w.ID) == "" {
		return errors.New("walk id required")
	}
	if _, exists := r.byID[w.ID]; exists {
		return ErrAlreadyExists
	}
	r.byID[w.ID] = cloneWalk(w)
	return nil
}

func (r *WalkRepo) Get(ctx context.Context, id string) (walks.Walk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.byID[id]
	if !ok {
		return walks.Walk{}, ErrNotFound
	}
	return cloneWalk(w), nil
}

// List: por fecha programada ascendente.
func (r *WalkRepo) List(ctx context.Context) ([]walks.Walk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]walks.Walk, 0, len(r.byID))
	for _, w := range r.byID {
		out = append(out, cloneWalk(w))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return out, nil
}

func (r *WalkRepo) Update(ctx context.Context, w walks.Walk) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[w.ID]; !exists {
		return ErrNotFound
	}
	r.byID[w.ID] = cloneWalk(w)
	return nil
}

func cloneWalk(w walks.Walk) walks.Walk {
	w.PetIDs = append([]string(nil), w.PetIDs...)
	return w
}
