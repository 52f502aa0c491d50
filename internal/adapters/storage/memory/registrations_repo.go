package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-walks/internal/domain/registrations"
)

type RegistrationRepo struct {
	mu   sync.RWMutex
	byID map[string]registrations.Registration
}

func NewRegistrationRepo() *RegistrationRepo {
	return &RegistrationRepo{
		byID: make(map[string]registrations.Registration),
	}
}

func (r *RegistrationRepo) Create(ctx context.Context, reg registrations.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(reg.ID) == "" {
		return errors.New("registration id required")
	}
	if _, exists := r.byID[reg.ID]; exists {
		return ErrAlreadyExists
	}
	r.byID[reg.ID] = cloneRegistration(reg)
	return nil
}

func (r *RegistrationRepo) Get(ctx context.Context, id string) (registrations.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.byID[id]
	if !ok {
		return registrations.Registration{}, ErrNotFound
	}
	return cloneRegistration(reg), nil
}

func (r *RegistrationRepo) List(ctx context.Context) ([]registrations.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]registrations.Registration, 0, len(r.byID))
	for _, reg := range r.byID {
		out = append(out, cloneRegistration(reg))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

func (r *RegistrationRepo) Update(ctx context.Context, reg registrations.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[reg.ID]; !exists {
		return ErrNotFound
	}
	r.byID[reg.ID] = cloneRegistration(reg)
	return nil
}

func (r *RegistrationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func cloneRegistration(reg registrations.Registration) registrations.Registration {
	if reg.ReviewedAt != nil {
		t := *reg.ReviewedAt
		reg.ReviewedAt = &t
	}
	if reg.ApplicationScore != nil {
		s := *reg.ApplicationScore
		reg.ApplicationScore = &s
	}
	return reg
}
