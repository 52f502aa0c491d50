package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-walks/internal/domain/tickets"
)

type TicketRepo struct {
	mu   sync.RWMutex
	byID map[string]tickets.Ticket
}

func NewTicketRepo() *TicketRepo {
	return &TicketRepo{
		byID: make(map[string]tickets.Ticket),
	}
}

func (r *TicketRepo) Create(ctx context.Context, t tickets.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(t.ID) == "" {
		return errors.New("ticket id required")
	}
	if _, exists := r.byID[t.ID]; exists {
		return ErrAlreadyExists
	}
	r.byID[t.ID] = cloneTicket(t)
	return nil
}

func (r *TicketRepo) Get(ctx context.Context, id string) (tickets.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return tickets.Ticket{}, ErrNotFound
	}
	return cloneTicket(t), nil
}

// List: más reciente primero.
func (r *TicketRepo) List(ctx context.Context) ([]tickets.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tickets.Ticket, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, cloneTicket(t))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *TicketRepo) Update(ctx context.Context, t tickets.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[t.ID]; !exists {
		return ErrNotFound
	}
	r.byID[t.ID] = cloneTicket(t)
	return nil
}

func cloneTicket(t tickets.Ticket) tickets.Ticket {
	if t.Response != nil {
		resp := *t.Response
		t.Response = &resp
	}
	return t
}
