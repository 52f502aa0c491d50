package walks

import (
	"context"
	"sync"
	"time"

	"pet-walks/internal/domain/walkstatus"
)

// Topes por paseador. Se validan localmente contra la agenda cacheada, antes
// de cualquier llamada; el backend puede rechazar igual.
const (
	MaxAcceptedWalks = 5 // Esperando pago + Agendado
	MaxActiveWalks   = 2 // Activo
)

// Agenda es la copia local de los paseos de un paseador.
type Agenda struct {
	WalkerID string

	mu       sync.RWMutex
	walks    []Walk
	loadedAt time.Time
}

func NewAgenda(walkerID string, walks []Walk, loadedAt time.Time) *Agenda {
	a := &Agenda{WalkerID: walkerID}
	a.replace(walks, loadedAt)
	return a
}

func (a *Agenda) Walks() []Walk {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]Walk(nil), a.walks...)
}

func (a *Agenda) LoadedAt() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loadedAt
}

func (a *Agenda) Count(statuses ...walkstatus.Status) int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	n := 0
	for _, w := range a.walks {
		for _, s := range statuses {
			if w.Status == s {
				n++
				break
			}
		}
	}
	return n
}

func (a *Agenda) AcceptedCount() int {
	return a.Count(walkstatus.EsperandoPago, walkstatus.Agendado)
}

func (a *Agenda) ActiveCount() int {
	return a.Count(walkstatus.Activo)
}

func (a *Agenda) CanAccept() bool { return a.AcceptedCount() < MaxAcceptedWalks }
func (a *Agenda) CanStart() bool  { return a.ActiveCount() < MaxActiveWalks }

func (a *Agenda) Find(id string) (Walk, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, w := range a.walks {
		if w.ID == id {
			return w, true
		}
	}
	return Walk{}, false
}

// apply es la actualización provisional después de una escritura.
func (a *Agenda) apply(w Walk) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.walks {
		if a.walks[i].ID == w.ID {
			a.walks[i] = w
			return
		}
	}
	a.walks = append(a.walks, w)
}

func (a *Agenda) replace(walks []Walk, loadedAt time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.walks = append([]Walk(nil), walks...)
	a.loadedAt = loadedAt
}

// markStale fuerza una recarga en el próximo acceso por cache.
func (a *Agenda) markStale() {
	a.mu.Lock()
	a.loadedAt = time.Time{}
	a.mu.Unlock()
}

// AgendaCache guarda una agenda por paseador durante ttl.
type AgendaCache struct {
	svc *Service
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	byWalker map[string]*Agenda
}

func NewAgendaCache(svc *Service, ttl time.Duration) *AgendaCache {
	return &AgendaCache{
		svc:      svc,
		ttl:      ttl,
		now:      time.Now,
		byWalker: make(map[string]*Agenda),
	}
}

// Get devuelve la agenda cacheada si sigue vigente o la recarga.
func (c *AgendaCache) Get(ctx context.Context, walkerID string) (*Agenda, error) {
	c.mu.Lock()
	a, ok := c.byWalker[walkerID]
	c.mu.Unlock()

	if ok && !a.LoadedAt().IsZero() && c.now().Sub(a.LoadedAt()) < c.ttl {
		return a, nil
	}

	fresh, err := c.svc.LoadAgenda(ctx, walkerID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if ok {
		a.replace(fresh.Walks(), fresh.LoadedAt())
		return a, nil
	}
	c.byWalker[walkerID] = fresh
	return fresh, nil
}

func (c *AgendaCache) Invalidate(walkerID string) {
	c.mu.Lock()
	delete(c.byWalker, walkerID)
	c.mu.Unlock()
}
