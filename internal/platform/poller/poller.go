// Package poller implementa tareas periódicas cancelables para las sesiones
// de vista (chat, tracking).
//
// Garantía: cuando Stop retorna, el loop terminó y fn no vuelve a ejecutarse.
package poller

import (
	"context"
	"sync"
	"time"

	"pet-walks/internal/platform/metrics"
)

// Ticker abstrae time.Ticker para poder controlar los ticks en tests.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type NewTickerFunc func(d time.Duration) Ticker

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

func RealTicker(d time.Duration) Ticker { return realTicker{t: time.NewTicker(d)} }

type Option func(*Task)

// WithTicker reemplaza la fuente de ticks (tests).
func WithTicker(f NewTickerFunc) Option {
	return func(t *Task) { t.newTicker = f }
}

// WithKind etiqueta las métricas de la tarea ("chat", "tracking").
func WithKind(kind string) Option {
	return func(t *Task) { t.kind = kind }
}

type Task struct {
	newTicker NewTickerFunc
	kind      string

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Start lanza fn cada interval hasta que parent se cancele o se llame Stop.
// fn recibe un context que se cancela al detener la tarea; debe chequearlo
// antes de aplicar resultados.
func Start(parent context.Context, interval time.Duration, fn func(ctx context.Context), opts ...Option) *Task {
	t := &Task{
		newTicker: RealTicker,
		kind:      "generic",
		done:      make(chan struct{}),
	}
	for _, o := range opts {
		o(t)
	}

	ctx, cancel := context.WithCancel(parent)
	t.cancel = cancel

	ticker := t.newTicker(interval)
	go func() {
		defer close(t.done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C():
				if ctx.Err() != nil {
					return
				}
				metrics.PollTicksTotal.WithLabelValues(t.kind).Inc()
				fn(ctx)
			}
		}
	}()

	return t
}

// Cancel pide la detención sin esperar. Es seguro llamarlo desde fn.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.once.Do(t.cancel)
}

// Stop cancela y espera a que el loop termine. No llamar desde fn (usar Cancel).
func (t *Task) Stop() {
	if t == nil {
		return
	}
	t.Cancel()
	<-t.done
}

// Done se cierra cuando el loop terminó.
func (t *Task) Done() <-chan struct{} { return t.done }

// ManualTicker entrega ticks sólo cuando se llama Tick. Pensado para tests
// de los paquetes que usan sesiones con polling.
type ManualTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func NewManualTicker() *ManualTicker {
	return &ManualTicker{ch: make(chan time.Time)}
}

// Factory devuelve un NewTickerFunc que siempre entrega este ticker.
func (m *ManualTicker) Factory() NewTickerFunc {
	return func(time.Duration) Ticker { return m }
}

func (m *ManualTicker) C() <-chan time.Time { return m.ch }

func (m *ManualTicker) Stop() {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
}

func (m *ManualTicker) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

// Tick entrega un tick; devuelve false si nadie lo recibió dentro de wait
// (p.ej. la tarea ya terminó).
func (m *ManualTicker) Tick(wait time.Duration) bool {
	select {
	case m.ch <- time.Now():
		return true
	case <-time.After(wait):
		return false
	}
}
