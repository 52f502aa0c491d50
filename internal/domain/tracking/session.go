package tracking

import (
	"context"
	"strings"
	"sync"
	"time"

	"pet-walks/internal/domain/walkstatus"
	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/platform/metrics"
	"pet-walks/internal/platform/poller"
)

const DefaultPollInterval = 30 * time.Second

// StatusLookup resuelve el estado actual del paseo, tal como lo informa el backend.
type StatusLookup interface {
	WalkStatus(ctx context.Context, tripID string) (string, error)
}

// Snapshot es el estado de la vista de mapa en un momento dado.
type Snapshot struct {
	TripID        string  `json:"tripId"`
	Status        string  `json:"status"`
	Visible       bool    `json:"visible"`
	Interactive   bool    `json:"interactive"`
	StatusMessage string  `json:"statusMessage"`
	Polling       bool    `json:"polling"`
	Route         []Point `json:"route"`
	Error         string  `json:"error,omitempty"`
}

type SessionOptions struct {
	Interval  time.Duration
	NewTicker poller.NewTickerFunc
	OnUpdate  func(Snapshot)
}

// Session es la vista de mapa de un paseo. Re-trae el recorrido cada
// intervalo solo mientras el paseo está activo; si el estado cambia, el
// polling se corta solo. Close la detiene del todo.
type Session struct {
	svc      *Service
	lookup   StatusLookup
	tripID   string
	onUpdate func(Snapshot)
	interval time.Duration
	tickerFn poller.NewTickerFunc

	mu      sync.Mutex
	snap    Snapshot
	closed  bool
	polling bool
	task    *poller.Task

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func (s *Service) OpenSession(ctx context.Context, tripID string, lookup StatusLookup, opts SessionOptions) (*Session, error) {
	tripID = strings.TrimSpace(tripID)
	if tripID == "" {
		return nil, invalid("tracking.session", "trip id required")
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultPollInterval
	}

	sctx, cancel := context.WithCancel(ctx)
	sess := &Session{
		svc:      s,
		lookup:   lookup,
		tripID:   tripID,
		onUpdate: opts.OnUpdate,
		interval: opts.Interval,
		tickerFn: opts.NewTicker,
		snap:     Snapshot{TripID: tripID, Route: []Point{}},
		ctx:      sctx,
		cancel:   cancel,
	}

	status, err := lookup.WalkStatus(sctx, tripID)
	if err != nil {
		cancel()
		return nil, err
	}
	sess.load(sctx, status)
	if active(status) {
		sess.startPolling()
	}
	metrics.OpenSessions.WithLabelValues("tracking").Inc()

	return sess, nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.clone()
}

// Polling indica si hay un loop de polling vivo.
func (s *Session) Polling() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.polling
}

// Refresh recarga a pedido de la vista. Si el paseo pasó a activo, arranca
// el polling.
func (s *Session) Refresh(ctx context.Context) Snapshot {
	if status, ok := s.refresh(ctx); ok && active(status) {
		s.startPolling()
	}
	return s.Snapshot()
}

// Report envía la ubicación del paseador. Solo con el mapa interactivo.
func (s *Session) Report(ctx context.Context, lat, lng float64) (Point, error) {
	const op = "tracking.session.report"

	s.mu.Lock()
	status, closed := s.snap.Status, s.closed
	s.mu.Unlock()

	if closed {
		return Point{}, apperr.State(op, "session closed")
	}
	if !walkstatus.MapInteractiveRaw(status) {
		return Point{}, apperr.State(op, "%s", walkstatus.MapMessage(status))
	}

	p, err := s.svc.SaveLocation(ctx, s.tripID, lat, lng)
	if err != nil {
		return Point{}, err
	}
	s.apply(func(snap *Snapshot) {
		snap.Route = append(snap.Route, p)
	})
	return p, nil
}

// Close es idempotente; cuando retorna no hay callbacks en curso.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		task := s.task
		s.mu.Unlock()

		task.Stop()
		s.cancel()
		metrics.OpenSessions.WithLabelValues("tracking").Dec()
	})
}

func (s *Session) startPolling() {
	s.mu.Lock()
	if s.closed || s.polling {
		s.mu.Unlock()
		return
	}
	prev := s.task
	s.mu.Unlock()

	// el loop anterior ya fue cancelado desde adentro; esperamos que termine
	prev.Stop()

	s.mu.Lock()
	if s.closed || s.polling {
		s.mu.Unlock()
		return
	}
	popts := []poller.Option{poller.WithKind("tracking")}
	if s.tickerFn != nil {
		popts = append(popts, poller.WithTicker(s.tickerFn))
	}
	s.task = poller.Start(s.ctx, s.interval, s.poll, popts...)
	s.polling = true
	s.mu.Unlock()

	s.apply(func(*Snapshot) {})
}

// poll corre dentro del loop. Si el paseo dejó de estar activo se cancela a
// sí mismo.
func (s *Session) poll(ctx context.Context) {
	status, ok := s.refresh(ctx)
	if !ok || active(status) {
		return
	}

	s.mu.Lock()
	task := s.task
	s.polling = false
	s.mu.Unlock()

	task.Cancel()
	s.apply(func(snap *Snapshot) { snap.Polling = false })
}

// refresh consulta el estado y recarga. ok=false si no se pudo resolver el
// estado o la sesión ya no está viva.
func (s *Session) refresh(ctx context.Context) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}

	status, err := s.lookup.WalkStatus(ctx, s.tripID)
	if ctx.Err() != nil {
		return "", false
	}
	if err != nil {
		s.apply(func(snap *Snapshot) { snap.Error = err.Error() })
		return "", false
	}
	s.load(ctx, status)
	return status, true
}

// load trae el recorrido (solo si el mapa es visible) y publica el snapshot.
func (s *Session) load(ctx context.Context, status string) {
	route := []Point{}
	var fetchErr error
	if walkstatus.TrackingVisibleRaw(status) {
		route, fetchErr = s.svc.GetRoute(ctx, s.tripID)
		if ctx.Err() != nil {
			return
		}
	}

	s.apply(func(snap *Snapshot) {
		snap.Status = status
		snap.Visible = walkstatus.MapVisibleRaw(status)
		snap.Interactive = walkstatus.MapInteractiveRaw(status)
		snap.StatusMessage = walkstatus.MapMessage(status)
		snap.Error = ""
		if fetchErr != nil {
			snap.Error = fetchErr.Error()
			return
		}
		snap.Route = route
	})
}

func (s *Session) apply(mut func(*Snapshot)) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	next := s.snap.clone()
	mut(&next)
	next.Polling = s.polling
	s.snap = next
	out := next.clone()
	s.mu.Unlock()

	if s.onUpdate != nil {
		s.onUpdate(out)
	}
}

func (s Snapshot) clone() Snapshot {
	route := make([]Point, len(s.Route))
	copy(route, s.Route)
	s.Route = route
	return s
}

func active(raw string) bool {
	st, ok := walkstatus.Parse(raw)
	return ok && st == walkstatus.Activo
}
