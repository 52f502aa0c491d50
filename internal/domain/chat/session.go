package chat

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

// Participant es quien tiene la vista abierta.
type Participant struct {
	ID   string
	Type SenderType
	Name string
}

// Snapshot es el estado de la vista de chat en un momento dado.
type Snapshot struct {
	TripID        string       `json:"tripId"`
	Status        string       `json:"status"`
	Visible       bool         `json:"visible"`
	CanSend       bool         `json:"canSend"`
	StatusMessage string       `json:"statusMessage"`
	Messages      []MessageDTO `json:"messages"`
	Error         string       `json:"error,omitempty"`
}

type SessionOptions struct {
	Interval  time.Duration
	NewTicker poller.NewTickerFunc
	OnUpdate  func(Snapshot)
}

// Session es la vista de chat de un paseo: carga inicial, polling y envío.
// Close la detiene; un resultado que llega después de Close se descarta.
type Session struct {
	svc      *Service
	lookup   StatusLookup
	tripID   string
	viewer   Participant
	onUpdate func(Snapshot)

	mu     sync.Mutex
	snap   Snapshot
	closed bool

	ctx       context.Context
	cancel    context.CancelFunc
	task      *poller.Task
	closeOnce sync.Once
}

// OpenSession hace la carga inicial y arranca el polling. Falla si no se
// puede resolver el estado del paseo.
func (s *Service) OpenSession(ctx context.Context, tripID string, viewer Participant, lookup StatusLookup, opts SessionOptions) (*Session, error) {
	tripID = strings.TrimSpace(tripID)
	if tripID == "" {
		return nil, s.invalid("chat.session", "trip id required")
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultPollInterval
	}

	sctx, cancel := context.WithCancel(ctx)
	sess := &Session{
		svc:      s,
		lookup:   lookup,
		tripID:   tripID,
		viewer:   viewer,
		onUpdate: opts.OnUpdate,
		snap:     Snapshot{TripID: tripID, Messages: []MessageDTO{}},
		ctx:      sctx,
		cancel:   cancel,
	}

	status, err := lookup.WalkStatus(sctx, tripID)
	if err != nil {
		cancel()
		return nil, err
	}
	sess.load(sctx, status)

	popts := []poller.Option{poller.WithKind("chat")}
	if opts.NewTicker != nil {
		popts = append(popts, poller.WithTicker(opts.NewTicker))
	}
	sess.task = poller.Start(sctx, opts.Interval, sess.refresh, popts...)
	metrics.OpenSessions.WithLabelValues("chat").Inc()

	return sess, nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.clone()
}

// Send publica un mensaje si el estado lo permite. Aplica el mensaje de forma
// provisional y después reconcilia con una recarga completa.
func (s *Session) Send(ctx context.Context, text string) (MessageDTO, error) {
	const op = "chat.session.send"

	s.mu.Lock()
	status, closed := s.snap.Status, s.closed
	s.mu.Unlock()

	if closed {
		return MessageDTO{}, apperr.State(op, "session closed")
	}
	if !s.viewer.CanWrite() {
		return MessageDTO{}, apperr.State(op, "solo el dueño o el paseador del paseo pueden escribir")
	}
	if !walkstatus.CanSendMessagesRaw(status) {
		return MessageDTO{}, apperr.State(op, "%s", walkstatus.ChatMessage(status))
	}

	dto, err := s.svc.SendMessage(ctx, SendInput{
		TripID:     s.tripID,
		SenderID:   s.viewer.ID,
		SenderType: s.viewer.Type,
		SenderName: s.viewer.Name,
		Text:       text,
	})
	if err != nil {
		return MessageDTO{}, err
	}

	s.apply(func(snap *Snapshot) {
		snap.Messages = append(snap.Messages, dto)
	})
	s.refresh(s.ctx)

	return dto, nil
}

// Close detiene el polling. Es idempotente; cuando retorna ya no hay
// callbacks en curso.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		s.task.Stop()
		s.cancel()
		metrics.OpenSessions.WithLabelValues("chat").Dec()
	})
}

func (s *Session) refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	status, err := s.lookup.WalkStatus(ctx, s.tripID)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		s.apply(func(snap *Snapshot) { snap.Error = err.Error() })
		return
	}
	s.load(ctx, status)
}

// load trae los mensajes (solo si el chat es visible) y publica el snapshot.
func (s *Session) load(ctx context.Context, status string) {
	msgs := []MessageDTO{}
	var fetchErr error
	if walkstatus.ChatVisibleRaw(status) {
		msgs, fetchErr = s.svc.GetChatMessages(ctx, s.tripID)
		if ctx.Err() != nil {
			return
		}
	}

	s.apply(func(snap *Snapshot) {
		snap.Status = status
		snap.Visible = walkstatus.ChatVisibleRaw(status)
		snap.CanSend = walkstatus.CanSendMessagesRaw(status)
		snap.StatusMessage = walkstatus.ChatMessage(status)
		snap.Error = ""
		if fetchErr != nil {
			snap.Error = fetchErr.Error()
			return
		}
		snap.Messages = msgs
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
	s.snap = next
	out := next.clone()
	s.mu.Unlock()

	if s.onUpdate != nil {
		s.onUpdate(out)
	}
}

func (s Snapshot) clone() Snapshot {
	msgs := make([]MessageDTO, len(s.Messages))
	copy(msgs, s.Messages)
	s.Messages = msgs
	return s
}
