package walks

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"pet-walks/internal/domain/walkstatus"
	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/platform/metrics"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) GetWalk(ctx context.Context, id string) (Walk, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Walk{}, invalid("walks.get", "walk id required")
	}
	w, err := s.repo.Get(ctx, id)
	if err != nil {
		return Walk{}, fmt.Errorf("get walk %s: %w", id, err)
	}
	return w, nil
}

// WalkStatus devuelve el estado crudo para las sesiones de chat y tracking.
func (s *Service) WalkStatus(ctx context.Context, tripID string) (string, error) {
	w, err := s.GetWalk(ctx, tripID)
	if err != nil {
		return "", err
	}
	return string(w.Status), nil
}

// WalkParticipants devuelve dueño, paseador y estado del paseo.
func (s *Service) WalkParticipants(ctx context.Context, tripID string) (walkstatus.Participants, error) {
	w, err := s.GetWalk(ctx, tripID)
	if err != nil {
		return walkstatus.Participants{}, err
	}
	return walkstatus.Participants{
		Status:   string(w.Status),
		OwnerID:  w.OwnerID,
		WalkerID: w.WalkerID,
	}, nil
}

func (s *Service) LoadAgenda(ctx context.Context, walkerID string) (*Agenda, error) {
	walkerID = strings.TrimSpace(walkerID)
	if walkerID == "" {
		return nil, invalid("walks.agenda", "walker id required")
	}
	items, err := s.repo.ListByWalker(ctx, walkerID)
	if err != nil {
		return nil, fmt.Errorf("load agenda of walker %s: %w", walkerID, err)
	}
	return NewAgenda(walkerID, items, s.now()), nil
}

// AcceptWalk: Solicitado -> Esperando pago. Rechaza con CapacityError, sin
// tocar la red, si el paseador ya tiene MaxAcceptedWalks aceptados.
func (s *Service) AcceptWalk(ctx context.Context, agenda *Agenda, walkID string) (Walk, error) {
	const op = "walks.accept"
	if agenda != nil && !agenda.CanAccept() {
		metrics.CapacityRejectionsTotal.WithLabelValues("accept").Inc()
		return Walk{}, apperr.Capacity(op, "ya tenés %d paseos aceptados; finalizá o cancelá alguno antes de aceptar otro", MaxAcceptedWalks)
	}
	return s.walkerTransition(ctx, op, agenda, walkID, walkstatus.Solicitado, walkstatus.EsperandoPago)
}

// StartWalk: Agendado -> Activo, con tope de MaxActiveWalks en curso.
func (s *Service) StartWalk(ctx context.Context, agenda *Agenda, walkID string) (Walk, error) {
	const op = "walks.start"
	if agenda != nil && !agenda.CanStart() {
		metrics.CapacityRejectionsTotal.WithLabelValues("start").Inc()
		return Walk{}, apperr.Capacity(op, "ya tenés %d paseos en curso; finalizá uno antes de iniciar otro", MaxActiveWalks)
	}
	return s.walkerTransition(ctx, op, agenda, walkID, walkstatus.Agendado, walkstatus.Activo)
}

func (s *Service) RejectWalk(ctx context.Context, agenda *Agenda, walkID string) (Walk, error) {
	return s.walkerTransition(ctx, "walks.reject", agenda, walkID, walkstatus.Solicitado, walkstatus.Rechazado)
}

func (s *Service) FinishWalk(ctx context.Context, agenda *Agenda, walkID string) (Walk, error) {
	return s.walkerTransition(ctx, "walks.finish", agenda, walkID, walkstatus.Activo, walkstatus.Finalizado)
}

// walkerTransition aplica una acción del paseador en dos fases: actualiza la
// agenda con la respuesta del backend y después la reconcilia con una recarga.
func (s *Service) walkerTransition(ctx context.Context, op string, agenda *Agenda, walkID string, from, to walkstatus.Status) (Walk, error) {
	if agenda == nil || strings.TrimSpace(agenda.WalkerID) == "" {
		return Walk{}, invalid(op, "walker agenda required")
	}
	walkID = strings.TrimSpace(walkID)
	if walkID == "" {
		return Walk{}, invalid(op, "walk id required")
	}

	w, ok := agenda.Find(walkID)
	if !ok {
		fetched, err := s.repo.Get(ctx, walkID)
		if err != nil {
			return Walk{}, fmt.Errorf("get walk %s: %w", walkID, err)
		}
		w = fetched
	}
	if w.WalkerID != agenda.WalkerID {
		return Walk{}, apperr.NotFound(op, "walk %s is not assigned to walker %s", walkID, agenda.WalkerID)
	}
	if w.Status != from || !walkstatus.CanTransition(from, to) {
		return Walk{}, apperr.State(op, "el paseo está %q; solo se puede pasar a %q desde %q", w.Status, to, from)
	}

	updated, err := s.repo.UpdateStatus(ctx, walkID, to)
	if err != nil {
		return Walk{}, fmt.Errorf("update walk %s to %s: %w", walkID, to, err)
	}

	agenda.apply(updated)
	s.reconcile(ctx, agenda)

	return updated, nil
}

// reconcile recarga la agenda. Si falla, queda la versión provisional marcada
// como vencida para que el cache la recargue.
func (s *Service) reconcile(ctx context.Context, agenda *Agenda) {
	items, err := s.repo.ListByWalker(ctx, agenda.WalkerID)
	if err != nil {
		agenda.markStale()
		return
	}
	agenda.replace(items, s.now())
}

// CancelWalk lo puede pedir el dueño o el paseador asignado, mientras el
// ciclo de vida lo permita.
func (s *Service) CancelWalk(ctx context.Context, actorID, walkID string) (Walk, error) {
	const op = "walks.cancel"

	w, err := s.ownedBy(ctx, op, actorID, walkID, true)
	if err != nil {
		return Walk{}, err
	}
	if !walkstatus.CanTransition(w.Status, walkstatus.Cancelado) {
		return Walk{}, apperr.State(op, "un paseo %q no se puede cancelar", w.Status)
	}

	updated, err := s.repo.UpdateStatus(ctx, w.ID, walkstatus.Cancelado)
	if err != nil {
		return Walk{}, fmt.Errorf("cancel walk %s: %w", w.ID, err)
	}
	return updated, nil
}

type RequestInput struct {
	OwnerID      string
	WalkerID     string
	ScheduledAt  time.Time
	StartAddress string
	TotalPrice   float64
	PetIDs       []string
	Notes        string
}

// RequestWalk crea el pedido del dueño; el backend lo deja en Solicitado.
func (s *Service) RequestWalk(ctx context.Context, in RequestInput) (Walk, error) {
	const op = "walks.request"

	ownerID := strings.TrimSpace(in.OwnerID)
	walkerID := strings.TrimSpace(in.WalkerID)
	address := strings.TrimSpace(in.StartAddress)

	pets := make([]string, 0, len(in.PetIDs))
	seen := map[string]bool{}
	for _, p := range in.PetIDs {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		pets = append(pets, p)
	}

	switch {
	case ownerID == "" || walkerID == "":
		return Walk{}, invalid(op, "owner id and walker id required")
	case ownerID == walkerID:
		return Walk{}, invalid(op, "no podés pedirte un paseo a vos mismo")
	case len(pets) == 0:
		return Walk{}, invalid(op, "elegí al menos una mascota")
	case address == "":
		return Walk{}, invalid(op, "la dirección de inicio es obligatoria")
	case in.ScheduledAt.IsZero() || !in.ScheduledAt.After(s.now()):
		return Walk{}, invalid(op, "la fecha del paseo debe ser futura")
	case in.TotalPrice < 0 || math.IsNaN(in.TotalPrice) || math.IsInf(in.TotalPrice, 0):
		return Walk{}, invalid(op, "precio inválido")
	}

	w, err := s.repo.Create(ctx, NewWalk{
		OwnerID:      ownerID,
		WalkerID:     walkerID,
		ScheduledAt:  in.ScheduledAt.UTC(),
		StartAddress: address,
		TotalPrice:   in.TotalPrice,
		PetIDs:       pets,
		Notes:        strings.TrimSpace(in.Notes),
	})
	if err != nil {
		return Walk{}, fmt.Errorf("request walk: %w", err)
	}
	return w, nil
}

// ConfirmPayment: Esperando pago -> Agendado, solo por el dueño.
func (s *Service) ConfirmPayment(ctx context.Context, ownerID, walkID string, p Payment) (Walk, error) {
	const op = "walks.pay"

	p.Method = strings.TrimSpace(p.Method)
	p.Reference = strings.TrimSpace(p.Reference)
	if p.Method == "" {
		return Walk{}, invalid(op, "payment method required")
	}
	if !(p.Amount > 0) {
		return Walk{}, invalid(op, "el monto debe ser mayor a cero")
	}

	w, err := s.ownedBy(ctx, op, ownerID, walkID, false)
	if err != nil {
		return Walk{}, err
	}
	if w.Status != walkstatus.EsperandoPago {
		return Walk{}, apperr.State(op, "el paseo está %q; solo se paga en %q", w.Status, walkstatus.EsperandoPago)
	}
	if p.Amount+0.005 < w.TotalPrice {
		return Walk{}, invalid(op, "el monto %.2f no cubre el total %.2f", p.Amount, w.TotalPrice)
	}

	updated, err := s.repo.Pay(ctx, w.ID, p)
	if err != nil {
		return Walk{}, fmt.Errorf("pay walk %s: %w", w.ID, err)
	}
	return updated, nil
}

// ListOwnerWalks: próximos primero.
func (s *Service) ListOwnerWalks(ctx context.Context, ownerID string) ([]Walk, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, invalid("walks.list_owner", "owner id required")
	}
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list walks of owner %s: %w", ownerID, err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ScheduledAt.Before(items[j].ScheduledAt)
	})
	return items, nil
}

// ownedBy trae el paseo y verifica que actorID participe. Un paseo ajeno se
// reporta como inexistente.
func (s *Service) ownedBy(ctx context.Context, op, actorID, walkID string, walkerAllowed bool) (Walk, error) {
	actorID = strings.TrimSpace(actorID)
	walkID = strings.TrimSpace(walkID)
	if actorID == "" || walkID == "" {
		return Walk{}, invalid(op, "actor id and walk id required")
	}

	w, err := s.repo.Get(ctx, walkID)
	if err != nil {
		return Walk{}, fmt.Errorf("get walk %s: %w", walkID, err)
	}
	if w.OwnerID == actorID || (walkerAllowed && w.WalkerID == actorID) {
		return w, nil
	}
	return Walk{}, apperr.NotFound(op, "walk %s not found", walkID)
}

func invalid(op, format string, args ...any) error {
	metrics.ValidationFailuresTotal.WithLabelValues("walks").Inc()
	return apperr.Validation(op, format, args...)
}
