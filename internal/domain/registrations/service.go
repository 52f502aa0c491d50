package registrations

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/platform/metrics"
	"pet-walks/internal/platform/timeutil"
)

// RecentWindow define qué cuenta como envío reciente en las estadísticas.
const RecentWindow = 7 * 24 * time.Hour

type Service struct {
	repo  Repository
	loc   *time.Location
	now   func() time.Time
	newID func(now time.Time) string
}

func NewService(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = timeutil.LoadLocation("")
	}
	return &Service{
		repo:  repo,
		loc:   loc,
		now:   time.Now,
		newID: NewApplicationID,
	}
}

// NewApplicationID genera REG-<epoch-ms>-<0..999>. No es criptográficamente
// único: dos envíos en el mismo milisegundo pueden colisionar.
func NewApplicationID(now time.Time) string {
	return fmt.Sprintf("REG-%d-%d", now.UnixMilli(), rand.IntN(1000))
}

type SubmitInput struct {
	UserID   string  `json:"userId"`
	FullName string  `json:"fullName"`
	Phone    string  `json:"phone"`
	DNI      string  `json:"dni"`
	City     string  `json:"city"`
	Province string  `json:"province"`
	Images   *Images `json:"images"`
}

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// NormalizePhone quita espacios, guiones y paréntesis.
func NormalizePhone(p string) string {
	return phoneSeparators.Replace(strings.TrimSpace(p))
}

func (s *Service) SubmitWalkerRegistration(ctx context.Context, in SubmitInput) (Registration, error) {
	const op = "registrations.submit"

	userID := strings.TrimSpace(in.UserID)
	fullName := strings.TrimSpace(in.FullName)
	dni := strings.TrimSpace(in.DNI)
	city := strings.TrimSpace(in.City)
	province := strings.TrimSpace(in.Province)
	phone := NormalizePhone(in.Phone)

	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"userId", userID},
		{"fullName", fullName},
		{"phone", phone},
		{"dni", dni},
		{"city", city},
		{"province", province},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if in.Images == nil {
		missing = append(missing, "images")
	}
	if len(missing) > 0 {
		return Registration{}, invalid(op, "faltan campos obligatorios: %s", strings.Join(missing, ", "))
	}

	if !dniRe.MatchString(dni) {
		return Registration{}, invalid(op, "el DNI debe tener 7 u 8 dígitos")
	}
	if !phoneRe.MatchString(phone) {
		return Registration{}, invalid(op, "el teléfono debe tener entre 8 y 15 dígitos")
	}

	images := Images{
		DNIFront:      strings.TrimSpace(in.Images.DNIFront),
		DNIBack:       strings.TrimSpace(in.Images.DNIBack),
		SelfieWithDNI: strings.TrimSpace(in.Images.SelfieWithDNI),
	}
	var missingImgs []string
	for name, v := range map[string]string{
		"dniFront":      images.DNIFront,
		"dniBack":       images.DNIBack,
		"selfieWithDni": images.SelfieWithDNI,
	} {
		if v == "" {
			missingImgs = append(missingImgs, name)
		}
	}
	if len(missingImgs) > 0 {
		sort.Strings(missingImgs)
		return Registration{}, invalid(op, "faltan imágenes obligatorias: %s", strings.Join(missingImgs, ", "))
	}

	// una solicitud viva por usuario; una rechazada se limpia con Retry
	existing, err := s.repo.GetByUser(ctx, userID)
	switch {
	case err == nil && existing.Status == StatusRejected:
		return Registration{}, apperr.State(op, "la solicitud anterior fue rechazada: reintentá antes de volver a enviar")
	case err == nil:
		return Registration{}, apperr.State(op, "ya existe una solicitud en estado %s", existing.Status)
	case !errors.Is(err, apperr.ErrNotFound):
		return Registration{}, fmt.Errorf("check existing registration of user %s: %w", userID, err)
	}

	now := s.now()
	reg := Registration{
		ID:               s.newID(now),
		UserID:           userID,
		FullName:         fullName,
		Phone:            phone,
		DNI:              dni,
		City:             city,
		Province:         province,
		Images:           images,
		Status:           StatusPending,
		SubmittedAt:      now,
		ReviewedAt:       nil,
		ApplicationScore: nil,
	}

	created, err := s.repo.Create(ctx, reg)
	if err != nil {
		return Registration{}, fmt.Errorf("submit registration of user %s: %w", userID, err)
	}
	return created, nil
}

// UpdateRegistrationStatus registra la revisión del admin. Una solicitud
// aprobada ya no cambia; aprobar promueve igual que ReviewApplication.
func (s *Service) UpdateRegistrationStatus(ctx context.Context, id string, status Status, adminNotes string) (Registration, error) {
	const op = "registrations.update_status"

	if !status.Valid() {
		return Registration{}, invalid(op, "estado inválido %q", status)
	}

	current, err := s.load(ctx, op, id)
	if err != nil {
		return Registration{}, err
	}
	if current.Status == StatusApproved {
		return Registration{}, apperr.State(op, "la solicitud ya fue aprobada")
	}
	return s.apply(ctx, current, status, adminNotes, "")
}

func (s *Service) load(ctx context.Context, op, id string) (Registration, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Registration{}, invalid(op, "registration id required")
	}
	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Registration{}, fmt.Errorf("get registration %s: %w", id, err)
	}
	return reg, nil
}

// apply guarda la revisión sobre el registro ya cargado. Al aprobar se
// promueve antes de guardar: si la promoción falla la solicitud no cambia y
// la revisión se puede repetir. El score solo se calcula al aprobar.
func (s *Service) apply(ctx context.Context, reg Registration, status Status, adminNotes, reviewer string) (Registration, error) {
	if status == StatusApproved {
		if err := s.repo.PromoteToWalker(ctx, reg.UserID); err != nil {
			return Registration{}, fmt.Errorf("promote user %s: %w", reg.UserID, err)
		}
	}

	now := s.now()
	reg.Status = status
	reg.ReviewedAt = &now
	reg.AdminNotes = strings.TrimSpace(adminNotes)
	if reviewer = strings.TrimSpace(reviewer); reviewer != "" {
		reg.ReviewedBy = reviewer
	}
	reg.ApplicationScore = nil
	if status == StatusApproved {
		score := CalculateApplicationScore(reg, s.loc)
		reg.ApplicationScore = &score
	}

	updated, err := s.repo.Update(ctx, reg)
	if err != nil {
		return Registration{}, fmt.Errorf("update registration %s: %w", reg.ID, err)
	}
	return updated, nil
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
	DecisionReview  Decision = "review"
)

// ReviewApplication aplica la máquina de estados de revisión:
// pending|under_review -> approved|rejected|under_review. Al aprobar promueve
// al usuario a paseador.
func (s *Service) ReviewApplication(ctx context.Context, id string, decision Decision, notes, reviewer string) (Registration, error) {
	const op = "registrations.review"

	var target Status
	switch decision {
	case DecisionApprove:
		target = StatusApproved
	case DecisionReject:
		target = StatusRejected
	case DecisionReview:
		target = StatusUnderReview
	default:
		return Registration{}, invalid(op, "decisión inválida %q", decision)
	}

	current, err := s.load(ctx, op, id)
	if err != nil {
		return Registration{}, err
	}
	if current.Status != StatusPending && current.Status != StatusUnderReview {
		return Registration{}, apperr.State(op, "la solicitud ya fue resuelta (%s)", current.Status)
	}
	return s.apply(ctx, current, target, notes, reviewer)
}

// RetryRejectedApplication borra la solicitud rechazada del usuario para que
// pueda volver a enviar. No crea nada.
func (s *Service) RetryRejectedApplication(ctx context.Context, userID string) error {
	const op = "registrations.retry"

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return invalid(op, "user id required")
	}

	reg, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.State(op, "el usuario no tiene una solicitud rechazada")
		}
		return fmt.Errorf("get registration of user %s: %w", userID, err)
	}
	if reg.Status != StatusRejected {
		return apperr.State(op, "solo se puede reintentar una solicitud rechazada (estado actual: %s)", reg.Status)
	}

	if err := s.repo.Delete(ctx, reg.ID); err != nil {
		return fmt.Errorf("delete rejected registration %s: %w", reg.ID, err)
	}
	return nil
}

func (s *Service) GetRegistration(ctx context.Context, id string) (Registration, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Registration{}, invalid("registrations.get", "registration id required")
	}
	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Registration{}, fmt.Errorf("get registration %s: %w", id, err)
	}
	return reg, nil
}

func (s *Service) GetRegistrationByUser(ctx context.Context, userID string) (Registration, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Registration{}, invalid("registrations.get_by_user", "user id required")
	}
	reg, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return Registration{}, fmt.Errorf("get registration of user %s: %w", userID, err)
	}
	return reg, nil
}

func (s *Service) GetAllRegistrations(ctx context.Context) ([]Registration, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return newestFirst(items), nil
}

func (s *Service) ListByStatus(ctx context.Context, status Status) ([]Registration, error) {
	if !status.Valid() {
		return nil, invalid("registrations.list_by_status", "estado inválido %q", status)
	}
	items, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list registrations by status %s: %w", status, err)
	}
	return newestFirst(items), nil
}

func (s *Service) GetRegistrationStats(ctx context.Context) (Stats, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("registration stats: %w", err)
	}
	return ComputeStats(items, s.now()), nil
}

// ComputeStats recorre una sola vez. Reciente = enviado estrictamente después
// de now-7d.
func ComputeStats(items []Registration, now time.Time) Stats {
	cutoff := now.Add(-RecentWindow)
	st := Stats{Total: len(items)}
	for _, r := range items {
		switch r.Status {
		case StatusPending:
			st.Pending++
		case StatusApproved:
			st.Approved++
		case StatusRejected:
			st.Rejected++
		case StatusUnderReview:
			st.UnderReview++
		}
		if r.SubmittedAt.After(cutoff) {
			st.RecentSubmissions++
		}
	}
	return st
}

func newestFirst(items []Registration) []Registration {
	out := append([]Registration(nil), items...)
	if out == nil {
		out = []Registration{}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out
}

func invalid(op, format string, args ...any) error {
	metrics.ValidationFailuresTotal.WithLabelValues("registrations").Inc()
	return apperr.Validation(op, format, args...)
}
