package tickets

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

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

type CreateInput struct {
	UserID   string
	Subject  string
	Message  string
	Category string
}

func (s *Service) CreateTicket(ctx context.Context, in CreateInput) (Ticket, error) {
	const op = "tickets.create"

	userID := strings.TrimSpace(in.UserID)
	subject := strings.TrimSpace(in.Subject)
	message := strings.TrimSpace(in.Message)

	switch {
	case userID == "":
		return Ticket{}, invalid(op, "user id required")
	case subject == "" || message == "":
		return Ticket{}, invalid(op, "asunto y mensaje son obligatorios")
	case utf8.RuneCountInString(subject) < MinSubjectLength:
		return Ticket{}, invalid(op, "el asunto debe tener al menos %d caracteres", MinSubjectLength)
	case utf8.RuneCountInString(message) < MinMessageLength:
		return Ticket{}, invalid(op, "el mensaje debe tener al menos %d caracteres", MinMessageLength)
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = DefaultCategory
	} else if key := CategoryKey(category); key != "" {
		category = key
	}

	t, err := s.repo.Create(ctx, NewTicket{
		UserID:   userID,
		Subject:  subject,
		Message:  message,
		Category: category,
	})
	if err != nil {
		return Ticket{}, fmt.Errorf("create ticket: %w", err)
	}
	return withLabel(t), nil
}

type RespondInput struct {
	Content   string `json:"content"`
	AgentName string `json:"agentName"`
	Status    Status `json:"status"`
}

// RespondResult es lo que ve el agente después de responder.
type RespondResult struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	TicketID  string    `json:"ticketId"`
	Status    Status    `json:"status"`
	AgentName string    `json:"agentName"`
	Timestamp time.Time `json:"timestamp"`
}

// ValidateResponse aplica las reglas de respuesta sin tocar la red.
func ValidateResponse(ticketID string, in RespondInput) error {
	const op = "tickets.respond"

	content := strings.TrimSpace(in.Content)
	agent := strings.TrimSpace(in.AgentName)

	switch {
	case strings.TrimSpace(ticketID) == "":
		return invalid(op, "ticket id required")
	case content == "":
		return invalid(op, "la respuesta es obligatoria")
	case utf8.RuneCountInString(content) < MinResponseLength:
		return invalid(op, "la respuesta debe tener al menos %d caracteres", MinResponseLength)
	case agent == "":
		return invalid(op, "el nombre del agente es obligatorio")
	case utf8.RuneCountInString(agent) < MinAgentNameLength:
		return invalid(op, "el nombre del agente debe tener al menos %d caracteres", MinAgentNameLength)
	case in.Status != StatusResolved && in.Status != StatusCancelled:
		return invalid(op, "estado inválido %q: debe ser %q o %q", in.Status, StatusResolved, StatusCancelled)
	case in.Status == StatusCancelled && utf8.RuneCountInString(content) < MinCancellationResponseLength:
		return invalid(op, "para cancelar un ticket la justificación debe tener al menos %d caracteres", MinCancellationResponseLength)
	}
	return nil
}

func (s *Service) RespondToTicket(ctx context.Context, ticketID string, in RespondInput) (RespondResult, error) {
	if err := ValidateResponse(ticketID, in); err != nil {
		return RespondResult{}, err
	}
	ticketID = strings.TrimSpace(ticketID)

	ts := s.now().UTC()
	t, err := s.repo.Respond(ctx, ticketID, ResponsePayload{
		Content:   strings.TrimSpace(in.Content),
		AgentName: strings.TrimSpace(in.AgentName),
		Status:    in.Status,
		Timestamp: ts,
	})
	if err != nil {
		return RespondResult{}, fmt.Errorf("respond ticket %s: %w", ticketID, err)
	}

	status := t.Status
	if !status.Valid() {
		status = in.Status
	}
	return RespondResult{
		Success:   true,
		Message:   "Respuesta enviada correctamente",
		TicketID:  ticketID,
		Status:    status,
		AgentName: strings.TrimSpace(in.AgentName),
		Timestamp: ts,
	}, nil
}

type BulkItem struct {
	TicketID     string       `json:"ticketId"`
	ResponseData RespondInput `json:"responseData"`
}

type BulkItemResult struct {
	TicketID string         `json:"ticketId"`
	Success  bool           `json:"success"`
	Result   *RespondResult `json:"result,omitempty"`
	Error    string         `json:"error,omitempty"`
	Kind     string         `json:"kind,omitempty"`
}

type BulkResult struct {
	Total      int              `json:"total"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Results    []BulkItemResult `json:"results"`
}

// ProcessBulkResponses responde cada ítem de forma independiente: un fallo no
// corta el lote.
func (s *Service) ProcessBulkResponses(ctx context.Context, items []BulkItem) BulkResult {
	out := BulkResult{Total: len(items), Results: make([]BulkItemResult, 0, len(items))}

	for _, it := range items {
		res, err := s.RespondToTicket(ctx, it.TicketID, it.ResponseData)
		if err != nil {
			out.Failed++
			out.Results = append(out.Results, BulkItemResult{
				TicketID: it.TicketID,
				Error:    err.Error(),
				Kind:     string(apperr.KindOf(err)),
			})
			continue
		}
		out.Successful++
		r := res
		out.Results = append(out.Results, BulkItemResult{TicketID: it.TicketID, Success: true, Result: &r})
	}
	return out
}

func (s *Service) GetTicket(ctx context.Context, id string) (Ticket, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Ticket{}, invalid("tickets.get", "ticket id required")
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Ticket{}, fmt.Errorf("get ticket %s: %w", id, err)
	}
	return withLabel(t), nil
}

// GetAllTickets: vista de administración, más recientes primero.
func (s *Service) GetAllTickets(ctx context.Context) ([]Ticket, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return labeledByNewest(items), nil
}

func (s *Service) GetTicketsByUser(ctx context.Context, userID string) ([]Ticket, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, invalid("tickets.list_by_user", "user id required")
	}
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tickets of user %s: %w", userID, err)
	}
	return labeledByNewest(items), nil
}

func (s *Service) UpdateTicketStatus(ctx context.Context, id string, status Status, reason string) (Ticket, error) {
	const op = "tickets.update_status"

	id = strings.TrimSpace(id)
	if id == "" {
		return Ticket{}, invalid(op, "ticket id required")
	}
	if !status.Valid() {
		return Ticket{}, invalid(op, "estado inválido %q", status)
	}
	reason = strings.TrimSpace(reason)
	if status == StatusCancelled && utf8.RuneCountInString(reason) < MinCancellationResponseLength {
		return Ticket{}, invalid(op, "para cancelar un ticket la justificación debe tener al menos %d caracteres", MinCancellationResponseLength)
	}

	// Solo En Espera puede cambiar; un ticket cerrado no se reabre.
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Ticket{}, fmt.Errorf("get ticket %s: %w", id, err)
	}
	if current.Status.Terminal() {
		return Ticket{}, apperr.State(op, "ticket %s ya está %s", id, current.Status)
	}
	if status == current.Status {
		return withLabel(current), nil
	}

	t, err := s.repo.UpdateStatus(ctx, id, status, reason)
	if err != nil {
		return Ticket{}, fmt.Errorf("update status of ticket %s: %w", id, err)
	}
	return withLabel(t), nil
}

func (s *Service) GetStatistics(ctx context.Context) (Statistics, error) {
	st, err := s.repo.Statistics(ctx)
	if err != nil {
		return Statistics{}, fmt.Errorf("ticket statistics: %w", err)
	}
	return st, nil
}

// GetCategories devuelve las categorías del backend con etiquetas normalizadas.
// Si el backend no informa ninguna se usan las canónicas.
func (s *Service) GetCategories(ctx context.Context) ([]CategoryInfo, error) {
	items, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("ticket categories: %w", err)
	}
	if len(items) == 0 {
		return Categories(), nil
	}
	out := make([]CategoryInfo, 0, len(items))
	for _, c := range items {
		label := GetCategoryLabel(c.Value)
		if label == c.Value && c.Label != "" {
			label = c.Label
		}
		out = append(out, CategoryInfo{Value: c.Value, Label: label})
	}
	return out, nil
}

func (s *Service) GetFAQs(ctx context.Context) ([]FAQ, error) {
	items, err := s.repo.FAQs(ctx)
	if err != nil {
		return nil, fmt.Errorf("ticket faqs: %w", err)
	}
	for i := range items {
		items[i].Category = GetCategoryLabel(items[i].Category)
	}
	return items, nil
}

func withLabel(t Ticket) Ticket {
	t.Category = GetCategoryLabel(t.Category)
	return t
}

func labeledByNewest(items []Ticket) []Ticket {
	out := make([]Ticket, 0, len(items))
	for _, t := range items {
		out = append(out, withLabel(t))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func invalid(op, format string, args ...any) error {
	metrics.ValidationFailuresTotal.WithLabelValues("tickets").Inc()
	return apperr.Validation(op, format, args...)
}
