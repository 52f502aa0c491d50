package devbackend

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"pet-walks/internal/adapters/backend"
	"pet-walks/internal/domain/tickets"
	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/platform/httpresp"

	"github.com/go-chi/chi/v5"
)

var faqs = []tickets.FAQ{
	{ID: "faq-1", Category: "payment", Question: "¿Cuándo se cobra el paseo?", Answer: "El pago se confirma después de que el paseador acepta la solicitud."},
	{ID: "faq-2", Category: "walk", Question: "¿Puedo cancelar un paseo?", Answer: "Sí, mientras no haya comenzado."},
	{ID: "faq-3", Category: "walker", Question: "¿Cómo me registro como paseador?", Answer: "Completá la solicitud con tus datos y las fotos de tu DNI."},
	{ID: "faq-4", Category: "account", Question: "¿Cómo cambio mi contraseña?", Answer: "Desde tu perfil, en la sección Seguridad."},
}

func (s *Server) listFAQs(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, faqs)
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, tickets.Categories())
}

func (s *Server) listTickets(w http.ResponseWriter, r *http.Request) {
	items, err := s.stores.Tickets.List(r.Context())
	if err != nil {
		s.fail(w, "devbackend.tickets.list", err)
		return
	}
	writeData(w, http.StatusOK, items)
}

func (s *Server) myTickets(w http.ResponseWriter, r *http.Request) {
	const op = "devbackend.tickets.mine"
	uid := userID(r)
	if uid == "" {
		s.fail(w, op, apperr.Validation(op, "X-User-ID header required"))
		return
	}

	items, err := s.stores.Tickets.List(r.Context())
	if err != nil {
		s.fail(w, op, err)
		return
	}
	out := make([]tickets.Ticket, 0)
	for _, t := range items {
		if t.UserID == uid {
			out = append(out, t)
		}
	}
	writeData(w, http.StatusOK, out)
}

func (s *Server) createTicket(w http.ResponseWriter, r *http.Request) {
	const op = "devbackend.tickets.create"

	var in tickets.NewTicket
	if err := httpresp.DecodeJSON(r, op, &in); err != nil {
		s.fail(w, op, err)
		return
	}
	if in.UserID == "" {
		in.UserID = userID(r)
	}
	if in.UserID == "" || strings.TrimSpace(in.Subject) == "" || strings.TrimSpace(in.Message) == "" {
		s.fail(w, op, apperr.Validation(op, "userId, subject and message required"))
		return
	}

	now := s.now().UTC()
	t := tickets.Ticket{
		ID:        s.newID(),
		UserID:    in.UserID,
		Subject:   in.Subject,
		Message:   in.Message,
		Category:  categoryOrDefault(in.Category),
		Status:    tickets.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.stores.Tickets.Create(r.Context(), t); err != nil {
		s.fail(w, op, err)
		return
	}
	writeData(w, http.StatusCreated, t)
}

func (s *Server) getTicket(w http.ResponseWriter, r *http.Request) {
	t, err := s.stores.Tickets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "devbackend.tickets.get", err)
		return
	}
	writeData(w, http.StatusOK, t)
}

// respondTicket admite una sola respuesta por ticket; la segunda es un 409.
func (s *Server) respondTicket(w http.ResponseWriter, r *http.Request) {
	const op = "devbackend.tickets.respond"

	var in tickets.ResponsePayload
	if err := httpresp.DecodeJSON(r, op, &in); err != nil {
		s.fail(w, op, err)
		return
	}
	if in.Status != tickets.StatusResolved && in.Status != tickets.StatusCancelled {
		s.fail(w, op, apperr.Validation(op, "status must be %q or %q", tickets.StatusResolved, tickets.StatusCancelled))
		return
	}

	t, err := s.stores.Tickets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, op, err)
		return
	}
	if t.Response != nil || t.Status.Terminal() {
		s.fail(w, op, apperr.State(op, "ticket %s already answered", t.ID))
		return
	}

	date := in.Timestamp
	if date.IsZero() {
		date = s.now().UTC()
	}
	t.Response = &tickets.Response{AgentName: in.AgentName, Content: in.Content, Date: date}
	t.Status = in.Status
	t.UpdatedAt = s.now().UTC()
	if in.Status == tickets.StatusCancelled {
		t.CancellationReason = in.Content
	}
	if err := s.stores.Tickets.Update(r.Context(), t); err != nil {
		s.fail(w, op, err)
		return
	}
	writeData(w, http.StatusOK, t)
}

func (s *Server) updateTicketStatus(w http.ResponseWriter, r *http.Request) {
	const op = "devbackend.tickets.status"

	var in backend.StatusUpdate
	if err := httpresp.DecodeJSON(r, op, &in); err != nil {
		s.fail(w, op, err)
		return
	}
	status := tickets.Status(in.Status)
	if !status.Valid() {
		s.fail(w, op, apperr.Validation(op, "invalid status %q", in.Status))
		return
	}

	t, err := s.stores.Tickets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, op, err)
		return
	}
	if t.Status.Terminal() {
		s.fail(w, op, apperr.State(op, "ticket %s is %s", t.ID, t.Status))
		return
	}
	reason := strings.TrimSpace(in.Reason)
	if status == tickets.StatusCancelled && utf8.RuneCountInString(reason) < tickets.MinCancellationResponseLength {
		s.fail(w, op, apperr.Validation(op, "cancellation reason must have at least %d characters", tickets.MinCancellationResponseLength))
		return
	}
	t.Status = status
	t.UpdatedAt = s.now().UTC()
	if status == tickets.StatusCancelled {
		t.CancellationReason = reason
	}
	if err := s.stores.Tickets.Update(r.Context(), t); err != nil {
		s.fail(w, op, err)
		return
	}
	writeData(w, http.StatusOK, t)
}

func (s *Server) ticketStatistics(w http.ResponseWriter, r *http.Request) {
	items, err := s.stores.Tickets.List(r.Context())
	if err != nil {
		s.fail(w, "devbackend.tickets.statistics", err)
		return
	}

	st := tickets.Statistics{Total: len(items), ByCategory: map[string]int{}}
	for _, t := range items {
		switch t.Status {
		case tickets.StatusPending:
			st.Pending++
		case tickets.StatusResolved:
			st.Resolved++
		case tickets.StatusCancelled:
			st.Cancelled++
		}
		st.ByCategory[categoryOrDefault(t.Category)]++
	}
	writeData(w, http.StatusOK, st)
}

func categoryOrDefault(value string) string {
	if key := tickets.CategoryKey(value); key != "" {
		return key
	}
	return tickets.DefaultCategory
}
