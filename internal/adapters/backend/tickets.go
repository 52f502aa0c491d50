package backend

import (
	"context"
	"net/http"

	"pet-walks/internal/domain/tickets"
)

var ticketFields = []string{"id", "status"}

// TicketsRepo implementa tickets.Repository.
type TicketsRepo struct {
	c *Client
}

func NewTicketsRepo(c *Client) *TicketsRepo { return &TicketsRepo{c: c} }

func (r *TicketsRepo) Create(ctx context.Context, t tickets.NewTicket) (tickets.Ticket, error) {
	var out tickets.Ticket
	err := r.c.do(ctx, call{
		Method:   http.MethodPost,
		Path:     "/tickets",
		Endpoint: "/tickets",
		Body:     t,
		Required: ticketFields,
	}, &out)
	return out, err
}

func (r *TicketsRepo) GetByID(ctx context.Context, id string) (tickets.Ticket, error) {
	var out tickets.Ticket
	err := r.c.do(ctx, call{
		Method:   http.MethodGet,
		Path:     "/tickets/" + seg(id),
		Endpoint: "/tickets/{id}",
		Required: ticketFields,
	}, &out)
	return out, err
}

func (r *TicketsRepo) List(ctx context.Context) ([]tickets.Ticket, error) {
	out := []tickets.Ticket{}
	err := r.c.do(ctx, call{
		Method:   http.MethodGet,
		Path:     "/tickets",
		Endpoint: "/tickets",
		Required: ticketFields,
		List:     true,
	}, &out)
	return out, err
}

// ListByUser usa /tickets/my-tickets: el backend resuelve el usuario por el
// header de identidad.
func (r *TicketsRepo) ListByUser(ctx context.Context, userID string) ([]tickets.Ticket, error) {
	out := []tickets.Ticket{}
	err := r.c.do(ctx, call{
		Method:   http.MethodGet,
		Path:     "/tickets/my-tickets",
		Endpoint: "/tickets/my-tickets",
		Headers:  map[string]string{"X-User-ID": userID},
		Required: ticketFields,
		List:     true,
	}, &out)
	return out, err
}

func (r *TicketsRepo) Respond(ctx context.Context, id string, p tickets.ResponsePayload) (tickets.Ticket, error) {
	var out tickets.Ticket
	err := r.c.do(ctx, call{
		Method:   http.MethodPost,
		Path:     "/tickets/" + seg(id) + "/respond",
		Endpoint: "/tickets/{id}/respond",
		Body:     p,
		Required: ticketFields,
	}, &out)
	return out, err
}

func (r *TicketsRepo) UpdateStatus(ctx context.Context, id string, status tickets.Status, reason string) (tickets.Ticket, error) {
	var out tickets.Ticket
	err := r.c.do(ctx, call{
		Method:   http.MethodPatch,
		Path:     "/tickets/" + seg(id) + "/status",
		Endpoint: "/tickets/{id}/status",
		Body:     StatusUpdate{Status: string(status), Reason: reason},
		Required: ticketFields,
	}, &out)
	return out, err
}

func (r *TicketsRepo) Statistics(ctx context.Context) (tickets.Statistics, error) {
	var out tickets.Statistics
	err := r.c.do(ctx, call{
		Method:   http.MethodGet,
		Path:     "/tickets/admin/statistics",
		Endpoint: "/tickets/admin/statistics",
		Required: []string{"total"},
	}, &out)
	return out, err
}

func (r *TicketsRepo) Categories(ctx context.Context) ([]tickets.CategoryInfo, error) {
	out := []tickets.CategoryInfo{}
	err := r.c.do(ctx, call{
		Method:   http.MethodGet,
		Path:     "/tickets/categories",
		Endpoint: "/tickets/categories",
		Required: []string{"value"},
		List:     true,
	}, &out)
	return out, err
}

func (r *TicketsRepo) FAQs(ctx context.Context) ([]tickets.FAQ, error) {
	out := []tickets.FAQ{}
	err := r.c.do(ctx, call{
		Method:   http.MethodGet,
		Path:     "/tickets/faqs",
		Endpoint: "/tickets/faqs",
		Required: []string{"question", "answer"},
		List:     true,
	}, &out)
	return out, err
}
