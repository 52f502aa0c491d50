package tickets

import "context"

type Repository interface {
	Create(ctx context.Context, t NewTicket) (Ticket, error)
	GetByID(ctx context.Context, id string) (Ticket, error)
	List(ctx context.Context) ([]Ticket, error)
	ListByUser(ctx context.Context, userID string) ([]Ticket, error)
	Respond(ctx context.Context, id string, p ResponsePayload) (Ticket, error)
	UpdateStatus(ctx context.Context, id string, status Status, reason string) (Ticket, error)
	Statistics(ctx context.Context) (Statistics, error)
	Categories(ctx context.Context) ([]CategoryInfo, error)
	FAQs(ctx context.Context) ([]FAQ, error)
}
