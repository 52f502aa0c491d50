package devbackend

import (
	"context"

	"pet-walks/internal/domain/chat"
	"pet-walks/internal/domain/registrations"
	"pet-walks/internal/domain/tickets"
	"pet-walks/internal/domain/tracking"
	"pet-walks/internal/domain/walks"
)

// Stores persisten las entidades del backend de desarrollo. Los Get
// devuelven un error que cumple errors.Is(err, apperr.ErrNotFound) si no hay
// registro.

type TicketStore interface {
	Create(ctx context.Context, t tickets.Ticket) error
	Get(ctx context.Context, id string) (tickets.Ticket, error)
	List(ctx context.Context) ([]tickets.Ticket, error)
	Update(ctx context.Context, t tickets.Ticket) error
}

type RegistrationStore interface {
	Create(ctx context.Context, r registrations.Registration) error
	Get(ctx context.Context, id string) (registrations.Registration, error)
	List(ctx context.Context) ([]registrations.Registration, error)
	Update(ctx context.Context, r registrations.Registration) error
	Delete(ctx context.Context, id string) error
}

type WalkStore interface {
	Create(ctx context.Context, w walks.Walk) error
	Get(ctx context.Context, id string) (walks.Walk, error)
	List(ctx context.Context) ([]walks.Walk, error)
	Update(ctx context.Context, w walks.Walk) error
}

type ChatStore interface {
	Append(ctx context.Context, m chat.Message) error
	Messages(ctx context.Context, tripID string) ([]chat.Message, error)

	// MarkRead marca como leídos los mensajes del paseo que no envió readerID.
	MarkRead(ctx context.Context, tripID, readerID string) (int, error)
}

type TrackStore interface {
	Append(ctx context.Context, tripID string, r tracking.Record) error
	Route(ctx context.Context, tripID string) ([]tracking.Record, error)
}

type UserStore interface {
	SetRole(ctx context.Context, userID, role string) error
	Role(ctx context.Context, userID string) (string, error)
}

type Stores struct {
	Tickets       TicketStore
	Registrations RegistrationStore
	Walks         WalkStore
	Chat          ChatStore
	Tracks        TrackStore
	Users         UserStore
}
