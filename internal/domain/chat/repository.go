package chat

import "context"

// Repository es el acceso al backend de chat.
//
// GetThread devuelve apperr NotFound si el paseo todavía no tiene chat.
type Repository interface {
	GetThread(ctx context.Context, tripID string) (Thread, error)
	Send(ctx context.Context, m NewMessage) (Message, error)
	MarkAsRead(ctx context.Context, tripID, userID string) (int, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
}
