package registrations

import "context"

// Repository es el acceso al backend de solicitudes de paseador.
// GetByID y GetByUser devuelven apperr NotFound si no hay registro.
type Repository interface {
	Create(ctx context.Context, r Registration) (Registration, error)
	List(ctx context.Context) ([]Registration, error)
	GetByID(ctx context.Context, id string) (Registration, error)
	GetByUser(ctx context.Context, userID string) (Registration, error)
	ListByStatus(ctx context.Context, status Status) ([]Registration, error)
	Update(ctx context.Context, r Registration) (Registration, error)
	Delete(ctx context.Context, id string) error

	// PromoteToWalker cambia el rol del usuario al aprobar la solicitud. Repetirla no cambia nada.
	PromoteToWalker(ctx context.Context, userID string) error
}
