package tracking

import "context"

type Repository interface {
	// Route devuelve las muestras del paseo; lista vacía si no hay ninguna.
	Route(ctx context.Context, tripID string) ([]Record, error)
	SaveLocation(ctx context.Context, tripID string, loc NewLocation) (Record, error)
	Availability(ctx context.Context, tripID string) (Availability, error)
}
