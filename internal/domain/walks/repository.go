package walks

import (
	"context"

	"pet-walks/internal/domain/walkstatus"
)

type Repository interface {
	Get(ctx context.Context, id string) (Walk, error)
	ListByWalker(ctx context.Context, walkerID string) ([]Walk, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Walk, error)
	Create(ctx context.Context, w NewWalk) (Walk, error)
	UpdateStatus(ctx context.Context, id string, status walkstatus.Status) (Walk, error)

	// Pay registra el pago; el backend pasa el paseo a Agendado.
	Pay(ctx context.Context, id string, p Payment) (Walk, error)
}
