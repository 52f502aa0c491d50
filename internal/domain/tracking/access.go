package tracking

import (
	"context"

	"pet-walks/internal/domain/walkstatus"
	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/ports/auth"
)

// TripLookup suma a StatusLookup las partes del paseo.
type TripLookup interface {
	StatusLookup
	WalkParticipants(ctx context.Context, tripID string) (walkstatus.Participants, error)
}

// sideOf devuelve el lado del usuario en el paseo ("" para un admin ajeno).
// Un tercero recibe NotFound: el paseo no existe para él.
func sideOf(ctx context.Context, lookup TripLookup, tripID string, c auth.Claims) (walkstatus.Participants, string, error) {
	parts, err := lookup.WalkParticipants(ctx, tripID)
	if err != nil {
		return walkstatus.Participants{}, "", err
	}
	side := parts.Side(c.UserID)
	if side == "" && c.Role != auth.RoleAdmin {
		return walkstatus.Participants{}, "", apperr.NotFound("tracking.access", "trip %s not found", tripID)
	}
	return parts, side, nil
}
