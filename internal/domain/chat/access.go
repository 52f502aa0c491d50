package chat

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

// viewerOf ubica al usuario dentro del paseo. El remitente sale del lado que
// ocupa en el paseo, no del rol. Un tercero recibe NotFound; un admin puede
// leer pero queda sin Type y no escribe.
func viewerOf(ctx context.Context, lookup TripLookup, tripID string, c auth.Claims) (walkstatus.Participants, Participant, error) {
	parts, err := lookup.WalkParticipants(ctx, tripID)
	if err != nil {
		return walkstatus.Participants{}, Participant{}, err
	}

	v := Participant{ID: c.UserID, Name: c.Name}
	switch parts.Side(c.UserID) {
	case walkstatus.SideOwner:
		v.Type = SenderOwner
	case walkstatus.SideWalker:
		v.Type = SenderWalker
	default:
		if c.Role != auth.RoleAdmin {
			return walkstatus.Participants{}, Participant{}, apperr.NotFound("chat.access", "trip %s not found", tripID)
		}
	}
	return parts, v, nil
}

// CanWrite: solo dueño y paseador del paseo escriben.
func (p Participant) CanWrite() bool { return p.Type.Valid() }
