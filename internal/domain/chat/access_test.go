package chat

import (
	"context"
	"testing"

	"pet-walks/internal/domain/walkstatus"
	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tripLookup struct {
	fakeLookup
	parts walkstatus.Participants
}

func (f *tripLookup) WalkParticipants(ctx context.Context, tripID string) (walkstatus.Participants, error) {
	if f.err != nil {
		return walkstatus.Participants{}, f.err
	}
	return f.parts, nil
}

func TestViewerOf_SenderComesFromTripSide(t *testing.T) {
	lookup := &tripLookup{parts: walkstatus.Participants{Status: "Activo", OwnerID: "owner-1", WalkerID: "walker-1"}}
	ctx := context.Background()

	// el rol declarado no decide el lado
	_, v, err := viewerOf(ctx, lookup, "trip-1", auth.Claims{UserID: "walker-1", Role: auth.RoleOwner})
	require.NoError(t, err)
	assert.Equal(t, SenderWalker, v.Type)
	assert.True(t, v.CanWrite())

	parts, v, err := viewerOf(ctx, lookup, "trip-1", auth.Claims{UserID: "owner-1", Role: auth.RoleWalker})
	require.NoError(t, err)
	assert.Equal(t, SenderOwner, v.Type)
	assert.Equal(t, "Activo", parts.Status)
}

func TestViewerOf_StrangersAndAdmins(t *testing.T) {
	lookup := &tripLookup{parts: walkstatus.Participants{Status: "Activo", OwnerID: "owner-1", WalkerID: "walker-1"}}
	ctx := context.Background()

	_, _, err := viewerOf(ctx, lookup, "trip-1", auth.Claims{UserID: "stranger-9", Role: auth.RoleOwner})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, v, err := viewerOf(ctx, lookup, "trip-1", auth.Claims{UserID: "admin-1", Role: auth.RoleAdmin})
	require.NoError(t, err)
	assert.False(t, v.CanWrite(), "un admin lee pero no escribe")

	lookup.err = apperr.NotFound("test", "walk not found")
	_, _, err = viewerOf(ctx, lookup, "trip-x", auth.Claims{UserID: "owner-1"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSession_ReadOnlyViewerCannotSend(t *testing.T) {
	repo := newTestRepo()
	lookup := &fakeLookup{status: "Activo"}

	sess, err := newTestService(repo).OpenSession(context.Background(), "trip-1",
		Participant{ID: "admin-1"}, lookup, SessionOptions{})
	require.NoError(t, err)
	t.Cleanup(sess.Close)

	_, err = sess.Send(context.Background(), "hola")
	assert.ErrorIs(t, err, apperr.ErrState)
	assert.Empty(t, repo.sent)
}
