package devbackend_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"pet-walks/internal/adapters/backend"
	"pet-walks/internal/devbackend"
	"pet-walks/internal/domain/chat"
	"pet-walks/internal/domain/registrations"
	"pet-walks/internal/domain/tickets"
	"pet-walks/internal/domain/tracking"
	"pet-walks/internal/domain/walks"
	"pet-walks/internal/domain/walkstatus"
	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/platform/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func newBackend(t *testing.T) *backend.Client {
	t.Helper()
	srv := devbackend.New(devbackend.NewMemoryStores(), nil,
		devbackend.WithClock(func() time.Time { return fixedNow }))
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)

	hc, err := httpclient.NewWithBaseURL(ts.URL, 5*time.Second)
	require.NoError(t, err)
	return backend.NewClient(hc)
}

func createWalk(t *testing.T, repo *backend.WalksRepo, walkerID string) walks.Walk {
	t.Helper()
	w, err := repo.Create(context.Background(), walks.NewWalk{
		OwnerID:      "owner-1",
		WalkerID:     walkerID,
		ScheduledAt:  fixedNow.Add(24 * time.Hour),
		StartAddress: "Av. Corrientes 1234",
		TotalPrice:   3500,
		PetIDs:       []string{"pet-1"},
	})
	require.NoError(t, err)
	return w
}

func TestTickets_SingleResponse(t *testing.T) {
	ctx := context.Background()
	repo := backend.NewTicketsRepo(newBackend(t))

	created, err := repo.Create(ctx, tickets.NewTicket{
		UserID:   "u-1",
		Subject:  "No puedo pagar",
		Message:  "La tarjeta es rechazada siempre",
		Category: "pagos",
	})
	require.NoError(t, err)
	assert.Equal(t, tickets.StatusPending, created.Status)
	assert.Equal(t, "payment", created.Category)

	answered, err := repo.Respond(ctx, created.ID, tickets.ResponsePayload{
		Content:   "Probá con otro medio de pago",
		AgentName: "Ana",
		Status:    tickets.StatusResolved,
	})
	require.NoError(t, err)
	assert.Equal(t, tickets.StatusResolved, answered.Status)
	require.NotNil(t, answered.Response)
	assert.Equal(t, "Ana", answered.Response.AgentName)

	_, err = repo.Respond(ctx, created.ID, tickets.ResponsePayload{
		Content:   "Segunda respuesta",
		AgentName: "Beto",
		Status:    tickets.StatusResolved,
	})
	assert.Equal(t, apperr.KindState, apperr.KindOf(err))

	mine, err := repo.ListByUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	stats, err := repo.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Resolved)
	assert.Equal(t, 1, stats.ByCategory["payment"])
}

func TestTickets_UnknownIsNotFound(t *testing.T) {
	repo := backend.NewTicketsRepo(newBackend(t))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestTickets_StatusOnlyMovesFromPending(t *testing.T) {
	ctx := context.Background()
	repo := backend.NewTicketsRepo(newBackend(t))

	created, err := repo.Create(ctx, tickets.NewTicket{
		UserID:  "u-1",
		Subject: "Mi perro no llegó",
		Message: "El paseador nunca pasó a buscarlo",
	})
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, created.ID, tickets.StatusCancelled, "corto")
	require.Error(t, err)
	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, tickets.StatusPending, got.Status)

	_, err = repo.Respond(ctx, created.ID, tickets.ResponsePayload{
		Content:   "Ya hablamos con el paseador",
		AgentName: "Ana",
		Status:    tickets.StatusResolved,
	})
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, created.ID, tickets.StatusPending, "")
	assert.Equal(t, apperr.KindState, apperr.KindOf(err))
	_, err = repo.UpdateStatus(ctx, created.ID, tickets.StatusCancelled, "el usuario pidió cancelar el reclamo")
	assert.Equal(t, apperr.KindState, apperr.KindOf(err))

	got, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, tickets.StatusResolved, got.Status)
	assert.Empty(t, got.CancellationReason)
}

func TestWalks_AuthoritativeAcceptCap(t *testing.T) {
	ctx := context.Background()
	repo := backend.NewWalksRepo(newBackend(t))

	for range walks.MaxAcceptedWalks {
		w := createWalk(t, repo, "walker-1")
		_, err := repo.UpdateStatus(ctx, w.ID, walkstatus.EsperandoPago)
		require.NoError(t, err)
	}

	extra := createWalk(t, repo, "walker-1")
	_, err := repo.UpdateStatus(ctx, extra.ID, walkstatus.EsperandoPago)
	assert.Equal(t, apperr.KindState, apperr.KindOf(err))

	// otro paseador no se ve afectado
	other := createWalk(t, repo, "walker-2")
	_, err = repo.UpdateStatus(ctx, other.ID, walkstatus.EsperandoPago)
	assert.NoError(t, err)
}

func TestWalks_LifecycleAndPayment(t *testing.T) {
	ctx := context.Background()
	repo := backend.NewWalksRepo(newBackend(t))
	w := createWalk(t, repo, "walker-1")
	assert.Equal(t, walkstatus.Solicitado, w.Status)

	_, err := repo.Pay(ctx, w.ID, walks.Payment{Method: "card", Amount: 3500})
	assert.Equal(t, apperr.KindState, apperr.KindOf(err), "payment before accept")

	_, err = repo.UpdateStatus(ctx, w.ID, walkstatus.Activo)
	assert.Equal(t, apperr.KindState, apperr.KindOf(err), "illegal transition")

	_, err = repo.UpdateStatus(ctx, w.ID, walkstatus.EsperandoPago)
	require.NoError(t, err)

	_, err = repo.Pay(ctx, w.ID, walks.Payment{Method: "card", Amount: 100})
	assert.Error(t, err, "amount below total")

	paid, err := repo.Pay(ctx, w.ID, walks.Payment{Method: "card", Amount: 3500})
	require.NoError(t, err)
	assert.Equal(t, walkstatus.Agendado, paid.Status)

	active, err := repo.UpdateStatus(ctx, w.ID, walkstatus.Activo)
	require.NoError(t, err)
	assert.Equal(t, walkstatus.Activo, active.Status)

	mine, err := repo.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, walkstatus.Activo, mine[0].Status)
}

func activeWalk(t *testing.T, c *backend.Client) walks.Walk {
	t.Helper()
	ctx := context.Background()
	repo := backend.NewWalksRepo(c)
	w := createWalk(t, repo, "walker-1")
	_, err := repo.UpdateStatus(ctx, w.ID, walkstatus.EsperandoPago)
	require.NoError(t, err)
	_, err = repo.Pay(ctx, w.ID, walks.Payment{Method: "card", Amount: w.TotalPrice})
	require.NoError(t, err)
	w, err = repo.UpdateStatus(ctx, w.ID, walkstatus.Activo)
	require.NoError(t, err)
	return w
}

func TestChat_OnlyActiveWalksAcceptMessages(t *testing.T) {
	ctx := context.Background()
	c := newBackend(t)
	repo := backend.NewChatRepo(c)

	pending := createWalk(t, backend.NewWalksRepo(c), "walker-1")
	_, err := repo.Send(ctx, chat.NewMessage{
		TripID: pending.ID, SenderID: "owner-1", SenderType: chat.SenderOwner, Content: "hola",
	})
	assert.Equal(t, apperr.KindState, apperr.KindOf(err))

	w := activeWalk(t, c)
	sent, err := repo.Send(ctx, chat.NewMessage{
		TripID: w.ID, SenderID: "owner-1", SenderType: chat.SenderOwner, Content: "  ¿cómo va?  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "¿cómo va?", sent.Content)

	thread, err := repo.GetThread(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "chat-"+w.ID, thread.ChatID)
	require.Len(t, thread.Messages, 1)

	unread, err := repo.UnreadCount(ctx, "walker-1")
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	n, err := repo.MarkAsRead(ctx, w.ID, "walker-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	unread, err = repo.UnreadCount(ctx, "walker-1")
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestChat_SenderMustBeTripParticipant(t *testing.T) {
	ctx := context.Background()
	c := newBackend(t)
	repo := backend.NewChatRepo(c)
	w := activeWalk(t, c)

	_, err := repo.Send(ctx, chat.NewMessage{
		TripID: w.ID, SenderID: "stranger-9", SenderType: chat.SenderOwner, Content: "hola",
	})
	require.Error(t, err)

	// el paseador no puede firmar como dueño
	_, err = repo.Send(ctx, chat.NewMessage{
		TripID: w.ID, SenderID: "walker-1", SenderType: chat.SenderOwner, Content: "hola",
	})
	require.Error(t, err)

	sent, err := repo.Send(ctx, chat.NewMessage{
		TripID: w.ID, SenderID: "walker-1", SenderType: chat.SenderWalker, Content: "ya salimos",
	})
	require.NoError(t, err)
	assert.Equal(t, chat.SenderWalker, sent.SenderType)

	thread, err := repo.GetThread(ctx, w.ID)
	require.NoError(t, err)
	assert.Len(t, thread.Messages, 1)
}

func TestTracking_LocationRequiresActiveWalk(t *testing.T) {
	ctx := context.Background()
	c := newBackend(t)
	repo := backend.NewTrackingRepo(c)

	pending := createWalk(t, backend.NewWalksRepo(c), "walker-1")
	_, err := repo.SaveLocation(ctx, pending.ID, tracking.NewLocation{Lat: -34.6, Lng: -58.4})
	assert.Equal(t, apperr.KindState, apperr.KindOf(err))

	av, err := repo.Availability(ctx, pending.ID)
	require.NoError(t, err)
	assert.False(t, av.HasMap)

	w := activeWalk(t, c)
	rec, err := repo.SaveLocation(ctx, w.ID, tracking.NewLocation{Lat: -34.6, Lng: -58.4})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, rec.RecordedAt.UTC())

	route, err := repo.Route(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, route, 1)
	assert.InDelta(t, -34.6, route[0].Lat, 1e-9)

	av, err = repo.Availability(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, av.HasMap)
	assert.Equal(t, string(walkstatus.Activo), av.Status)
}

func TestRegistrations_OnePerUserAndPromote(t *testing.T) {
	ctx := context.Background()
	repo := backend.NewRegistrationsRepo(newBackend(t))

	reg := registrations.Registration{
		ID:       "REG-1",
		UserID:   "u-9",
		FullName: "Juan Pérez",
		Status:   registrations.StatusPending,
	}
	created, err := repo.Create(ctx, reg)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, created.SubmittedAt.UTC())

	reg.ID = "REG-2"
	_, err = repo.Create(ctx, reg)
	assert.Equal(t, apperr.KindState, apperr.KindOf(err))

	byUser, err := repo.GetByUser(ctx, "u-9")
	require.NoError(t, err)
	assert.Equal(t, "REG-1", byUser.ID)

	pending, err := repo.ListByStatus(ctx, registrations.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	stats, err := repo.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.RecentSubmissions)

	require.NoError(t, repo.PromoteToWalker(ctx, "u-9"))

	created.Status = registrations.StatusApproved
	_, err = repo.Update(ctx, created)
	require.NoError(t, err)
	created.Status = registrations.StatusRejected
	_, err = repo.Update(ctx, created)
	assert.Equal(t, apperr.KindState, apperr.KindOf(err))
	got, err := repo.GetByID(ctx, "REG-1")
	require.NoError(t, err)
	assert.Equal(t, registrations.StatusApproved, got.Status)

	require.NoError(t, repo.Delete(ctx, "REG-1"))
	_, err = repo.GetByID(ctx, "REG-1")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestAuthMe_RoleFollowsPromotion(t *testing.T) {
	ctx := context.Background()
	c := newBackend(t)
	authRepo := backend.NewAuthRepo(c)

	id, err := authRepo.Me(ctx, "u-5")
	require.NoError(t, err)
	assert.Equal(t, "u-5", id.ID)
	assert.Equal(t, "owner", id.Role)

	require.NoError(t, backend.NewRegistrationsRepo(c).PromoteToWalker(ctx, "u-5"))

	id, err = authRepo.Me(ctx, "u-5")
	require.NoError(t, err)
	assert.Equal(t, "walker", id.Role)
}
