package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"pet-walks/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	mu      sync.Mutex
	threads map[string]Thread
	sent    []NewMessage
	calls   int

	getErr    error
	markErr   error
	unreadErr error
	unread    map[string]int

	// block, si no es nil, hace que GetThread espere hasta que se cierre o se cancele ctx
	block chan struct{}
}

func newTestRepo() *testRepo {
	return &testRepo{threads: map[string]Thread{}, unread: map[string]int{}}
}

func (r *testRepo) GetThread(ctx context.Context, tripID string) (Thread, error) {
	r.mu.Lock()
	r.calls++
	block := r.block
	r.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return Thread{}, ctx.Err()
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return Thread{}, r.getErr
	}
	th, ok := r.threads[tripID]
	if !ok {
		return Thread{}, apperr.NotFound("test.get_thread", "chat not found")
	}
	th.Messages = append([]Message(nil), th.Messages...)
	return th, nil
}

func (r *testRepo) Send(ctx context.Context, m NewMessage) (Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.sent = append(r.sent, m)

	th := r.threads[m.TripID]
	if th.ChatID == "" {
		th.ChatID = "chat-" + m.TripID
	}
	msg := Message{
		ID:         fmt.Sprintf("m-%d", len(r.sent)),
		TripID:     m.TripID,
		SenderID:   m.SenderID,
		SenderType: m.SenderType,
		SenderName: m.SenderName,
		Content:    m.Content,
		SentAt:     time.Date(2026, 3, 10, 18, 5, 0, 0, time.UTC),
	}
	th.Messages = append(th.Messages, msg)
	r.threads[m.TripID] = th
	return msg, nil
}

func (r *testRepo) MarkAsRead(ctx context.Context, tripID, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.markErr != nil {
		return 0, r.markErr
	}
	th := r.threads[tripID]
	n := 0
	for i := range th.Messages {
		if th.Messages[i].SenderID != userID && !th.Messages[i].IsRead {
			th.Messages[i].IsRead = true
			n++
		}
	}
	r.threads[tripID] = th
	return n, nil
}

func (r *testRepo) UnreadCount(ctx context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.unreadErr != nil {
		return 0, r.unreadErr
	}
	return r.unread[userID], nil
}

func (r *testRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func newTestService(repo Repository) *Service {
	return NewService(repo, time.FixedZone("ART", -3*60*60))
}

func validSend(text string) SendInput {
	return SendInput{
		TripID:     "trip-1",
		SenderID:   "owner-1",
		SenderType: SenderOwner,
		SenderName: "Laura",
		Text:       text,
	}
}

// -------------------------
// Tests
// -------------------------

func TestSendMessage_LengthBoundary(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	ok := strings.Repeat("a", MaxMessageLength)
	dto, err := svc.SendMessage(ctx, validSend("  "+ok+"  "))
	require.NoError(t, err)
	assert.Equal(t, ok, dto.Text)

	_, err = svc.SendMessage(ctx, validSend(strings.Repeat("a", MaxMessageLength+1)))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	// los caracteres multibyte cuentan como uno
	_, err = svc.SendMessage(ctx, validSend(strings.Repeat("ñ", MaxMessageLength)))
	require.NoError(t, err)

	assert.Len(t, repo.sent, 2)
}

func TestSendMessage_RejectsBeforeNetwork(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	cases := []SendInput{
		validSend(""),
		validSend("   \n\t "),
		{TripID: "", SenderID: "u", SenderType: SenderOwner, Text: "hola"},
		{TripID: "t", SenderID: "", SenderType: SenderOwner, Text: "hola"},
		{TripID: "t", SenderID: "u", SenderType: "admin", Text: "hola"},
	}
	for _, in := range cases {
		_, err := svc.SendMessage(ctx, in)
		assert.ErrorIs(t, err, apperr.ErrValidation, "%+v", in)
	}
	assert.Equal(t, 0, repo.callCount())
}

func TestSendMessage_ShapesDTO(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	dto, err := svc.SendMessage(context.Background(), validSend("Ya salimos"))
	require.NoError(t, err)

	assert.Equal(t, "m-1", dto.ID)
	assert.Equal(t, "Ya salimos", dto.Text)
	assert.Equal(t, SenderOwner, dto.Sender)
	assert.Equal(t, "Laura", dto.SenderName)
	assert.False(t, dto.Read)
	// 18:05 UTC = 15:05 en UTC-3
	assert.Equal(t, "15:05", dto.Time)
}

func TestGetChatMessages_MissingSentAtIsNotInvented(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	repo.threads["trip-1"] = Thread{ChatID: "c1", Messages: []Message{{ID: "1", Content: "hola"}}}
	msgs, err := svc.GetChatMessages(context.Background(), "trip-1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].Timestamp.IsZero())
	assert.Empty(t, msgs[0].Time)
}

func TestGetChatMessages_EmptyCases(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	// chat inexistente (404)
	msgs, err := svc.GetChatMessages(ctx, "trip-none")
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)

	// chatId null
	repo.threads["trip-2"] = Thread{ChatID: "", Messages: []Message{{ID: "x"}}}
	msgs, err = svc.GetChatMessages(ctx, "trip-2")
	require.NoError(t, err)
	assert.Empty(t, msgs)

	// chat sin mensajes
	repo.threads["trip-3"] = Thread{ChatID: "c3"}
	msgs, err = svc.GetChatMessages(ctx, "trip-3")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestGetChatMessages_PropagatesOtherErrors(t *testing.T) {
	repo := newTestRepo()
	repo.getErr = apperr.Protocol("get /chat", "missing field %q", "messages")
	svc := newTestService(repo)

	_, err := svc.GetChatMessages(context.Background(), "trip-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrProtocol)
	assert.Contains(t, err.Error(), "trip-1")
}

func TestMarkReadAndUnread(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	repo.threads["trip-1"] = Thread{ChatID: "c1", Messages: []Message{
		{ID: "1", SenderID: "walker-1"},
		{ID: "2", SenderID: "walker-1"},
		{ID: "3", SenderID: "owner-1"},
	}}
	n, err := svc.MarkMessagesAsRead(ctx, "trip-1", "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	repo.unread["owner-1"] = 4
	n, err = svc.GetUnreadCount(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	repo.unreadErr = apperr.Protocol("op", "missing field %q", "unreadCount")
	_, err = svc.GetUnreadCount(ctx, "owner-1")
	assert.ErrorIs(t, err, apperr.ErrProtocol)

	_, err = svc.MarkMessagesAsRead(ctx, "", "owner-1")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	repo.markErr = errors.New("boom")
	_, err = svc.MarkMessagesAsRead(ctx, "trip-1", "owner-1")
	assert.Error(t, err)
}
