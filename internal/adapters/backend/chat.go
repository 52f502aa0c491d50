package backend

import (
	"context"
	"net/http"

	"pet-walks/internal/domain/chat"
	"pet-walks/internal/platform/apperr"
)

// ChatRepo implementa chat.Repository.
type ChatRepo struct {
	c *Client
}

func NewChatRepo(c *Client) *ChatRepo { return &ChatRepo{c: c} }

func (r *ChatRepo) GetThread(ctx context.Context, tripID string) (chat.Thread, error) {
	var out chat.Thread
	err := r.c.do(ctx, call{
		Method:   http.MethodGet,
		Path:     "/chat/walks/" + seg(tripID) + "/messages",
		Endpoint: "/chat/walks/{tripId}/messages",
		Required: []string{"chatId", "messages"},
	}, &out)
	if err != nil {
		return chat.Thread{}, err
	}
	if out.Messages == nil {
		out.Messages = []chat.Message{}
	}
	for i := range out.Messages {
		if out.Messages[i].SentAt.IsZero() {
			return chat.Thread{}, apperr.Protocol("get /chat/walks/{tripId}/messages", "message %d without sentAt", i)
		}
		if out.Messages[i].TripID == "" {
			out.Messages[i].TripID = tripID
		}
	}
	return out, nil
}

func (r *ChatRepo) Send(ctx context.Context, m chat.NewMessage) (chat.Message, error) {
	var out chat.Message
	err := r.c.do(ctx, call{
		Method:   http.MethodPost,
		Path:     "/chat/walks/" + seg(m.TripID) + "/messages",
		Endpoint: "/chat/walks/{tripId}/messages",
		Body:     m,
		Required: []string{"id", "content", "sentAt"},
	}, &out)
	if err != nil {
		return chat.Message{}, err
	}
	if out.SentAt.IsZero() {
		return chat.Message{}, apperr.Protocol("post /chat/walks/{tripId}/messages", "message without sentAt")
	}
	if out.TripID == "" {
		out.TripID = m.TripID
	}
	return out, nil
}

func (r *ChatRepo) MarkAsRead(ctx context.Context, tripID, userID string) (int, error) {
	var out UpdatedCount
	err := r.c.do(ctx, call{
		Method:   http.MethodPut,
		Path:     "/chat/walks/" + seg(tripID) + "/messages/read",
		Endpoint: "/chat/walks/{tripId}/messages/read",
		Body:     ReadReceipt{UserID: userID},
		Required: []string{"updatedCount"},
	}, &out)
	return out.UpdatedCount, err
}

func (r *ChatRepo) UnreadCount(ctx context.Context, userID string) (int, error) {
	var out UnreadCount
	err := r.c.do(ctx, call{
		Method:   http.MethodGet,
		Path:     "/chat/users/" + seg(userID) + "/unread-count",
		Endpoint: "/chat/users/{userId}/unread-count",
		Required: []string{"unreadCount"},
	}, &out)
	return out.UnreadCount, err
}
