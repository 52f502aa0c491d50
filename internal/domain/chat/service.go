package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/platform/metrics"
	"pet-walks/internal/platform/timeutil"
)

type Service struct {
	repo Repository
	loc  *time.Location
}

func NewService(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = timeutil.LoadLocation("")
	}
	return &Service{
		repo: repo,
		loc:  loc,
	}
}

type SendInput struct {
	TripID     string
	SenderID   string
	SenderType SenderType
	SenderName string
	Text       string
}

// SendMessage valida el texto antes de tocar la red y devuelve el mensaje
// persistido ya en forma de DTO.
func (s *Service) SendMessage(ctx context.Context, in SendInput) (MessageDTO, error) {
	const op = "chat.send"

	tripID := strings.TrimSpace(in.TripID)
	senderID := strings.TrimSpace(in.SenderID)
	text := strings.TrimSpace(in.Text)

	switch {
	case tripID == "":
		return MessageDTO{}, s.invalid(op, "trip id required")
	case senderID == "":
		return MessageDTO{}, s.invalid(op, "sender id required")
	case !in.SenderType.Valid():
		return MessageDTO{}, s.invalid(op, "sender type must be owner or walker")
	case text == "":
		return MessageDTO{}, s.invalid(op, "el mensaje no puede estar vacío")
	case utf8.RuneCountInString(text) > MaxMessageLength:
		return MessageDTO{}, s.invalid(op, "el mensaje no puede superar los %d caracteres", MaxMessageLength)
	}

	m, err := s.repo.Send(ctx, NewMessage{
		TripID:     tripID,
		SenderID:   senderID,
		SenderType: in.SenderType,
		SenderName: strings.TrimSpace(in.SenderName),
		Content:    text,
	})
	if err != nil {
		return MessageDTO{}, fmt.Errorf("send message to trip %s: %w", tripID, err)
	}
	return s.toDTO(m), nil
}

// GetChatMessages devuelve lista vacía (no error) si el chat no existe o no
// tiene mensajes.
func (s *Service) GetChatMessages(ctx context.Context, tripID string) ([]MessageDTO, error) {
	tripID = strings.TrimSpace(tripID)
	if tripID == "" {
		return nil, s.invalid("chat.list", "trip id required")
	}

	th, err := s.repo.GetThread(ctx, tripID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return []MessageDTO{}, nil
		}
		return nil, fmt.Errorf("get messages of trip %s: %w", tripID, err)
	}
	if th.ChatID == "" || len(th.Messages) == 0 {
		return []MessageDTO{}, nil
	}

	out := make([]MessageDTO, 0, len(th.Messages))
	for _, m := range th.Messages {
		out = append(out, s.toDTO(m))
	}
	return out, nil
}

func (s *Service) MarkMessagesAsRead(ctx context.Context, tripID, userID string) (int, error) {
	tripID = strings.TrimSpace(tripID)
	userID = strings.TrimSpace(userID)
	if tripID == "" || userID == "" {
		return 0, s.invalid("chat.mark_read", "trip id and user id required")
	}

	n, err := s.repo.MarkAsRead(ctx, tripID, userID)
	if err != nil {
		return 0, fmt.Errorf("mark messages of trip %s as read: %w", tripID, err)
	}
	return n, nil
}

func (s *Service) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, s.invalid("chat.unread_count", "user id required")
	}

	n, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("unread count for user %s: %w", userID, err)
	}
	return n, nil
}

// toDTO no inventa la hora: sin sentAt el campo time queda vacío.
func (s *Service) toDTO(m Message) MessageDTO {
	dto := MessageDTO{
		ID:         m.ID,
		Text:       m.Content,
		Sender:     m.SenderType,
		SenderID:   m.SenderID,
		SenderName: m.SenderName,
		Timestamp:  m.SentAt,
		Read:       m.IsRead,
	}
	if !m.SentAt.IsZero() {
		dto.Time = timeutil.ClockTime(m.SentAt, s.loc)
	}
	return dto
}

func (s *Service) invalid(op, format string, args ...any) error {
	metrics.ValidationFailuresTotal.WithLabelValues("chat").Inc()
	return apperr.Validation(op, format, args...)
}
