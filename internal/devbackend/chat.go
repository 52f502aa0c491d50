package devbackend

import (
	"net/http"
	"strings"

	"pet-walks/internal/adapters/backend"
	"pet-walks/internal/domain/chat"
	"pet-walks/internal/domain/walkstatus"
	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/platform/httpresp"

	"github.com/go-chi/chi/v5"
)

func (s *Server) getMessages(w http.ResponseWriter, r *http.Request) {
	const op = "devbackend.chat.list"
	tripID := chi.URLParam(r, "tripId")

	if _, err := s.stores.Walks.Get(r.Context(), tripID); err != nil {
		s.fail(w, op, err)
		return
	}
	msgs, err := s.stores.Chat.Messages(r.Context(), tripID)
	if err != nil {
		s.fail(w, op, err)
		return
	}
	writeData(w, http.StatusOK, chat.Thread{ChatID: "chat-" + tripID, Messages: msgs})
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	const op = "devbackend.chat.send"
	tripID := chi.URLParam(r, "tripId")

	var in chat.NewMessage
	if err := httpresp.DecodeJSON(r, op, &in); err != nil {
		s.fail(w, op, err)
		return
	}
	content := strings.TrimSpace(in.Content)
	if content == "" || in.SenderID == "" || !in.SenderType.Valid() {
		s.fail(w, op, apperr.Validation(op, "senderId, senderType and content required"))
		return
	}

	walk, err := s.stores.Walks.Get(r.Context(), tripID)
	if err != nil {
		s.fail(w, op, err)
		return
	}
	want := chat.SenderOwner
	if in.SenderID == walk.WalkerID {
		want = chat.SenderWalker
	}
	if (in.SenderID != walk.OwnerID && in.SenderID != walk.WalkerID) || in.SenderType != want {
		s.fail(w, op, apperr.Validation(op, "sender %s (%s) is not part of walk %s", in.SenderID, in.SenderType, tripID))
		return
	}
	if !walkstatus.CanSendMessages(walk.Status) {
		s.fail(w, op, apperr.State(op, "chat is read-only while walk is %q", walk.Status))
		return
	}

	m := chat.Message{
		ID:         s.newID(),
		TripID:     tripID,
		SenderID:   in.SenderID,
		SenderType: in.SenderType,
		SenderName: in.SenderName,
		Content:    content,
		SentAt:     s.now().UTC(),
	}
	if err := s.stores.Chat.Append(r.Context(), m); err != nil {
		s.fail(w, op, err)
		return
	}
	writeData(w, http.StatusCreated, m)
}

func (s *Server) markRead(w http.ResponseWriter, r *http.Request) {
	const op = "devbackend.chat.read"
	tripID := chi.URLParam(r, "tripId")

	var in backend.ReadReceipt
	if err := httpresp.DecodeJSON(r, op, &in); err != nil {
		s.fail(w, op, err)
		return
	}
	if in.UserID == "" {
		in.UserID = userID(r)
	}

	n, err := s.stores.Chat.MarkRead(r.Context(), tripID, in.UserID)
	if err != nil {
		s.fail(w, op, err)
		return
	}
	writeData(w, http.StatusOK, backend.UpdatedCount{UpdatedCount: n})
}

// unreadCount suma los mensajes no leídos de otros en los paseos del usuario.
func (s *Server) unreadCount(w http.ResponseWriter, r *http.Request) {
	const op = "devbackend.chat.unread"
	uid := chi.URLParam(r, "userId")

	all, err := s.stores.Walks.List(r.Context())
	if err != nil {
		s.fail(w, op, err)
		return
	}

	total := 0
	for _, walk := range all {
		if walk.OwnerID != uid && walk.WalkerID != uid {
			continue
		}
		msgs, err := s.stores.Chat.Messages(r.Context(), walk.ID)
		if err != nil {
			s.fail(w, op, err)
			return
		}
		for _, m := range msgs {
			if m.SenderID != uid && !m.IsRead {
				total++
			}
		}
	}
	writeData(w, http.StatusOK, backend.UnreadCount{UnreadCount: total})
}
