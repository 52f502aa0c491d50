package chat

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-walks/internal/middleware"
	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/platform/httpresp"
	"pet-walks/internal/platform/logger"
	"pet-walks/internal/platform/wsconn"

	"github.com/go-chi/chi/v5"
)

// streamEvent es lo que el servidor empuja por el socket.
type streamEvent struct {
	Type     string      `json:"type"` // snapshot | sent | error
	Snapshot *Snapshot   `json:"snapshot,omitempty"`
	Message  *MessageDTO `json:"message,omitempty"`
	Error    string      `json:"error,omitempty"`
	Kind     string      `json:"kind,omitempty"`
}

// clientFrame es lo que manda la vista.
type clientFrame struct {
	Type string `json:"type"` // send | refresh
	Text string `json:"text"`
}

// StreamHandler abre una sesión de chat por conexión. Cerrar el socket es
// cerrar la vista: la sesión se detiene antes de que el handler retorne.
func StreamHandler(svc *Service, lookup TripLookup, interval time.Duration, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		tripID := chi.URLParam(r, "tripID")
		l := log.With(logger.Fields{"trip_id": tripID, "user_id": claims.UserID, "stream": "chat"})

		_, viewer, err := viewerOf(r.Context(), lookup, tripID, claims)
		if err != nil {
			httpresp.Error(w, l, "chat.stream", err, nil)
			return
		}

		conn, err := wsconn.Upgrade(w, r)
		if err != nil {
			l.Warn("ws upgrade failed", logger.Fields{"err": err})
			return
		}
		defer conn.Close()

		sess, err := svc.OpenSession(r.Context(), tripID, viewer, lookup, SessionOptions{
			Interval: interval,
			OnUpdate: func(s Snapshot) {
				_ = conn.WriteJSON(streamEvent{Type: "snapshot", Snapshot: &s})
			},
		})
		if err != nil {
			l.Warn("chat session open failed", logger.Fields{"err": err})
			_ = conn.WriteJSON(errorEvent(err))
			return
		}
		defer sess.Close()
		l.Debug("chat session opened", nil)

		conn.ReadLoop(func(raw []byte) {
			var f clientFrame
			if err := json.Unmarshal(raw, &f); err != nil {
				_ = conn.WriteJSON(streamEvent{Type: "error", Error: "invalid frame", Kind: "validation"})
				return
			}
			switch strings.ToLower(f.Type) {
			case "send":
				dto, err := sess.Send(r.Context(), f.Text)
				if err != nil {
					l.Info("chat send rejected", logger.Fields{"err": err})
					_ = conn.WriteJSON(errorEvent(err))
					return
				}
				_ = conn.WriteJSON(streamEvent{Type: "sent", Message: &dto})
			case "refresh":
				snap := sess.Snapshot()
				_ = conn.WriteJSON(streamEvent{Type: "snapshot", Snapshot: &snap})
			default:
				_ = conn.WriteJSON(streamEvent{Type: "error", Error: "unknown frame type", Kind: "validation"})
			}
		})
		l.Debug("chat session closed", nil)
	}
}

func errorEvent(err error) streamEvent {
	return streamEvent{Type: "error", Error: err.Error(), Kind: string(apperr.KindOf(err))}
}
