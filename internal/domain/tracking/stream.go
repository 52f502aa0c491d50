package tracking

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-walks/internal/domain/walkstatus"
	"pet-walks/internal/middleware"
	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/platform/httpresp"
	"pet-walks/internal/platform/logger"
	"pet-walks/internal/platform/wsconn"

	"github.com/go-chi/chi/v5"
)

type streamEvent struct {
	Type     string    `json:"type"` // snapshot | located | error
	Snapshot *Snapshot `json:"snapshot,omitempty"`
	Point    *Point    `json:"point,omitempty"`
	Error    string    `json:"error,omitempty"`
	Kind     string    `json:"kind,omitempty"`
}

type clientFrame struct {
	Type string  `json:"type"` // refresh | location
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// StreamHandler abre una sesión de mapa por conexión. Solo el paseador del
// paseo puede reportar ubicación por el socket.
func StreamHandler(svc *Service, lookup TripLookup, interval time.Duration, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		tripID := chi.URLParam(r, "tripID")
		l := log.With(logger.Fields{"trip_id": tripID, "user_id": claims.UserID, "stream": "tracking"})

		_, side, err := sideOf(r.Context(), lookup, tripID, claims)
		if err != nil {
			httpresp.Error(w, l, "tracking.stream", err, nil)
			return
		}

		conn, err := wsconn.Upgrade(w, r)
		if err != nil {
			l.Warn("ws upgrade failed", logger.Fields{"err": err})
			return
		}
		defer conn.Close()

		sess, err := svc.OpenSession(r.Context(), tripID, lookup, SessionOptions{
			Interval: interval,
			OnUpdate: func(s Snapshot) {
				_ = conn.WriteJSON(streamEvent{Type: "snapshot", Snapshot: &s})
			},
		})
		if err != nil {
			l.Warn("tracking session open failed", logger.Fields{"err": err})
			_ = conn.WriteJSON(errorEvent(err))
			return
		}
		defer sess.Close()
		l.Debug("tracking session opened", logger.Fields{"polling": sess.Polling()})

		conn.ReadLoop(func(raw []byte) {
			var f clientFrame
			if err := json.Unmarshal(raw, &f); err != nil {
				_ = conn.WriteJSON(streamEvent{Type: "error", Error: "invalid frame", Kind: "validation"})
				return
			}
			switch strings.ToLower(f.Type) {
			case "refresh":
				snap := sess.Refresh(r.Context())
				_ = conn.WriteJSON(streamEvent{Type: "snapshot", Snapshot: &snap})
			case "location":
				if side != walkstatus.SideWalker {
					_ = conn.WriteJSON(streamEvent{Type: "error", Error: "only the walker reports location", Kind: "state"})
					return
				}
				p, err := sess.Report(r.Context(), f.Lat, f.Lng)
				if err != nil {
					_ = conn.WriteJSON(errorEvent(err))
					return
				}
				_ = conn.WriteJSON(streamEvent{Type: "located", Point: &p})
			default:
				_ = conn.WriteJSON(streamEvent{Type: "error", Error: "unknown frame type", Kind: "validation"})
			}
		})
		l.Debug("tracking session closed", nil)
	}
}

func errorEvent(err error) streamEvent {
	return streamEvent{Type: "error", Error: err.Error(), Kind: string(apperr.KindOf(err))}
}
