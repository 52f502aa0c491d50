package chat

import (
	"net/http"
	"strings"

	"pet-walks/internal/domain/walkstatus"
	"pet-walks/internal/middleware"
	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/platform/httpresp"
	"pet-walks/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, lookup TripLookup, log logger.Logger) {
	log = log.With(logger.Fields{"module": "chat"})

	r.Route("/api/chat", func(cr chi.Router) {
		cr.Get("/trips/{tripID}/messages", listMessagesHandler(svc, lookup, log))
		cr.Post("/trips/{tripID}/messages", sendMessageHandler(svc, lookup, log))
		cr.Put("/trips/{tripID}/messages/read", markReadHandler(svc, lookup, log))
		cr.Get("/unread-count", unreadCountHandler(svc, log))
	})
}

// messagesResponse es la vista de chat de un paseo.
type messagesResponse struct {
	TripID        string       `json:"tripId"`
	Status        string       `json:"status"`
	Visible       bool         `json:"visible"`
	CanSend       bool         `json:"canSend"`
	StatusMessage string       `json:"statusMessage"`
	Messages      []MessageDTO `json:"messages"`
}

// sendMessageRequest es el cuerpo para enviar un mensaje; el remitente sale de la identidad del request.
type sendMessageRequest struct {
	Text string `json:"text"`
}

type countResponse struct {
	UpdatedCount *int `json:"updatedCount,omitempty"`
	UnreadCount  *int `json:"unreadCount,omitempty"`
}

// listMessagesHandler godoc
// @Summary Mensajes del chat de un paseo
// @Description Devuelve los mensajes del paseo junto con el gating de la vista. Si el chat todavía no existe la lista viene vacía. Con el paseo fuera de activo/finalizado no se piden mensajes.
// @Tags chat
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param tripID path string true "ID del paseo"
// @Success 200 {object} messagesResponse
// @Failure 401 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody "paseo inexistente o ajeno"
// @Failure 502 {object} httpresp.ErrorBody "backend caído o respuesta inválida"
// @Router /api/chat/trips/{tripID}/messages [get]
func listMessagesHandler(svc *Service, lookup TripLookup, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r)
		if !ok {
			httpresp.WriteJSON(w, http.StatusUnauthorized, httpresp.ErrorBody{Error: "unauthorized"})
			return
		}
		tripID := chi.URLParam(r, "tripID")
		fields := logger.Fields{"trip_id": tripID, "user_id": claims.UserID}

		parts, _, err := viewerOf(r.Context(), lookup, tripID, claims)
		if err != nil {
			httpresp.Error(w, log, "chat.list", err, fields)
			return
		}
		status := parts.Status

		resp := messagesResponse{
			TripID:        tripID,
			Status:        status,
			Visible:       walkstatus.ChatVisibleRaw(status),
			CanSend:       walkstatus.CanSendMessagesRaw(status),
			StatusMessage: walkstatus.ChatMessage(status),
			Messages:      []MessageDTO{},
		}
		if resp.Visible {
			msgs, err := svc.GetChatMessages(r.Context(), tripID)
			if err != nil {
				httpresp.Error(w, log, "chat.list", err, fields)
				return
			}
			resp.Messages = msgs
		}

		httpresp.WriteJSON(w, http.StatusOK, resp)
	}
}

// sendMessageHandler godoc
// @Summary Enviar mensaje
// @Description Envía un mensaje al chat del paseo. Solo escriben el dueño y el paseador del paseo, y solo con el paseo activo. El remitente sale del lado que ocupa el usuario en el paseo. El texto se recorta y no puede superar 500 caracteres.
// @Tags chat
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param tripID path string true "ID del paseo"
// @Param payload body sendMessageRequest true "Texto del mensaje"
// @Success 201 {object} MessageDTO
// @Failure 400 {object} httpresp.ErrorBody "texto vacío o demasiado largo"
// @Failure 401 {object} httpresp.ErrorBody
// @Failure 403 {object} httpresp.ErrorBody "admin sin lugar en el paseo"
// @Failure 404 {object} httpresp.ErrorBody "paseo inexistente o ajeno"
// @Failure 409 {object} httpresp.ErrorBody "el paseo no está activo"
// @Router /api/chat/trips/{tripID}/messages [post]
func sendMessageHandler(svc *Service, lookup TripLookup, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "chat.send"

		claims, ok := middleware.GetClaims(r)
		if !ok {
			httpresp.WriteJSON(w, http.StatusUnauthorized, httpresp.ErrorBody{Error: "unauthorized"})
			return
		}
		tripID := chi.URLParam(r, "tripID")
		fields := logger.Fields{"trip_id": tripID, "user_id": claims.UserID}

		var req sendMessageRequest
		if err := httpresp.DecodeJSON(r, op, &req); err != nil {
			httpresp.Error(w, log, op, err, fields)
			return
		}

		parts, p, err := viewerOf(r.Context(), lookup, tripID, claims)
		if err != nil {
			httpresp.Error(w, log, op, err, fields)
			return
		}
		if !p.CanWrite() {
			httpresp.WriteJSON(w, http.StatusForbidden, httpresp.ErrorBody{Error: "forbidden"})
			return
		}
		if !walkstatus.CanSendMessagesRaw(parts.Status) {
			httpresp.Error(w, log, op, apperr.State(op, "%s", walkstatus.ChatMessage(parts.Status)), fields)
			return
		}

		dto, err := svc.SendMessage(r.Context(), SendInput{
			TripID:     tripID,
			SenderID:   p.ID,
			SenderType: p.Type,
			SenderName: p.Name,
			Text:       req.Text,
		})
		if err != nil {
			httpresp.Error(w, log, op, err, fields)
			return
		}

		httpresp.WriteJSON(w, http.StatusCreated, dto)
	}
}

// markReadHandler godoc
// @Summary Marcar mensajes como leídos
// @Tags chat
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param tripID path string true "ID del paseo"
// @Success 200 {object} countResponse
// @Failure 401 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody "paseo inexistente o ajeno"
// @Failure 502 {object} httpresp.ErrorBody "respuesta sin updatedCount"
// @Router /api/chat/trips/{tripID}/messages/read [put]
func markReadHandler(svc *Service, lookup TripLookup, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "chat.mark_read"

		claims, ok := middleware.GetClaims(r)
		if !ok {
			httpresp.WriteJSON(w, http.StatusUnauthorized, httpresp.ErrorBody{Error: "unauthorized"})
			return
		}
		tripID := chi.URLParam(r, "tripID")
		fields := logger.Fields{"trip_id": tripID, "user_id": claims.UserID}

		_, p, err := viewerOf(r.Context(), lookup, tripID, claims)
		if err != nil {
			httpresp.Error(w, log, op, err, fields)
			return
		}
		if !p.CanWrite() {
			httpresp.WriteJSON(w, http.StatusForbidden, httpresp.ErrorBody{Error: "forbidden"})
			return
		}

		n, err := svc.MarkMessagesAsRead(r.Context(), tripID, claims.UserID)
		if err != nil {
			httpresp.Error(w, log, op, err, fields)
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, countResponse{UpdatedCount: &n})
	}
}

// unreadCountHandler godoc
// @Summary Cantidad de mensajes sin leer del usuario
// @Tags chat
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Success 200 {object} countResponse
// @Failure 401 {object} httpresp.ErrorBody
// @Router /api/chat/unread-count [get]
func unreadCountHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r)
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpresp.WriteJSON(w, http.StatusUnauthorized, httpresp.ErrorBody{Error: "unauthorized"})
			return
		}

		n, err := svc.GetUnreadCount(r.Context(), claims.UserID)
		if err != nil {
			httpresp.Error(w, log, "chat.unread_count", err, logger.Fields{"user_id": claims.UserID})
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, countResponse{UnreadCount: &n})
	}
}
