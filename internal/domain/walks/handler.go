package walks

import (
	"context"
	"net/http"
	"time"

	"pet-walks/internal/domain/walkstatus"
	"pet-walks/internal/middleware"
	"pet-walks/internal/platform/httpresp"
	"pet-walks/internal/platform/logger"
	"pet-walks/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, agendas *AgendaCache, log logger.Logger) {
	log = log.With(logger.Fields{"module": "walks"})

	r.Route("/api/walks", func(wr chi.Router) {
		wr.With(middleware.RequireRole(auth.RoleOwner)).Post("/", requestWalkHandler(svc, log))
		wr.With(middleware.RequireRole(auth.RoleOwner)).Get("/mine", ownerWalksHandler(svc, log))
		wr.With(middleware.RequireRole(auth.RoleWalker)).Get("/agenda", agendaHandler(agendas, log))

		wr.Get("/{walkID}", getWalkHandler(svc, log))
		wr.Get("/{walkID}/view", walkViewHandler(svc, log))
		wr.Post("/{walkID}/cancel", cancelWalkHandler(svc, agendas, log))
		wr.With(middleware.RequireRole(auth.RoleOwner)).Post("/{walkID}/payment", paymentHandler(svc, agendas, log))

		walker := wr.With(middleware.RequireRole(auth.RoleWalker))
		walker.Post("/{walkID}/accept", walkerActionHandler("walks.accept", svc.AcceptWalk, agendas, log))
		walker.Post("/{walkID}/reject", walkerActionHandler("walks.reject", svc.RejectWalk, agendas, log))
		walker.Post("/{walkID}/start", walkerActionHandler("walks.start", svc.StartWalk, agendas, log))
		walker.Post("/{walkID}/finish", walkerActionHandler("walks.finish", svc.FinishWalk, agendas, log))
	})
}

// requestWalkRequest es el pedido de paseo de un dueño.
type requestWalkRequest struct {
	WalkerID     string   `json:"walkerId"`
	ScheduledAt  string   `json:"scheduledDateTime"` // RFC3339
	StartAddress string   `json:"startAddress"`
	TotalPrice   float64  `json:"totalPrice"`
	PetIDs       []string `json:"petIds"`
	Notes        string   `json:"notes"`
}

// agendaResponse resume la agenda del paseador y sus topes.
type agendaResponse struct {
	WalkerID    string `json:"walkerId"`
	Walks       []Walk `json:"walks"`
	Accepted    int    `json:"accepted"`
	Active      int    `json:"active"`
	MaxAccepted int    `json:"maxAccepted"`
	MaxActive   int    `json:"maxActive"`
	CanAccept   bool   `json:"canAccept"`
	CanStart    bool   `json:"canStart"`
}

// walkViewResponse dice qué partes de la vista del paseo se muestran.
type walkViewResponse struct {
	Walk Walk `json:"walk"`
	Chat struct {
		Visible bool   `json:"visible"`
		CanSend bool   `json:"canSend"`
		Message string `json:"message"`
	} `json:"chat"`
	Map struct {
		Visible     bool   `json:"visible"`
		Interactive bool   `json:"interactive"`
		Tracking    bool   `json:"tracking"`
		Message     string `json:"message"`
	} `json:"map"`
	Terminal bool `json:"terminal"`
}

func toAgendaResponse(a *Agenda) agendaResponse {
	return agendaResponse{
		WalkerID:    a.WalkerID,
		Walks:       a.Walks(),
		Accepted:    a.AcceptedCount(),
		Active:      a.ActiveCount(),
		MaxAccepted: MaxAcceptedWalks,
		MaxActive:   MaxActiveWalks,
		CanAccept:   a.CanAccept(),
		CanStart:    a.CanStart(),
	}
}

// requestWalkHandler godoc
// @Summary Pedir un paseo
// @Description El dueño pide un paseo a un paseador. Queda en "Solicitado". La fecha debe ser futura y debe haber al menos una mascota.
// @Tags walks
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-User-Role header string false "owner"
// @Param payload body requestWalkRequest true "Pedido"
// @Success 201 {object} Walk
// @Failure 400 {object} httpresp.ErrorBody
// @Router /api/walks [post]
func requestWalkHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "walks.request"
		claims, _ := middleware.GetClaims(r)

		var req requestWalkRequest
		if err := httpresp.DecodeJSON(r, op, &req); err != nil {
			httpresp.Error(w, log, op, err, logger.Fields{"user_id": claims.UserID})
			return
		}

		var scheduled time.Time
		if req.ScheduledAt != "" {
			t, err := time.Parse(time.RFC3339, req.ScheduledAt)
			if err != nil {
				httpresp.WriteJSON(w, http.StatusBadRequest, httpresp.ErrorBody{Error: "scheduledDateTime must be RFC3339", Kind: "validation"})
				return
			}
			scheduled = t
		}

		walk, err := svc.RequestWalk(r.Context(), RequestInput{
			OwnerID:      claims.UserID,
			WalkerID:     req.WalkerID,
			ScheduledAt:  scheduled,
			StartAddress: req.StartAddress,
			TotalPrice:   req.TotalPrice,
			PetIDs:       req.PetIDs,
			Notes:        req.Notes,
		})
		if err != nil {
			httpresp.Error(w, log, op, err, logger.Fields{"user_id": claims.UserID, "walker_id": req.WalkerID})
			return
		}

		log.Info("walk requested", logger.Fields{"walk_id": walk.ID, "owner_id": walk.OwnerID, "walker_id": walk.WalkerID})
		httpresp.WriteJSON(w, http.StatusCreated, walk)
	}
}

// ownerWalksHandler godoc
// @Summary Mis paseos (dueño)
// @Tags walks
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Success 200 {array} Walk
// @Router /api/walks/mine [get]
func ownerWalksHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r)
		items, err := svc.ListOwnerWalks(r.Context(), claims.UserID)
		if err != nil {
			httpresp.Error(w, log, "walks.list_owner", err, logger.Fields{"user_id": claims.UserID})
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, items)
	}
}

// agendaHandler godoc
// @Summary Agenda del paseador
// @Description Paseos del paseador con los contadores de capacidad (máx. 5 aceptados, 2 en curso).
// @Tags walks
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-User-Role header string false "walker"
// @Success 200 {object} agendaResponse
// @Router /api/walks/agenda [get]
func agendaHandler(agendas *AgendaCache, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r)
		if r.URL.Query().Get("refresh") == "true" {
			agendas.Invalidate(claims.UserID)
		}
		a, err := agendas.Get(r.Context(), claims.UserID)
		if err != nil {
			httpresp.Error(w, log, "walks.agenda", err, logger.Fields{"walker_id": claims.UserID})
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, toAgendaResponse(a))
	}
}

// getWalkHandler godoc
// @Summary Obtener paseo
// @Tags walks
// @Produce json
// @Param walkID path string true "ID del paseo"
// @Success 200 {object} Walk
// @Failure 404 {object} httpresp.ErrorBody
// @Router /api/walks/{walkID} [get]
func getWalkHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		walk, ok := loadParticipantWalk(w, r, svc, log)
		if !ok {
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, walk)
	}
}

// walkViewHandler godoc
// @Summary Gating de la vista del paseo
// @Description Indica si el chat y el mapa se muestran, si son interactivos y el mensaje de estado de cada uno.
// @Tags walks
// @Produce json
// @Param walkID path string true "ID del paseo"
// @Success 200 {object} walkViewResponse
// @Failure 404 {object} httpresp.ErrorBody
// @Router /api/walks/{walkID}/view [get]
func walkViewHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		walk, ok := loadParticipantWalk(w, r, svc, log)
		if !ok {
			return
		}

		raw := string(walk.Status)
		var resp walkViewResponse
		resp.Walk = walk
		resp.Chat.Visible = walkstatus.ChatVisibleRaw(raw)
		resp.Chat.CanSend = walkstatus.CanSendMessagesRaw(raw)
		resp.Chat.Message = walkstatus.ChatMessage(raw)
		resp.Map.Visible = walkstatus.MapVisibleRaw(raw)
		resp.Map.Interactive = walkstatus.MapInteractiveRaw(raw)
		resp.Map.Tracking = walkstatus.TrackingVisibleRaw(raw)
		resp.Map.Message = walkstatus.MapMessage(raw)
		resp.Terminal = walk.Status.Terminal()

		httpresp.WriteJSON(w, http.StatusOK, resp)
	}
}

type walkerAction func(ctx context.Context, agenda *Agenda, walkID string) (Walk, error)

// walkerActionHandler godoc
// @Summary Acción del paseador sobre un paseo
// @Description accept (Solicitado -> Esperando pago, máx. 5 aceptados), reject (Solicitado -> Rechazado), start (Agendado -> Activo, máx. 2 en curso), finish (Activo -> Finalizado). Los topes se validan contra la agenda antes de llamar al backend.
// @Tags walks
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-User-Role header string false "walker"
// @Param walkID path string true "ID del paseo"
// @Param action path string true "accept | reject | start | finish"
// @Success 200 {object} agendaResponse
// @Failure 409 {object} httpresp.ErrorBody "tope alcanzado o estado inválido"
// @Router /api/walks/{walkID}/{action} [post]
func walkerActionHandler(op string, action walkerAction, agendas *AgendaCache, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r)
		walkID := chi.URLParam(r, "walkID")
		fields := logger.Fields{"walk_id": walkID, "walker_id": claims.UserID}

		a, err := agendas.Get(r.Context(), claims.UserID)
		if err != nil {
			httpresp.Error(w, log, op, err, fields)
			return
		}

		walk, err := action(r.Context(), a, walkID)
		if err != nil {
			httpresp.Error(w, log, op, err, fields)
			return
		}

		fields["status"] = string(walk.Status)
		log.Info("walk updated", fields)
		httpresp.WriteJSON(w, http.StatusOK, toAgendaResponse(a))
	}
}

// cancelWalkHandler godoc
// @Summary Cancelar paseo
// @Description Dueño o paseador asignado. Solo antes de que el paseo comience.
// @Tags walks
// @Produce json
// @Param walkID path string true "ID del paseo"
// @Success 200 {object} Walk
// @Failure 409 {object} httpresp.ErrorBody
// @Router /api/walks/{walkID}/cancel [post]
func cancelWalkHandler(svc *Service, agendas *AgendaCache, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "walks.cancel"
		claims, ok := middleware.GetClaims(r)
		if !ok {
			httpresp.WriteJSON(w, http.StatusUnauthorized, httpresp.ErrorBody{Error: "unauthorized"})
			return
		}
		walkID := chi.URLParam(r, "walkID")

		walk, err := svc.CancelWalk(r.Context(), claims.UserID, walkID)
		if err != nil {
			httpresp.Error(w, log, op, err, logger.Fields{"walk_id": walkID, "user_id": claims.UserID})
			return
		}
		agendas.Invalidate(walk.WalkerID)
		httpresp.WriteJSON(w, http.StatusOK, walk)
	}
}

// paymentHandler godoc
// @Summary Confirmar pago
// @Description El dueño confirma el pago de un paseo en "Esperando pago"; pasa a "Agendado".
// @Tags walks
// @Accept json
// @Produce json
// @Param walkID path string true "ID del paseo"
// @Param payload body Payment true "Pago"
// @Success 200 {object} Walk
// @Failure 400 {object} httpresp.ErrorBody
// @Failure 409 {object} httpresp.ErrorBody
// @Router /api/walks/{walkID}/payment [post]
func paymentHandler(svc *Service, agendas *AgendaCache, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "walks.pay"
		claims, _ := middleware.GetClaims(r)
		walkID := chi.URLParam(r, "walkID")

		var p Payment
		if err := httpresp.DecodeJSON(r, op, &p); err != nil {
			httpresp.Error(w, log, op, err, logger.Fields{"walk_id": walkID})
			return
		}

		walk, err := svc.ConfirmPayment(r.Context(), claims.UserID, walkID, p)
		if err != nil {
			httpresp.Error(w, log, op, err, logger.Fields{"walk_id": walkID, "user_id": claims.UserID})
			return
		}
		agendas.Invalidate(walk.WalkerID)
		log.Info("walk paid", logger.Fields{"walk_id": walk.ID, "status": string(walk.Status)})
		httpresp.WriteJSON(w, http.StatusOK, walk)
	}
}

func loadParticipantWalk(w http.ResponseWriter, r *http.Request, svc *Service, log logger.Logger) (Walk, bool) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		httpresp.WriteJSON(w, http.StatusUnauthorized, httpresp.ErrorBody{Error: "unauthorized"})
		return Walk{}, false
	}
	walkID := chi.URLParam(r, "walkID")

	walk, err := svc.GetWalk(r.Context(), walkID)
	if err != nil {
		httpresp.Error(w, log, "walks.get", err, logger.Fields{"walk_id": walkID})
		return Walk{}, false
	}
	if walk.OwnerID != claims.UserID && walk.WalkerID != claims.UserID && claims.Role != auth.RoleAdmin {
		httpresp.WriteJSON(w, http.StatusNotFound, httpresp.ErrorBody{Error: "walk not found", Kind: "not_found"})
		return Walk{}, false
	}
	return walk, true
}
