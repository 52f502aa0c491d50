package tickets

import (
	"net/http"

	"pet-walks/internal/middleware"
	"pet-walks/internal/platform/httpresp"
	"pet-walks/internal/platform/logger"
	"pet-walks/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	log = log.With(logger.Fields{"module": "tickets"})

	r.Route("/api/tickets", func(tr chi.Router) {
		tr.Get("/faqs", faqsHandler(svc, log))
		tr.Get("/categories", categoriesHandler(svc, log))
		tr.Get("/mine", myTicketsHandler(svc, log))
		tr.Post("/", createTicketHandler(svc, log))

		tr.Get("/{ticketID}", getTicketHandler(svc, log))

		// administración
		admin := tr.With(middleware.RequireRole(auth.RoleAdmin))
		admin.Get("/", listTicketsHandler(svc, log))
		admin.Get("/statistics", statisticsHandler(svc, log))
		admin.Post("/bulk-respond", bulkRespondHandler(svc, log))
		admin.Post("/{ticketID}/respond", respondHandler(svc, log))
		admin.Patch("/{ticketID}/status", updateStatusHandler(svc, log))
	})
}

// createTicketRequest es el cuerpo para abrir un ticket de soporte.
type createTicketRequest struct {
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Category string `json:"category" enums:"general,walker,payment,walk,account,technical"`
}

type updateStatusRequest struct {
	Status Status `json:"status" enums:"En Espera,Resuelto,Cancelada"`
	Reason string `json:"reason"`
}

type bulkRespondRequest struct {
	Items []BulkItem `json:"items"`
}

// createTicketHandler godoc
// @Summary Crear ticket de soporte
// @Description Crea un ticket en estado "En Espera". El asunto necesita al menos 5 caracteres y el mensaje al menos 10. Sin categoría se usa "general".
// @Tags tickets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param payload body createTicketRequest true "Datos del ticket"
// @Success 201 {object} Ticket
// @Failure 400 {object} httpresp.ErrorBody
// @Failure 401 {object} httpresp.ErrorBody
// @Router /api/tickets [post]
func createTicketHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "tickets.create"

		claims, ok := middleware.GetClaims(r)
		if !ok {
			httpresp.WriteJSON(w, http.StatusUnauthorized, httpresp.ErrorBody{Error: "unauthorized"})
			return
		}

		var req createTicketRequest
		if err := httpresp.DecodeJSON(r, op, &req); err != nil {
			httpresp.Error(w, log, op, err, logger.Fields{"user_id": claims.UserID})
			return
		}

		t, err := svc.CreateTicket(r.Context(), CreateInput{
			UserID:   claims.UserID,
			Subject:  req.Subject,
			Message:  req.Message,
			Category: req.Category,
		})
		if err != nil {
			httpresp.Error(w, log, op, err, logger.Fields{"user_id": claims.UserID})
			return
		}

		log.Info("ticket created", logger.Fields{"ticket_id": t.ID, "user_id": claims.UserID, "category": t.Category})
		httpresp.WriteJSON(w, http.StatusCreated, t)
	}
}

// myTicketsHandler godoc
// @Summary Mis tickets
// @Description Tickets del usuario autenticado, más recientes primero.
// @Tags tickets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Success 200 {array} Ticket
// @Failure 401 {object} httpresp.ErrorBody
// @Router /api/tickets/mine [get]
func myTicketsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r)
		if !ok {
			httpresp.WriteJSON(w, http.StatusUnauthorized, httpresp.ErrorBody{Error: "unauthorized"})
			return
		}

		items, err := svc.GetTicketsByUser(r.Context(), claims.UserID)
		if err != nil {
			httpresp.Error(w, log, "tickets.mine", err, logger.Fields{"user_id": claims.UserID})
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, items)
	}
}

// listTicketsHandler godoc
// @Summary Listar todos los tickets (admin)
// @Tags tickets
// @Produce json
// @Param X-User-Role header string false "admin"
// @Success 200 {array} Ticket
// @Failure 403 {object} httpresp.ErrorBody
// @Router /api/tickets [get]
func listTicketsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.GetAllTickets(r.Context())
		if err != nil {
			httpresp.Error(w, log, "tickets.list", err, nil)
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, items)
	}
}

// getTicketHandler godoc
// @Summary Obtener ticket
// @Description Un usuario solo puede ver sus propios tickets; un admin ve todos.
// @Tags tickets
// @Produce json
// @Param ticketID path string true "ID del ticket"
// @Success 200 {object} Ticket
// @Failure 403 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody
// @Router /api/tickets/{ticketID} [get]
func getTicketHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r)
		if !ok {
			httpresp.WriteJSON(w, http.StatusUnauthorized, httpresp.ErrorBody{Error: "unauthorized"})
			return
		}
		id := chi.URLParam(r, "ticketID")

		t, err := svc.GetTicket(r.Context(), id)
		if err != nil {
			httpresp.Error(w, log, "tickets.get", err, logger.Fields{"ticket_id": id})
			return
		}
		if t.UserID != claims.UserID && claims.Role != auth.RoleAdmin {
			httpresp.WriteJSON(w, http.StatusForbidden, httpresp.ErrorBody{Error: "forbidden"})
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, t)
	}
}

// respondHandler godoc
// @Summary Responder ticket (admin)
// @Description Responde un ticket en espera. El estado final debe ser "Resuelto" o "Cancelada"; cancelar exige una justificación de al menos 20 caracteres (10 para resolver).
// @Tags tickets
// @Accept json
// @Produce json
// @Param X-User-Role header string false "admin"
// @Param ticketID path string true "ID del ticket"
// @Param payload body RespondInput true "Respuesta"
// @Success 200 {object} RespondResult
// @Failure 400 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody
// @Failure 409 {object} httpresp.ErrorBody "el ticket ya fue respondido"
// @Router /api/tickets/{ticketID}/respond [post]
func respondHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "tickets.respond"
		id := chi.URLParam(r, "ticketID")

		var req RespondInput
		if err := httpresp.DecodeJSON(r, op, &req); err != nil {
			httpresp.Error(w, log, op, err, logger.Fields{"ticket_id": id})
			return
		}

		res, err := svc.RespondToTicket(r.Context(), id, req)
		if err != nil {
			httpresp.Error(w, log, op, err, logger.Fields{"ticket_id": id, "status": string(req.Status)})
			return
		}

		log.Info("ticket responded", logger.Fields{"ticket_id": id, "status": string(res.Status), "agent": res.AgentName})
		httpresp.WriteJSON(w, http.StatusOK, res)
	}
}

// bulkRespondHandler godoc
// @Summary Responder tickets en lote (admin)
// @Description Cada ítem se valida y responde por separado; un fallo no corta el lote.
// @Tags tickets
// @Accept json
// @Produce json
// @Param payload body bulkRespondRequest true "Respuestas"
// @Success 200 {object} BulkResult
// @Router /api/tickets/bulk-respond [post]
func bulkRespondHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "tickets.bulk_respond"

		var req bulkRespondRequest
		if err := httpresp.DecodeJSON(r, op, &req); err != nil {
			httpresp.Error(w, log, op, err, nil)
			return
		}

		res := svc.ProcessBulkResponses(r.Context(), req.Items)
		log.Info("bulk responses processed", logger.Fields{"total": res.Total, "successful": res.Successful, "failed": res.Failed})
		httpresp.WriteJSON(w, http.StatusOK, res)
	}
}

// updateStatusHandler godoc
// @Summary Cambiar estado de un ticket (admin)
// @Description Solo un ticket "En Espera" cambia de estado. Cancelar exige una justificación de al menos 20 caracteres.
// @Tags tickets
// @Accept json
// @Produce json
// @Param ticketID path string true "ID del ticket"
// @Param payload body updateStatusRequest true "Nuevo estado"
// @Success 200 {object} Ticket
// @Failure 400 {object} httpresp.ErrorBody
// @Failure 409 {object} httpresp.ErrorBody
// @Router /api/tickets/{ticketID}/status [patch]
func updateStatusHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "tickets.update_status"
		id := chi.URLParam(r, "ticketID")

		var req updateStatusRequest
		if err := httpresp.DecodeJSON(r, op, &req); err != nil {
			httpresp.Error(w, log, op, err, logger.Fields{"ticket_id": id})
			return
		}

		t, err := svc.UpdateTicketStatus(r.Context(), id, req.Status, req.Reason)
		if err != nil {
			httpresp.Error(w, log, op, err, logger.Fields{"ticket_id": id})
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, t)
	}
}

// statisticsHandler godoc
// @Summary Estadísticas de tickets (admin)
// @Tags tickets
// @Produce json
// @Success 200 {object} Statistics
// @Router /api/tickets/statistics [get]
func statisticsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.GetStatistics(r.Context())
		if err != nil {
			httpresp.Error(w, log, "tickets.statistics", err, nil)
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, st)
	}
}

// categoriesHandler godoc
// @Summary Categorías de tickets
// @Tags tickets
// @Produce json
// @Success 200 {array} CategoryInfo
// @Router /api/tickets/categories [get]
func categoriesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.GetCategories(r.Context())
		if err != nil {
			httpresp.Error(w, log, "tickets.categories", err, nil)
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, items)
	}
}

// faqsHandler godoc
// @Summary Preguntas frecuentes
// @Tags tickets
// @Produce json
// @Success 200 {array} FAQ
// @Router /api/tickets/faqs [get]
func faqsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.GetFAQs(r.Context())
		if err != nil {
			httpresp.Error(w, log, "tickets.faqs", err, nil)
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, items)
	}
}
