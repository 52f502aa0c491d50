package registrations

import (
	"net/http"
	"strings"

	"pet-walks/internal/middleware"
	"pet-walks/internal/platform/httpresp"
	"pet-walks/internal/platform/logger"
	"pet-walks/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	log = log.With(logger.Fields{"module": "registrations"})

	r.Route("/api/registrations", func(rr chi.Router) {
		rr.Post("/", submitHandler(svc, log))
		rr.Get("/me", myRegistrationHandler(svc, log))
		rr.Post("/me/retry", retryHandler(svc, log))

		admin := rr.With(middleware.RequireRole(auth.RoleAdmin))
		admin.Get("/", listHandler(svc, log))
		admin.Get("/statistics", statsHandler(svc, log))
		admin.Get("/{registrationID}", getHandler(svc, log))
		admin.Put("/{registrationID}/status", updateStatusHandler(svc, log))
		admin.Post("/{registrationID}/review", reviewHandler(svc, log))
	})
}

// submitRequest es el formulario de alta como paseador; userId sale de la identidad del request.
type submitRequest struct {
	FullName string  `json:"fullName"`
	Phone    string  `json:"phone"`
	DNI      string  `json:"dni"`
	City     string  `json:"city"`
	Province string  `json:"province"`
	Images   *Images `json:"images"`
}

type updateStatusRequest struct {
	Status     Status `json:"status" enums:"pending,under_review,approved,rejected"`
	AdminNotes string `json:"adminNotes"`
}

type reviewRequest struct {
	Decision Decision `json:"decision" enums:"approve,reject,review"`
	Notes    string   `json:"notes"`
}

// submitHandler godoc
// @Summary Enviar solicitud de paseador
// @Description Valida DNI (7-8 dígitos), teléfono (8-15 dígitos sin separadores) y las tres imágenes obligatorias. La solicitud queda en "pending" sin score.
// @Tags registrations
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param payload body submitRequest true "Datos de la solicitud"
// @Success 201 {object} Registration
// @Failure 400 {object} httpresp.ErrorBody
// @Failure 409 {object} httpresp.ErrorBody "ya existe una solicitud"
// @Router /api/registrations [post]
func submitHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "registrations.submit"

		claims, ok := middleware.GetClaims(r)
		if !ok {
			httpresp.WriteJSON(w, http.StatusUnauthorized, httpresp.ErrorBody{Error: "unauthorized"})
			return
		}

		var req submitRequest
		if err := httpresp.DecodeJSON(r, op, &req); err != nil {
			httpresp.Error(w, log, op, err, logger.Fields{"user_id": claims.UserID})
			return
		}

		reg, err := svc.SubmitWalkerRegistration(r.Context(), SubmitInput{
			UserID:   claims.UserID,
			FullName: req.FullName,
			Phone:    req.Phone,
			DNI:      req.DNI,
			City:     req.City,
			Province: req.Province,
			Images:   req.Images,
		})
		if err != nil {
			httpresp.Error(w, log, op, err, logger.Fields{"user_id": claims.UserID})
			return
		}

		log.Info("registration submitted", logger.Fields{"registration_id": reg.ID, "user_id": claims.UserID})
		httpresp.WriteJSON(w, http.StatusCreated, reg)
	}
}

// myRegistrationHandler godoc
// @Summary Mi solicitud
// @Tags registrations
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Success 200 {object} Registration
// @Failure 404 {object} httpresp.ErrorBody
// @Router /api/registrations/me [get]
func myRegistrationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r)
		if !ok {
			httpresp.WriteJSON(w, http.StatusUnauthorized, httpresp.ErrorBody{Error: "unauthorized"})
			return
		}

		reg, err := svc.GetRegistrationByUser(r.Context(), claims.UserID)
		if err != nil {
			httpresp.Error(w, log, "registrations.me", err, logger.Fields{"user_id": claims.UserID})
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, reg)
	}
}

// retryHandler godoc
// @Summary Reintentar solicitud rechazada
// @Description Borra la solicitud rechazada del usuario para que pueda enviar una nueva. Falla con 409 si la solicitud no está rechazada.
// @Tags registrations
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Success 204
// @Failure 409 {object} httpresp.ErrorBody
// @Router /api/registrations/me/retry [post]
func retryHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r)
		if !ok {
			httpresp.WriteJSON(w, http.StatusUnauthorized, httpresp.ErrorBody{Error: "unauthorized"})
			return
		}

		if err := svc.RetryRejectedApplication(r.Context(), claims.UserID); err != nil {
			httpresp.Error(w, log, "registrations.retry", err, logger.Fields{"user_id": claims.UserID})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// listHandler godoc
// @Summary Listar solicitudes (admin)
// @Description Más recientes primero. Filtro opcional por estado.
// @Tags registrations
// @Produce json
// @Param status query string false "pending | under_review | approved | rejected"
// @Success 200 {array} Registration
// @Failure 400 {object} httpresp.ErrorBody
// @Router /api/registrations [get]
func listHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			items []Registration
			err   error
		)
		if st := strings.TrimSpace(r.URL.Query().Get("status")); st != "" {
			items, err = svc.ListByStatus(r.Context(), Status(st))
		} else {
			items, err = svc.GetAllRegistrations(r.Context())
		}
		if err != nil {
			httpresp.Error(w, log, "registrations.list", err, nil)
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, items)
	}
}

// statsHandler godoc
// @Summary Estadísticas de solicitudes (admin)
// @Tags registrations
// @Produce json
// @Success 200 {object} Stats
// @Router /api/registrations/statistics [get]
func statsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.GetRegistrationStats(r.Context())
		if err != nil {
			httpresp.Error(w, log, "registrations.stats", err, nil)
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, st)
	}
}

// getHandler godoc
// @Summary Obtener solicitud (admin)
// @Tags registrations
// @Produce json
// @Param registrationID path string true "ID de la solicitud"
// @Success 200 {object} Registration
// @Failure 404 {object} httpresp.ErrorBody
// @Router /api/registrations/{registrationID} [get]
func getHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "registrationID")
		reg, err := svc.GetRegistration(r.Context(), id)
		if err != nil {
			httpresp.Error(w, log, "registrations.get", err, logger.Fields{"registration_id": id})
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, reg)
	}
}

// updateStatusHandler godoc
// @Summary Cambiar estado de una solicitud (admin)
// @Description Registra reviewedAt y las notas. Al aprobar calcula el score.
// @Tags registrations
// @Accept json
// @Produce json
// @Param registrationID path string true "ID de la solicitud"
// @Param payload body updateStatusRequest true "Nuevo estado"
// @Success 200 {object} Registration
// @Failure 400 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody
// @Router /api/registrations/{registrationID}/status [put]
func updateStatusHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "registrations.update_status"
		id := chi.URLParam(r, "registrationID")

		var req updateStatusRequest
		if err := httpresp.DecodeJSON(r, op, &req); err != nil {
			httpresp.Error(w, log, op, err, logger.Fields{"registration_id": id})
			return
		}

		reg, err := svc.UpdateRegistrationStatus(r.Context(), id, req.Status, req.AdminNotes)
		if err != nil {
			httpresp.Error(w, log, op, err, logger.Fields{"registration_id": id})
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, reg)
	}
}

// reviewHandler godoc
// @Summary Revisar solicitud (admin)
// @Description Aprueba, rechaza o pasa a revisión una solicitud pendiente. Aprobar promueve al usuario a paseador.
// @Tags registrations
// @Accept json
// @Produce json
// @Param registrationID path string true "ID de la solicitud"
// @Param payload body reviewRequest true "Decisión"
// @Success 200 {object} Registration
// @Failure 400 {object} httpresp.ErrorBody
// @Failure 409 {object} httpresp.ErrorBody "la solicitud ya fue resuelta"
// @Router /api/registrations/{registrationID}/review [post]
func reviewHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "registrations.review"
		id := chi.URLParam(r, "registrationID")
		claims, _ := middleware.GetClaims(r)

		var req reviewRequest
		if err := httpresp.DecodeJSON(r, op, &req); err != nil {
			httpresp.Error(w, log, op, err, logger.Fields{"registration_id": id})
			return
		}

		reviewer := claims.Name
		if reviewer == "" {
			reviewer = claims.UserID
		}
		reg, err := svc.ReviewApplication(r.Context(), id, req.Decision, req.Notes, reviewer)
		if err != nil {
			httpresp.Error(w, log, op, err, logger.Fields{"registration_id": id, "decision": string(req.Decision)})
			return
		}

		log.Info("registration reviewed", logger.Fields{"registration_id": id, "status": string(reg.Status), "reviewer": reviewer})
		httpresp.WriteJSON(w, http.StatusOK, reg)
	}
}
