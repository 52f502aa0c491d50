package tracking

import (
	"net/http"

	"pet-walks/internal/domain/walkstatus"
	"pet-walks/internal/middleware"
	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/platform/httpresp"
	"pet-walks/internal/platform/logger"
	"pet-walks/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, lookup TripLookup, log logger.Logger) {
	log = log.With(logger.Fields{"module": "tracking"})

	r.Route("/api/tracking", func(tr chi.Router) {
		tr.Get("/trips/{tripID}/route", routeHandler(svc, lookup, log))
		tr.Get("/trips/{tripID}/availability", availabilityHandler(svc, lookup, log))
		tr.With(middleware.RequireRole(auth.RoleWalker)).Post("/trips/{tripID}/location", saveLocationHandler(svc, lookup, log))
	})
}

type routeResponse struct {
	TripID        string  `json:"tripId"`
	Status        string  `json:"status"`
	Visible       bool    `json:"visible"`
	Interactive   bool    `json:"interactive"`
	StatusMessage string  `json:"statusMessage"`
	Route         []Point `json:"route"`
}

type availabilityResponse struct {
	Availability
	Visible       bool   `json:"visible"`
	StatusMessage string `json:"statusMessage"`
}

type locationRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// routeHandler godoc
// @Summary Recorrido del paseo
// @Description Muestras GPS en orden cronológico. Fuera de activo/finalizado no se pide el recorrido y la lista viene vacía.
// @Tags tracking
// @Produce json
// @Param tripID path string true "ID del paseo"
// @Success 200 {object} routeResponse
// @Failure 401 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody "paseo inexistente o ajeno"
// @Failure 502 {object} httpresp.ErrorBody
// @Router /api/tracking/trips/{tripID}/route [get]
func routeHandler(svc *Service, lookup TripLookup, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "tracking.route"

		claims, ok := middleware.GetClaims(r)
		if !ok {
			httpresp.WriteJSON(w, http.StatusUnauthorized, httpresp.ErrorBody{Error: "unauthorized"})
			return
		}
		tripID := chi.URLParam(r, "tripID")

		parts, _, err := sideOf(r.Context(), lookup, tripID, claims)
		if err != nil {
			httpresp.Error(w, log, op, err, logger.Fields{"trip_id": tripID, "user_id": claims.UserID})
			return
		}
		status := parts.Status

		resp := routeResponse{
			TripID:        tripID,
			Status:        status,
			Visible:       walkstatus.TrackingVisibleRaw(status),
			Interactive:   walkstatus.MapInteractiveRaw(status),
			StatusMessage: walkstatus.MapMessage(status),
			Route:         []Point{},
		}
		if resp.Visible {
			route, err := svc.GetRoute(r.Context(), tripID)
			if err != nil {
				httpresp.Error(w, log, op, err, logger.Fields{"trip_id": tripID})
				return
			}
			resp.Route = route
		}
		httpresp.WriteJSON(w, http.StatusOK, resp)
	}
}

// availabilityHandler godoc
// @Summary Disponibilidad del mapa
// @Tags tracking
// @Produce json
// @Param tripID path string true "ID del paseo"
// @Success 200 {object} availabilityResponse
// @Failure 401 {object} httpresp.ErrorBody
// @Failure 404 {object} httpresp.ErrorBody "paseo inexistente o ajeno"
// @Failure 502 {object} httpresp.ErrorBody "respuesta sin hasMap"
// @Router /api/tracking/trips/{tripID}/availability [get]
func availabilityHandler(svc *Service, lookup TripLookup, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "tracking.availability"

		claims, ok := middleware.GetClaims(r)
		if !ok {
			httpresp.WriteJSON(w, http.StatusUnauthorized, httpresp.ErrorBody{Error: "unauthorized"})
			return
		}
		tripID := chi.URLParam(r, "tripID")
		fields := logger.Fields{"trip_id": tripID, "user_id": claims.UserID}

		if _, _, err := sideOf(r.Context(), lookup, tripID, claims); err != nil {
			httpresp.Error(w, log, op, err, fields)
			return
		}

		a, err := svc.GetAvailability(r.Context(), tripID)
		if err != nil {
			httpresp.Error(w, log, op, err, fields)
			return
		}
		httpresp.WriteJSON(w, http.StatusOK, availabilityResponse{
			Availability:  a,
			Visible:       a.HasMap && walkstatus.MapVisibleRaw(a.Status),
			StatusMessage: walkstatus.MapMessage(a.Status),
		})
	}
}

// saveLocationHandler godoc
// @Summary Reportar ubicación
// @Description El paseador del paseo reporta su posición. Solo con el paseo activo.
// @Tags tracking
// @Accept json
// @Produce json
// @Param X-User-Role header string false "walker"
// @Param tripID path string true "ID del paseo"
// @Param payload body locationRequest true "Coordenadas"
// @Success 201 {object} Point
// @Failure 400 {object} httpresp.ErrorBody
// @Failure 403 {object} httpresp.ErrorBody "no es el paseador del paseo"
// @Failure 404 {object} httpresp.ErrorBody "paseo inexistente o ajeno"
// @Failure 409 {object} httpresp.ErrorBody "paseo no activo"
// @Router /api/tracking/trips/{tripID}/location [post]
func saveLocationHandler(svc *Service, lookup TripLookup, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "tracking.save_location"

		claims, ok := middleware.GetClaims(r)
		if !ok {
			httpresp.WriteJSON(w, http.StatusUnauthorized, httpresp.ErrorBody{Error: "unauthorized"})
			return
		}
		tripID := chi.URLParam(r, "tripID")
		fields := logger.Fields{"trip_id": tripID, "user_id": claims.UserID}

		var req locationRequest
		if err := httpresp.DecodeJSON(r, op, &req); err != nil {
			httpresp.Error(w, log, op, err, fields)
			return
		}
		if req.Lat == nil || req.Lng == nil {
			httpresp.Error(w, log, op, apperr.Validation(op, "lat and lng required"), fields)
			return
		}

		parts, side, err := sideOf(r.Context(), lookup, tripID, claims)
		if err != nil {
			httpresp.Error(w, log, op, err, fields)
			return
		}
		if side != walkstatus.SideWalker {
			httpresp.WriteJSON(w, http.StatusForbidden, httpresp.ErrorBody{Error: "forbidden"})
			return
		}
		if !walkstatus.MapInteractiveRaw(parts.Status) {
			httpresp.Error(w, log, op, apperr.State(op, "%s", walkstatus.MapMessage(parts.Status)), fields)
			return
		}

		p, err := svc.SaveLocation(r.Context(), tripID, *req.Lat, *req.Lng)
		if err != nil {
			httpresp.Error(w, log, op, err, fields)
			return
		}
		httpresp.WriteJSON(w, http.StatusCreated, p)
	}
}
