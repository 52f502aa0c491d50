package devbackend

import (
	"math"
	"net/http"

	"pet-walks/internal/adapters/backend"
	"pet-walks/internal/domain/tracking"
	"pet-walks/internal/domain/walkstatus"
	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/platform/httpresp"

	"github.com/go-chi/chi/v5"
)

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	const op = "devbackend.tracking.route"
	tripID := chi.URLParam(r, "tripId")

	if _, err := s.stores.Walks.Get(r.Context(), tripID); err != nil {
		s.fail(w, op, err)
		return
	}
	records, err := s.stores.Tracks.Route(r.Context(), tripID)
	if err != nil {
		s.fail(w, op, err)
		return
	}
	writeData(w, http.StatusOK, backend.Route{TripID: tripID, Records: records})
}

func (s *Server) saveLocation(w http.ResponseWriter, r *http.Request) {
	const op = "devbackend.tracking.location"
	tripID := chi.URLParam(r, "tripId")

	var in tracking.NewLocation
	if err := httpresp.DecodeJSON(r, op, &in); err != nil {
		s.fail(w, op, err)
		return
	}
	if math.Abs(in.Lat) > 90 || math.Abs(in.Lng) > 180 {
		s.fail(w, op, apperr.Validation(op, "coordinates out of range"))
		return
	}

	walk, err := s.stores.Walks.Get(r.Context(), tripID)
	if err != nil {
		s.fail(w, op, err)
		return
	}
	if walk.Status != walkstatus.Activo {
		s.fail(w, op, apperr.State(op, "walk %s is %q, not in progress", tripID, walk.Status))
		return
	}

	rec := tracking.Record{
		ID:         s.newID(),
		Lat:        in.Lat,
		Lng:        in.Lng,
		RecordedAt: in.RecordedAt,
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = s.now().UTC()
	}
	if err := s.stores.Tracks.Append(r.Context(), tripID, rec); err != nil {
		s.fail(w, op, err)
		return
	}
	writeData(w, http.StatusCreated, rec)
}

func (s *Server) availability(w http.ResponseWriter, r *http.Request) {
	walk, err := s.stores.Walks.Get(r.Context(), chi.URLParam(r, "tripId"))
	if err != nil {
		s.fail(w, "devbackend.tracking.availability", err)
		return
	}
	writeData(w, http.StatusOK, tracking.Availability{
		HasMap: walkstatus.TrackingVisible(walk.Status),
		Status: string(walk.Status),
	})
}
