package devbackend

import (
	"net/http"

	"pet-walks/internal/adapters/backend"
	"pet-walks/internal/domain/registrations"
	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/platform/httpresp"
	"pet-walks/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func (s *Server) createRegistration(w http.ResponseWriter, r *http.Request) {
	const op = "devbackend.registrations.create"

	var in registrations.Registration
	if err := httpresp.DecodeJSON(r, op, &in); err != nil {
		s.fail(w, op, err)
		return
	}
	if in.UserID == "" {
		s.fail(w, op, apperr.Validation(op, "userId required"))
		return
	}

	if _, ok, err := s.latestByUser(r, in.UserID); err != nil {
		s.fail(w, op, err)
		return
	} else if ok {
		s.fail(w, op, apperr.State(op, "user %s already has an application", in.UserID))
		return
	}

	if in.ID == "" {
		in.ID = s.newID()
	}
	if in.Status == "" {
		in.Status = registrations.StatusPending
	}
	if in.SubmittedAt.IsZero() {
		in.SubmittedAt = s.now().UTC()
	}
	if err := s.stores.Registrations.Create(r.Context(), in); err != nil {
		s.fail(w, op, err)
		return
	}
	writeData(w, http.StatusCreated, in)
}

func (s *Server) listRegistrations(w http.ResponseWriter, r *http.Request) {
	items, err := s.stores.Registrations.List(r.Context())
	if err != nil {
		s.fail(w, "devbackend.registrations.list", err)
		return
	}
	writeData(w, http.StatusOK, items)
}

func (s *Server) registrationsByStatus(w http.ResponseWriter, r *http.Request) {
	const op = "devbackend.registrations.by_status"
	status := registrations.Status(chi.URLParam(r, "status"))
	if !status.Valid() {
		s.fail(w, op, apperr.Validation(op, "invalid status %q", status))
		return
	}

	items, err := s.stores.Registrations.List(r.Context())
	if err != nil {
		s.fail(w, op, err)
		return
	}
	out := make([]registrations.Registration, 0)
	for _, reg := range items {
		if reg.Status == status {
			out = append(out, reg)
		}
	}
	writeData(w, http.StatusOK, out)
}

func (s *Server) registrationByUser(w http.ResponseWriter, r *http.Request) {
	const op = "devbackend.registrations.by_user"
	uid := chi.URLParam(r, "userId")

	reg, ok, err := s.latestByUser(r, uid)
	if err != nil {
		s.fail(w, op, err)
		return
	}
	if !ok {
		s.fail(w, op, apperr.NotFound(op, "no application for user %s", uid))
		return
	}
	writeData(w, http.StatusOK, reg)
}

func (s *Server) getRegistration(w http.ResponseWriter, r *http.Request) {
	reg, err := s.stores.Registrations.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "devbackend.registrations.get", err)
		return
	}
	writeData(w, http.StatusOK, reg)
}

func (s *Server) updateRegistration(w http.ResponseWriter, r *http.Request) {
	const op = "devbackend.registrations.update"
	id := chi.URLParam(r, "id")

	var in registrations.Registration
	if err := httpresp.DecodeJSON(r, op, &in); err != nil {
		s.fail(w, op, err)
		return
	}
	if !in.Status.Valid() {
		s.fail(w, op, apperr.Validation(op, "invalid status %q", in.Status))
		return
	}

	current, err := s.stores.Registrations.Get(r.Context(), id)
	if err != nil {
		s.fail(w, op, err)
		return
	}
	if current.Status == registrations.StatusApproved {
		s.fail(w, op, apperr.State(op, "registration %s is already approved", current.ID))
		return
	}
	in.ID = current.ID
	in.UserID = current.UserID
	in.SubmittedAt = current.SubmittedAt
	if err := s.stores.Registrations.Update(r.Context(), in); err != nil {
		s.fail(w, op, err)
		return
	}
	writeData(w, http.StatusOK, in)
}

func (s *Server) deleteRegistration(w http.ResponseWriter, r *http.Request) {
	if err := s.stores.Registrations.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, "devbackend.registrations.delete", err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

func (s *Server) registrationStatistics(w http.ResponseWriter, r *http.Request) {
	items, err := s.stores.Registrations.List(r.Context())
	if err != nil {
		s.fail(w, "devbackend.registrations.statistics", err)
		return
	}
	writeData(w, http.StatusOK, registrations.ComputeStats(items, s.now()))
}

func (s *Server) promote(w http.ResponseWriter, r *http.Request) {
	const op = "devbackend.registrations.promote"
	uid := chi.URLParam(r, "userId")

	if err := s.stores.Users.SetRole(r.Context(), uid, string(auth.RoleWalker)); err != nil {
		s.fail(w, op, err)
		return
	}
	writeData(w, http.StatusOK, backend.Promotion{UserID: uid, Role: string(auth.RoleWalker)})
}

func (s *Server) latestByUser(r *http.Request, uid string) (registrations.Registration, bool, error) {
	items, err := s.stores.Registrations.List(r.Context())
	if err != nil {
		return registrations.Registration{}, false, err
	}
	var (
		latest registrations.Registration
		found  bool
	)
	for _, reg := range items {
		if reg.UserID != uid {
			continue
		}
		if !found || reg.SubmittedAt.After(latest.SubmittedAt) {
			latest, found = reg, true
		}
	}
	return latest, found, nil
}
