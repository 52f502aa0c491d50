package devbackend

import (
	"net/http"
	"strings"

	"pet-walks/internal/adapters/backend"
	"pet-walks/internal/domain/walks"
	"pet-walks/internal/domain/walkstatus"
	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/platform/httpresp"

	"github.com/go-chi/chi/v5"
)

func (s *Server) createWalk(w http.ResponseWriter, r *http.Request) {
	const op = "devbackend.walks.create"

	var in walks.NewWalk
	if err := httpresp.DecodeJSON(r, op, &in); err != nil {
		s.fail(w, op, err)
		return
	}
	if in.OwnerID == "" || in.WalkerID == "" || len(in.PetIDs) == 0 || strings.TrimSpace(in.StartAddress) == "" {
		s.fail(w, op, apperr.Validation(op, "ownerId, walkerId, petIds and startAddress required"))
		return
	}

	walk := walks.Walk{
		ID:           s.newID(),
		OwnerID:      in.OwnerID,
		WalkerID:     in.WalkerID,
		Status:       walkstatus.Solicitado,
		ScheduledAt:  in.ScheduledAt,
		StartAddress: in.StartAddress,
		TotalPrice:   in.TotalPrice,
		PetIDs:       in.PetIDs,
		Notes:        in.Notes,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.stores.Walks.Create(r.Context(), walk); err != nil {
		s.fail(w, op, err)
		return
	}
	writeData(w, http.StatusCreated, walk)
}

func (s *Server) getWalk(w http.ResponseWriter, r *http.Request) {
	walk, err := s.stores.Walks.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "devbackend.walks.get", err)
		return
	}
	writeData(w, http.StatusOK, walk)
}

func (s *Server) walksByWalker(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "walkerId")
	s.writeWalks(w, r, func(walk walks.Walk) bool { return walk.WalkerID == id })
}

func (s *Server) walksByOwner(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "ownerId")
	s.writeWalks(w, r, func(walk walks.Walk) bool { return walk.OwnerID == id })
}

func (s *Server) writeWalks(w http.ResponseWriter, r *http.Request, keep func(walks.Walk) bool) {
	all, err := s.stores.Walks.List(r.Context())
	if err != nil {
		s.fail(w, "devbackend.walks.list", err)
		return
	}
	out := make([]walks.Walk, 0)
	for _, walk := range all {
		if keep(walk) {
			out = append(out, walk)
		}
	}
	writeData(w, http.StatusOK, out)
}

// updateWalkStatus aplica la máquina de estados y los topes del paseador.
func (s *Server) updateWalkStatus(w http.ResponseWriter, r *http.Request) {
	const op = "devbackend.walks.status"

	var in backend.StatusUpdate
	if err := httpresp.DecodeJSON(r, op, &in); err != nil {
		s.fail(w, op, err)
		return
	}
	to, ok := walkstatus.Parse(in.Status)
	if !ok {
		s.fail(w, op, apperr.Validation(op, "invalid status %q", in.Status))
		return
	}

	walk, err := s.stores.Walks.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, op, err)
		return
	}
	if !walkstatus.CanTransition(walk.Status, to) {
		s.fail(w, op, apperr.State(op, "cannot move walk from %q to %q", walk.Status, to))
		return
	}
	if err := s.checkCapacity(r, walk.WalkerID, to); err != nil {
		s.fail(w, op, err)
		return
	}

	walk.Status = to
	if err := s.stores.Walks.Update(r.Context(), walk); err != nil {
		s.fail(w, op, err)
		return
	}
	writeData(w, http.StatusOK, walk)
}

func (s *Server) checkCapacity(r *http.Request, walkerID string, to walkstatus.Status) error {
	const op = "devbackend.walks.capacity"
	if to != walkstatus.EsperandoPago && to != walkstatus.Activo {
		return nil
	}

	all, err := s.stores.Walks.List(r.Context())
	if err != nil {
		return err
	}
	var own []walks.Walk
	for _, walk := range all {
		if walk.WalkerID == walkerID {
			own = append(own, walk)
		}
	}
	agenda := walks.NewAgenda(walkerID, own, s.now())
	if to == walkstatus.EsperandoPago && !agenda.CanAccept() {
		return apperr.State(op, "walker %s reached %d accepted walks", walkerID, walks.MaxAcceptedWalks)
	}
	if to == walkstatus.Activo && !agenda.CanStart() {
		return apperr.State(op, "walker %s reached %d active walks", walkerID, walks.MaxActiveWalks)
	}
	return nil
}

func (s *Server) payWalk(w http.ResponseWriter, r *http.Request) {
	const op = "devbackend.walks.pay"

	var in walks.Payment
	if err := httpresp.DecodeJSON(r, op, &in); err != nil {
		s.fail(w, op, err)
		return
	}

	walk, err := s.stores.Walks.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, op, err)
		return
	}
	if walk.Status != walkstatus.EsperandoPago {
		s.fail(w, op, apperr.State(op, "walk %s is %q, not awaiting payment", walk.ID, walk.Status))
		return
	}
	if in.Method == "" || in.Amount+0.005 < walk.TotalPrice {
		s.fail(w, op, apperr.Validation(op, "payment does not cover %.2f", walk.TotalPrice))
		return
	}

	walk.Status = walkstatus.Agendado
	if err := s.stores.Walks.Update(r.Context(), walk); err != nil {
		s.fail(w, op, err)
		return
	}
	writeData(w, http.StatusOK, walk)
}
