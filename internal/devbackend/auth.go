package devbackend

import (
	"errors"
	"net/http"
	"strings"

	"pet-walks/internal/adapters/backend"
	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/platform/httpresp"
	"pet-walks/internal/ports/auth"
)

// me resuelve el token de desarrollo: el token es el id del usuario. Sin rol
// guardado el usuario es dueño.
func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	const op = "devbackend.auth.me"

	token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	if token == "" {
		httpresp.WriteJSON(w, http.StatusUnauthorized, httpresp.ErrorBody{Error: "unauthorized"})
		return
	}

	role, err := s.stores.Users.Role(r.Context(), token)
	if errors.Is(err, apperr.ErrNotFound) {
		role, err = string(auth.RoleOwner), nil
	}
	if err != nil {
		s.fail(w, op, err)
		return
	}
	writeData(w, http.StatusOK, backend.Identity{ID: token, Role: role})
}
