package backend

import (
	"context"
	"net/http"
)

// Identity es el usuario dueño de un token, según el backend.
type Identity struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	Name string `json:"name"`
}

type AuthRepo struct{ c *Client }

func NewAuthRepo(c *Client) *AuthRepo { return &AuthRepo{c: c} }

// Me resuelve el token contra el backend. El token va explícito: todavía no
// hay claims en el context.
func (r *AuthRepo) Me(ctx context.Context, token string) (Identity, error) {
	var out Identity
	err := r.c.do(ctx, call{
		Method:   http.MethodGet,
		Path:     "/auth/me",
		Endpoint: "/auth/me",
		Headers:  map[string]string{"Authorization": "Bearer " + token},
		Required: []string{"id", "role"},
	}, &out)
	return out, err
}
