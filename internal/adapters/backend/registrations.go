package backend

import (
	"context"
	"net/http"

	"pet-walks/internal/domain/registrations"
)

var registrationFields = []string{"id", "userId", "status"}

// RegistrationsRepo implementa registrations.Repository.
type RegistrationsRepo struct {
	c *Client
}

func NewRegistrationsRepo(c *Client) *RegistrationsRepo { return &RegistrationsRepo{c: c} }

func (r *RegistrationsRepo) Create(ctx context.Context, reg registrations.Registration) (registrations.Registration, error) {
	var out registrations.Registration
	err := r.c.do(ctx, call{
		Method:   http.MethodPost,
		Path:     "/walker-registrations",
		Endpoint: "/walker-registrations",
		Body:     reg,
		Required: registrationFields,
	}, &out)
	return out, err
}

func (r *RegistrationsRepo) List(ctx context.Context) ([]registrations.Registration, error) {
	return r.list(ctx, "/walker-registrations", "/walker-registrations")
}

func (r *RegistrationsRepo) ListByStatus(ctx context.Context, status registrations.Status) ([]registrations.Registration, error) {
	return r.list(ctx, "/walker-registrations/status/"+seg(string(status)), "/walker-registrations/status/{status}")
}

func (r *RegistrationsRepo) list(ctx context.Context, path, endpoint string) ([]registrations.Registration, error) {
	out := []registrations.Registration{}
	err := r.c.do(ctx, call{
		Method:   http.MethodGet,
		Path:     path,
		Endpoint: endpoint,
		Required: registrationFields,
		List:     true,
	}, &out)
	return out, err
}

func (r *RegistrationsRepo) GetByID(ctx context.Context, id string) (registrations.Registration, error) {
	return r.get(ctx, "/walker-registrations/"+seg(id), "/walker-registrations/{id}")
}

func (r *RegistrationsRepo) GetByUser(ctx context.Context, userID string) (registrations.Registration, error) {
	return r.get(ctx, "/walker-registrations/user/"+seg(userID), "/walker-registrations/user/{userId}")
}

func (r *RegistrationsRepo) get(ctx context.Context, path, endpoint string) (registrations.Registration, error) {
	var out registrations.Registration
	err := r.c.do(ctx, call{
		Method:   http.MethodGet,
		Path:     path,
		Endpoint: endpoint,
		Required: registrationFields,
	}, &out)
	return out, err
}

func (r *RegistrationsRepo) Update(ctx context.Context, reg registrations.Registration) (registrations.Registration, error) {
	var out registrations.Registration
	err := r.c.do(ctx, call{
		Method:   http.MethodPut,
		Path:     "/walker-registrations/" + seg(reg.ID),
		Endpoint: "/walker-registrations/{id}",
		Body:     reg,
		Required: registrationFields,
	}, &out)
	return out, err
}

func (r *RegistrationsRepo) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, call{
		Method:   http.MethodDelete,
		Path:     "/walker-registrations/" + seg(id),
		Endpoint: "/walker-registrations/{id}",
	}, nil)
}

// Statistics lee las estadísticas que calcula el backend. El servicio las
// calcula localmente; esto queda para comparar en el panel de admin.
func (r *RegistrationsRepo) Statistics(ctx context.Context) (registrations.Stats, error) {
	var out registrations.Stats
	err := r.c.do(ctx, call{
		Method:   http.MethodGet,
		Path:     "/walker-registrations/statistics",
		Endpoint: "/walker-registrations/statistics",
		Required: []string{"total"},
	}, &out)
	return out, err
}

func (r *RegistrationsRepo) PromoteToWalker(ctx context.Context, userID string) error {
	var out Promotion
	return r.c.do(ctx, call{
		Method:   http.MethodPost,
		Path:     "/walker-registrations/" + seg(userID) + "/promote",
		Endpoint: "/walker-registrations/{userId}/promote",
		Required: []string{"userId", "role"},
	}, &out)
}
