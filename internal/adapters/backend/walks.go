package backend

import (
	"context"
	"net/http"
	"strings"

	"pet-walks/internal/domain/walks"
	"pet-walks/internal/domain/walkstatus"
	"pet-walks/internal/platform/apperr"
)

var walkFields = []string{"id", "walkerId", "status"}

// WalksRepo implementa walks.Repository. El estado se normaliza al enum; un
// estado que no se reconoce es un error de protocolo.
type WalksRepo struct {
	c *Client
}

func NewWalksRepo(c *Client) *WalksRepo { return &WalksRepo{c: c} }

func (r *WalksRepo) Get(ctx context.Context, id string) (walks.Walk, error) {
	return r.one(ctx, call{
		Method:   http.MethodGet,
		Path:     "/walks/" + seg(id),
		Endpoint: "/walks/{id}",
	})
}

func (r *WalksRepo) ListByWalker(ctx context.Context, walkerID string) ([]walks.Walk, error) {
	return r.list(ctx, "/walks/walker/"+seg(walkerID), "/walks/walker/{walkerId}")
}

func (r *WalksRepo) ListByOwner(ctx context.Context, ownerID string) ([]walks.Walk, error) {
	return r.list(ctx, "/walks/owner/"+seg(ownerID), "/walks/owner/{ownerId}")
}

func (r *WalksRepo) Create(ctx context.Context, w walks.NewWalk) (walks.Walk, error) {
	return r.one(ctx, call{
		Method:   http.MethodPost,
		Path:     "/walks",
		Endpoint: "/walks",
		Body:     w,
	})
}

func (r *WalksRepo) UpdateStatus(ctx context.Context, id string, status walkstatus.Status) (walks.Walk, error) {
	return r.one(ctx, call{
		Method:   http.MethodPut,
		Path:     "/walks/" + seg(id) + "/status",
		Endpoint: "/walks/{id}/status",
		Body:     StatusUpdate{Status: string(status)},
	})
}

func (r *WalksRepo) Pay(ctx context.Context, id string, p walks.Payment) (walks.Walk, error) {
	return r.one(ctx, call{
		Method:   http.MethodPost,
		Path:     "/walks/" + seg(id) + "/payment",
		Endpoint: "/walks/{id}/payment",
		Body:     p,
	})
}

func (r *WalksRepo) one(ctx context.Context, in call) (walks.Walk, error) {
	in.Required = walkFields
	var out walks.Walk
	if err := r.c.do(ctx, in, &out); err != nil {
		return walks.Walk{}, err
	}
	if err := normalizeStatus(strings.ToLower(in.Method)+" "+in.Endpoint, &out); err != nil {
		return walks.Walk{}, err
	}
	return out, nil
}

func (r *WalksRepo) list(ctx context.Context, path, endpoint string) ([]walks.Walk, error) {
	out := []walks.Walk{}
	err := r.c.do(ctx, call{
		Method:   http.MethodGet,
		Path:     path,
		Endpoint: endpoint,
		Required: walkFields,
		List:     true,
	}, &out)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if err := normalizeStatus("get "+endpoint, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func normalizeStatus(op string, w *walks.Walk) error {
	st, ok := walkstatus.Parse(string(w.Status))
	if !ok {
		return apperr.Protocol(op, "walk %s has unknown status %q", w.ID, w.Status)
	}
	w.Status = st
	return nil
}
