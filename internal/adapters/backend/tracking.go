package backend

import (
	"context"
	"net/http"

	"pet-walks/internal/domain/tracking"
)

// TrackingRepo implementa tracking.Repository.
type TrackingRepo struct {
	c *Client
}

func NewTrackingRepo(c *Client) *TrackingRepo { return &TrackingRepo{c: c} }

func (r *TrackingRepo) Route(ctx context.Context, tripID string) ([]tracking.Record, error) {
	var out Route
	err := r.c.do(ctx, call{
		Method:   http.MethodGet,
		Path:     "/walk-maps/walks/" + seg(tripID) + "/route",
		Endpoint: "/walk-maps/walks/{tripId}/route",
		Required: []string{"records"},
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Records == nil {
		return []tracking.Record{}, nil
	}
	return out.Records, nil
}

func (r *TrackingRepo) SaveLocation(ctx context.Context, tripID string, loc tracking.NewLocation) (tracking.Record, error) {
	var out tracking.Record
	err := r.c.do(ctx, call{
		Method:   http.MethodPost,
		Path:     "/walk-maps/walks/" + seg(tripID) + "/location",
		Endpoint: "/walk-maps/walks/{tripId}/location",
		Body:     loc,
		Required: []string{"id", "lat", "lng"},
	}, &out)
	return out, err
}

func (r *TrackingRepo) Availability(ctx context.Context, tripID string) (tracking.Availability, error) {
	var out tracking.Availability
	err := r.c.do(ctx, call{
		Method:   http.MethodGet,
		Path:     "/walk-maps/walks/" + seg(tripID) + "/availability",
		Endpoint: "/walk-maps/walks/{tripId}/availability",
		Required: []string{"hasMap"},
	}, &out)
	return out, err
}
