package memory

import (
	"context"
	"sync"

	"pet-walks/internal/domain/tracking"
)

type TrackRepo struct {
	mu     sync.RWMutex
	byTrip map[string][]tracking.Record
}

func NewTrackRepo() *TrackRepo {
	return &TrackRepo{
		byTrip: make(map[string][]tracking.Record),
	}
}

func (r *TrackRepo) Append(ctx context.Context, tripID string, rec tracking.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byTrip[tripID] = append(r.byTrip[tripID], rec)
	return nil
}

func (r *TrackRepo) Route(ctx context.Context, tripID string) ([]tracking.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]tracking.Record{}, r.byTrip[tripID]...), nil
}
