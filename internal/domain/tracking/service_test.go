package tracking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/platform/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	mu     sync.Mutex
	routes map[string][]Record
	avail  map[string]Availability
	calls  int

	routeErr error
}

func newTestRepo() *testRepo {
	return &testRepo{routes: map[string][]Record{}, avail: map[string]Availability{}}
}

func (r *testRepo) Route(ctx context.Context, tripID string) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.routeErr != nil {
		return nil, r.routeErr
	}
	return append([]Record(nil), r.routes[tripID]...), nil
}

func (r *testRepo) SaveLocation(ctx context.Context, tripID string, loc NewLocation) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	rec := Record{
		ID:         fmt.Sprintf("r-%d", len(r.routes[tripID])+1),
		Lat:        loc.Lat,
		Lng:        loc.Lng,
		RecordedAt: loc.RecordedAt,
	}
	r.routes[tripID] = append(r.routes[tripID], rec)
	return rec, nil
}

func (r *testRepo) Availability(ctx context.Context, tripID string) (Availability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	a, ok := r.avail[tripID]
	if !ok {
		return Availability{}, apperr.NotFound("test.availability", "trip %s not found", tripID)
	}
	return a, nil
}

func (r *testRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *testRepo) add(tripID string, rec Record) {
	r.mu.Lock()
	r.routes[tripID] = append(r.routes[tripID], rec)
	r.mu.Unlock()
}

func newTestService(repo Repository) *Service {
	return NewService(repo, timeutil.LoadLocation(timeutil.DefaultZone))
}

func TestGetRoute_ChronologicalWithCoordinateFallback(t *testing.T) {
	repo := newTestRepo()
	t0 := time.Date(2026, 4, 1, 13, 5, 0, 0, time.UTC)
	repo.routes["trip-1"] = []Record{
		{ID: "b", Lat: -34.6037, Lng: -58.3816, RecordedAt: t0.Add(time.Minute)},
		{ID: "a", Lat: -34.6, Lng: -58.38, RecordedAt: t0, Address: "Plaza de Mayo"},
	}

	points, err := newTestService(repo).GetRoute(context.Background(), "trip-1")
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, "a", points[0].ID)
	assert.Equal(t, "Plaza de Mayo", points[0].Address)
	assert.Equal(t, "10:05", points[0].Time)

	assert.Equal(t, "-34.603700, -58.381600", points[1].Address)
}

func TestGetRoute_EmptyIsEmptySlice(t *testing.T) {
	points, err := newTestService(newTestRepo()).GetRoute(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestSaveLocation_RangeValidatedBeforeNetwork(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	bad := [][2]float64{{90.0001, 0}, {-91, 0}, {0, 180.5}, {0, -181}, {math.NaN(), 0}, {0, math.NaN()}}
	for _, c := range bad {
		_, err := svc.SaveLocation(context.Background(), "trip-1", c[0], c[1])
		assert.True(t, errors.Is(err, apperr.ErrValidation), "%v", c)
	}
	assert.Equal(t, 0, repo.callCount())

	p, err := svc.SaveLocation(context.Background(), "trip-1", 90, -180)
	require.NoError(t, err)
	assert.Equal(t, "90.000000, -180.000000", p.Address)
	assert.Equal(t, 1, repo.callCount())
}

func TestGetAvailability(t *testing.T) {
	repo := newTestRepo()
	repo.avail["trip-1"] = Availability{HasMap: true, Status: "activo"}
	svc := newTestService(repo)

	a, err := svc.GetAvailability(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.True(t, a.HasMap)

	_, err = svc.GetAvailability(context.Background(), "nope")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = svc.GetAvailability(context.Background(), " ")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}
