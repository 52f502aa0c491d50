package tracking

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/platform/metrics"
	"pet-walks/internal/platform/timeutil"
)

type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

func NewService(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = timeutil.LoadLocation("")
	}
	return &Service{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

// GetRoute devuelve el recorrido en orden cronológico. Las muestras sin
// dirección geocodificada muestran las coordenadas.
func (s *Service) GetRoute(ctx context.Context, tripID string) ([]Point, error) {
	tripID = strings.TrimSpace(tripID)
	if tripID == "" {
		return nil, invalid("tracking.route", "trip id required")
	}

	records, err := s.repo.Route(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("get route of trip %s: %w", tripID, err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].RecordedAt.Before(records[j].RecordedAt)
	})

	out := make([]Point, 0, len(records))
	for _, r := range records {
		out = append(out, s.toPoint(r))
	}
	return out, nil
}

// SaveLocation valida rangos antes de enviar la muestra.
func (s *Service) SaveLocation(ctx context.Context, tripID string, lat, lng float64) (Point, error) {
	const op = "tracking.save_location"

	tripID = strings.TrimSpace(tripID)
	switch {
	case tripID == "":
		return Point{}, invalid(op, "trip id required")
	case math.IsNaN(lat) || lat < -90 || lat > 90:
		return Point{}, invalid(op, "latitud fuera de rango [-90, 90]: %v", lat)
	case math.IsNaN(lng) || lng < -180 || lng > 180:
		return Point{}, invalid(op, "longitud fuera de rango [-180, 180]: %v", lng)
	}

	rec, err := s.repo.SaveLocation(ctx, tripID, NewLocation{
		Lat:        lat,
		Lng:        lng,
		RecordedAt: s.now().UTC(),
	})
	if err != nil {
		return Point{}, fmt.Errorf("save location of trip %s: %w", tripID, err)
	}
	return s.toPoint(rec), nil
}

func (s *Service) GetAvailability(ctx context.Context, tripID string) (Availability, error) {
	tripID = strings.TrimSpace(tripID)
	if tripID == "" {
		return Availability{}, invalid("tracking.availability", "trip id required")
	}
	a, err := s.repo.Availability(ctx, tripID)
	if err != nil {
		return Availability{}, fmt.Errorf("get map availability of trip %s: %w", tripID, err)
	}
	return a, nil
}

func (s *Service) toPoint(r Record) Point {
	addr := strings.TrimSpace(r.Address)
	if addr == "" {
		addr = CoordinateAddress(r.Lat, r.Lng)
	}
	return Point{
		ID:         r.ID,
		Lat:        r.Lat,
		Lng:        r.Lng,
		Address:    addr,
		RecordedAt: r.RecordedAt,
		Time:       timeutil.ClockTime(r.RecordedAt, s.loc),
	}
}

// CoordinateAddress es la dirección de respaldo: "lat, lng" con 6 decimales.
func CoordinateAddress(lat, lng float64) string {
	return fmt.Sprintf("%.6f, %.6f", lat, lng)
}

func invalid(op, format string, args ...any) error {
	metrics.ValidationFailuresTotal.WithLabelValues("tracking").Inc()
	return apperr.Validation(op, format, args...)
}
