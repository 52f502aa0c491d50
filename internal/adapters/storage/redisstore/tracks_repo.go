// Package redisstore guarda las muestras GPS de los paseos: una lista por paseo
// con el recorrido y un índice GEO con la última posición conocida.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pet-walks/internal/domain/tracking"

	"github.com/redis/go-redis/v9"
)

const (
	routeKeyPrefix = "walk:route:"
	lastPosKey     = "walk:last"

	// DefaultRouteTTL: los recorridos de paseos terminados no se consultan
	// pasado un día.
	DefaultRouteTTL = 24 * time.Hour
)

// Client es el subconjunto de go-redis que usa el store.
type Client interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	GeoAdd(ctx context.Context, key string, geoLocation ...*redis.GeoLocation) *redis.IntCmd
}

type TrackRepo struct {
	client Client
	ttl    time.Duration
}

func NewClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: password})
}

func NewTrackRepo(client Client, ttl time.Duration) *TrackRepo {
	if ttl <= 0 {
		ttl = DefaultRouteTTL
	}
	return &TrackRepo{client: client, ttl: ttl}
}

func (r *TrackRepo) Append(ctx context.Context, tripID string, rec tracking.Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	key := routeKeyPrefix + tripID
	if err := r.client.RPush(ctx, key, b).Err(); err != nil {
		return fmt.Errorf("rpush %s: %w", key, err)
	}
	if err := r.client.Expire(ctx, key, r.ttl).Err(); err != nil {
		return fmt.Errorf("expire %s: %w", key, err)
	}

	// la última posición es informativa; si falla no se pierde la muestra
	_ = r.client.GeoAdd(ctx, lastPosKey, &redis.GeoLocation{Name: tripID, Latitude: rec.Lat, Longitude: rec.Lng}).Err()
	return nil
}

func (r *TrackRepo) Route(ctx context.Context, tripID string) ([]tracking.Record, error) {
	key := routeKeyPrefix + tripID
	raw, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", key, err)
	}

	out := make([]tracking.Record, 0, len(raw))
	for _, s := range raw {
		var rec tracking.Record
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			return nil, fmt.Errorf("decode record of %s: %w", key, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
