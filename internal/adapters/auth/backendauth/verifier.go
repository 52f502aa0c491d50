// Package backendauth verifica tokens contra el backend remoto, que es quien
// emite las sesiones. El BFF solo reenvía.
package backendauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pet-walks/internal/adapters/backend"
	"pet-walks/internal/ports/auth"
)

var (
	ErrTokenEmpty    = errors.New("token is empty")
	ErrNotConfigured = errors.New("auth verifier not configured")
)

// IdentitySource resuelve un token a una identidad.
type IdentitySource interface {
	Me(ctx context.Context, token string) (backend.Identity, error)
}

type cached struct {
	claims    auth.Claims
	expiresAt time.Time
}

// Verifier implementa auth.AuthVerifier. Con ttl > 0 guarda las
// identidades resueltas para no pegarle al backend en cada request.
type Verifier struct {
	source IdentitySource
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	cache map[string]cached
}

func NewVerifier(source IdentitySource, ttl time.Duration) *Verifier {
	return &Verifier{
		source: source,
		ttl:    ttl,
		now:    time.Now,
		cache:  make(map[string]cached),
	}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.source == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	if c, ok := v.lookup(token); ok {
		return c, nil
	}

	id, err := v.source.Me(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("verify token: %w", err)
	}

	claims := auth.Claims{
		UserID: strings.TrimSpace(id.ID),
		Role:   auth.ParseRole(strings.ToLower(strings.TrimSpace(id.Role))),
		Name:   strings.TrimSpace(id.Name),
		Token:  token,
	}
	if claims.UserID == "" {
		return auth.Claims{}, errors.New("identity missing user id")
	}

	v.store(token, claims)
	return claims, nil
}

func (v *Verifier) lookup(token string) (auth.Claims, bool) {
	if v.ttl <= 0 {
		return auth.Claims{}, false
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	c, ok := v.cache[token]
	if !ok {
		return auth.Claims{}, false
	}
	if !v.now().Before(c.expiresAt) {
		delete(v.cache, token)
		return auth.Claims{}, false
	}
	return c.claims, true
}

func (v *Verifier) store(token string, claims auth.Claims) {
	if v.ttl <= 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cache[token] = cached{claims: claims, expiresAt: v.now().Add(v.ttl)}
}
