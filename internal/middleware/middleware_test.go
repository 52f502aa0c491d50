package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-walks/internal/platform/logger"
	"pet-walks/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	claims auth.Claims
	err    error
}

func (f fakeVerifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	return f.claims, f.err
}

func captureClaims(t *testing.T, h func(http.Handler) http.Handler, req *http.Request) (auth.Claims, bool) {
	t.Helper()
	var (
		got auth.Claims
		ok  bool
	)
	h(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetClaims(r)
	})).ServeHTTP(httptest.NewRecorder(), req)
	return got, ok
}

func TestAuthContext_DevHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Debug-User-ID", "walker-1")
	req.Header.Set("X-User-Role", "Walker")
	req.Header.Set("X-User-Name", "Juan")
	req.Header.Set("Authorization", "Bearer abc")

	c, ok := captureClaims(t, AuthContext(nil), req)
	require.True(t, ok)
	assert.Equal(t, "walker-1", c.UserID)
	assert.Equal(t, auth.RoleWalker, c.Role)
	assert.Equal(t, "Juan", c.Name)
	assert.Equal(t, "abc", c.Token)
}

func TestAuthContext_NoIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := captureClaims(t, AuthContext(nil), req)
	assert.False(t, ok)
}

func TestAuthContext_Verifier(t *testing.T) {
	v := fakeVerifier{claims: auth.Claims{UserID: "owner-9", Role: auth.RoleOwner}}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")

	c, ok := captureClaims(t, AuthContext(v), req)
	require.True(t, ok)
	assert.Equal(t, "owner-9", c.UserID)
	assert.Equal(t, "tok", c.Token)

	// token inválido: sigue sin claims
	_, ok = captureClaims(t, AuthContext(fakeVerifier{err: errors.New("bad")}), req)
	assert.False(t, ok)
}

func TestRecover_LogsAndReturns500(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Output: &buf})

	h := Recover(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestRequestLog_PassesThrough(t *testing.T) {
	h := RequestLog(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/y", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRequireRole(t *testing.T) {
	h := AuthContext(nil)(RequireRole(auth.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	do := func(uid, role string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if uid != "" {
			req.Header.Set("X-Debug-User-ID", uid)
		}
		if role != "" {
			req.Header.Set("X-User-Role", role)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, do("", ""))
	assert.Equal(t, http.StatusForbidden, do("u1", "owner"))
	assert.Equal(t, http.StatusNoContent, do("admin-1", "admin"))
}
