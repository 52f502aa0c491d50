package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error. Es opcional: sin
// verifier el BFF confía en los headers de identidad (modo dev).
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
