package auth

import "context"

type ctxKey string

const claimsKey ctxKey = "claims"

func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func ClaimsFrom(ctx context.Context) (Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return Claims{}, false
	}
	c, ok := v.(Claims)
	return c, ok
}

// TokenFrom devuelve el bearer token a reenviar al backend ("" si no hay).
func TokenFrom(ctx context.Context) string {
	c, _ := ClaimsFrom(ctx)
	return c.Token
}
