package httpapi

import (
	"context"

	"github.com/adsrikanth11/crud-testing/internal/token"
)

type ctxKey int

const (
	claimsKey ctxKey = iota
	requestIDKey
)

func withClaims(ctx context.Context, c *token.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// claimsFromContext returns the identity attached by the mandatory
// authentication gate, if any.
func claimsFromContext(ctx context.Context) (*token.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*token.Claims)
	return c, ok
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
