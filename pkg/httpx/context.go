package httpx

import (
	"context"

	"github.com/kamelin22/user-api/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID   ctxKey = "user_id"
	CtxKeyUsername ctxKey = "username"
	CtxKeyClaims   ctxKey = "claims"
)

// Identity is the verified caller identity exposed to handlers for the
// duration of a request.
type Identity struct {
	UserID   string
	Username string
}

func contextWithIdentity(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyUsername, c.Username)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// IdentityFromContext returns the authenticated identity, if any. The second
// return is false on unauthenticated requests.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(string)
	if !ok || id == "" {
		return Identity{}, false
	}
	name, _ := ctx.Value(CtxKeyUsername).(string)
	return Identity{UserID: id, Username: name}, true
}

func userIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return id
	}
	return ""
}
