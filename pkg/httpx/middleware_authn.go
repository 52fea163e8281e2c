package httpx

import (
	"net/http"
	"strings"

	"github.com/kamelin22/user-api/pkg/jwtx"
	"github.com/kamelin22/user-api/pkg/slogx"
)

// AuthnMiddleware gates protected routes behind a bearer token. The only
// accepted extraction scheme is the standard "Authorization: Bearer <token>"
// header. Missing header, malformed token, bad signature and expired token
// all produce the same 401 so callers learn nothing about why verification
// failed; the reason only goes to the logs.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("token verification failed", "err", err)
				writeBearerError(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithIdentity(ctx, claims)))
		})
	}
}

// RFC 6750-style error response for bearer auth. Deliberately identical for
// every failure mode.
func writeBearerError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
}
