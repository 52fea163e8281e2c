// Package http wires the API routes. Handler packages stay thin: decode,
// call a service, encode.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/kamelin22/user-api/internal/userapi/service"
	"github.com/kamelin22/user-api/internal/userapi/store"
	"github.com/kamelin22/user-api/pkg/httpx"
	"github.com/kamelin22/user-api/pkg/jwtx"
	"github.com/kamelin22/user-api/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	UserService       *service.UserService
	TokenService      *service.TokenService
	FavouritesService *service.FavouritesService
	HistoryService    *service.HistoryService
}

func NewRouter(verifier jwtx.Verifier, buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Global middleware chain: request logging first, then CORS so even
	// rejected requests carry the headers browsers need.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerFavourites()
	r.registerHistory()
	r.registerSystem()
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	registerHandler := &RegisterHandler{UserService: r.UserService}
	loginHandler := &LoginHandler{
		UserService:  r.UserService,
		TokenService: r.TokenService,
	}

	// Credential endpoints get the strict per-IP limit to slow brute force.
	r.Mux.Handle("POST /api/user/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/user/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerFavourites() {
	h := &FavouritesHandler{FavouritesService: r.FavouritesService}

	// Every collection route passes the bearer gate before any handler code
	// runs; the rate limit keys on the authenticated user.
	secure := func(handler http.Handler) http.Handler {
		return httpx.Chain(handler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /api/user/favourites", secure(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("PUT /api/user/favourites/{id}", secure(http.HandlerFunc(h.HandleAdd)))
	r.Mux.Handle("DELETE /api/user/favourites/{id}", secure(http.HandlerFunc(h.HandleRemove)))
}

func (r *Router) registerHistory() {
	h := &HistoryHandler{HistoryService: r.HistoryService}

	secure := func(handler http.Handler) http.Handler {
		return httpx.Chain(handler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /api/user/history", secure(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("PUT /api/user/history", secure(http.HandlerFunc(h.HandleAdd)))
	r.Mux.Handle("DELETE /api/user/history/{id}", secure(http.HandlerFunc(h.HandleRemove)))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
