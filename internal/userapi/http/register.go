package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kamelin22/user-api/internal/userapi/service"
	"github.com/kamelin22/user-api/pkg/httpx"
	"github.com/kamelin22/user-api/pkg/slogx"
)

type credentialsRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type RegisterHandler struct {
	UserService *service.UserService
}

// ServeHTTP handles POST /api/user/register. Failures answer 422 with a
// generic message; in particular a taken username gets the same body as any
// other rejected registration.
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusUnprocessableEntity, "unable to register user")
		return
	}

	user, err := h.UserService.Register(ctx, req.UserName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrInvalidInput):
			log.Info("registration rejected", "err", err)
			httpx.WriteMessage(w, http.StatusUnprocessableEntity, "unable to register user")
		default:
			log.Error("registration failed", "err", err)
			httpx.WriteMessage(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	log.Info("user registered", "user_id", user.ID)
	httpx.WriteMessage(w, http.StatusOK, "user "+user.Username+" successfully registered")
}
