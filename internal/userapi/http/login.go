package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kamelin22/user-api/internal/userapi/service"
	"github.com/kamelin22/user-api/pkg/httpx"
	"github.com/kamelin22/user-api/pkg/slogx"
)

type LoginHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
}

type loginResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	User    loginUserInfo `json:"user"`
}

// loginUserInfo echoes the claims the token carries, nothing more.
type loginUserInfo struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
}

// ServeHTTP handles POST /api/user/login. Wrong password and unknown user
// produce byte-identical 422 responses.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusUnprocessableEntity, "invalid username or password")
		return
	}

	user, err := h.UserService.Login(ctx, req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Info("login rejected", "username", req.UserName)
			httpx.WriteMessage(w, http.StatusUnprocessableEntity, "invalid username or password")
			return
		}
		log.Error("login failed", "err", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := h.TokenService.Issue(user)
	if err != nil {
		log.Error("token issue failed", "user_id", user.ID, "err", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info("login successful", "user_id", user.ID)
	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		Message: "login successful",
		Token:   token,
		User:    loginUserInfo{ID: user.ID, UserName: user.Username},
	})
}
