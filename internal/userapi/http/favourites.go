package http

import (
	"net/http"

	"github.com/kamelin22/user-api/internal/userapi/service"
	"github.com/kamelin22/user-api/pkg/httpx"
	"github.com/kamelin22/user-api/pkg/slogx"
)

type FavouritesHandler struct {
	FavouritesService *service.FavouritesService
}

func (h *FavouritesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ident, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		writeMissingIdentity(w)
		return
	}

	items, err := h.FavouritesService.List(r.Context(), ident.UserID)
	if err != nil {
		writeCollectionError(w, r, "list favourites", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

func (h *FavouritesHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ident, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		writeMissingIdentity(w)
		return
	}

	items, err := h.FavouritesService.Add(r.Context(), ident.UserID, r.PathValue("id"))
	if err != nil {
		writeCollectionError(w, r, "add favourite", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

func (h *FavouritesHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ident, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		writeMissingIdentity(w)
		return
	}

	items, err := h.FavouritesService.Remove(r.Context(), ident.UserID, r.PathValue("id"))
	if err != nil {
		writeCollectionError(w, r, "remove favourite", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

// writeMissingIdentity answers requests that somehow pass the authn gate
// without an identity in context. Should not happen with routes wired
// through AuthnMiddleware.
func writeMissingIdentity(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
}

func writeCollectionError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slogx.FromContext(r.Context()).Error(op+" failed", "err", err)
	httpx.WriteJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": op + " failed"})
}
