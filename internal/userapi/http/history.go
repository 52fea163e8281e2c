package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/kamelin22/user-api/internal/userapi/domain"
	"github.com/kamelin22/user-api/internal/userapi/service"
	"github.com/kamelin22/user-api/pkg/httpx"
)

type HistoryHandler struct {
	HistoryService *service.HistoryService
}

type addHistoryRequest struct {
	QueryString string `json:"queryString"`
}

type historyEntryResponse struct {
	ID        string `json:"id"`
	Query     string `json:"query"`
	CreatedAt string `json:"createdAt"`
}

func (h *HistoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ident, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		writeMissingIdentity(w)
		return
	}

	entries, err := h.HistoryService.List(r.Context(), ident.UserID)
	if err != nil {
		writeCollectionError(w, r, "list history", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toHistoryResponse(entries))
}

func (h *HistoryHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ident, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		writeMissingIdentity(w)
		return
	}

	var req addHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QueryString == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "queryString is required"})
		return
	}

	entries, err := h.HistoryService.Add(r.Context(), ident.UserID, req.QueryString)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "queryString is required"})
			return
		}
		writeCollectionError(w, r, "add history", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toHistoryResponse(entries))
}

func (h *HistoryHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ident, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		writeMissingIdentity(w)
		return
	}

	entries, err := h.HistoryService.Remove(r.Context(), ident.UserID, r.PathValue("id"))
	if err != nil {
		writeCollectionError(w, r, "remove history", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toHistoryResponse(entries))
}

func toHistoryResponse(entries []domain.HistoryEntry) []historyEntryResponse {
	out := make([]historyEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyEntryResponse{
			ID:        e.ID,
			Query:     e.Query,
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
