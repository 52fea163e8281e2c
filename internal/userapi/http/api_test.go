package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	httpapi "github.com/kamelin22/user-api/internal/userapi/http"
	"github.com/kamelin22/user-api/internal/userapi/service"
	"github.com/kamelin22/user-api/internal/userapi/store/drivers/sqlite"
	"github.com/kamelin22/user-api/pkg/cryptox"
	"github.com/kamelin22/user-api/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "user-api-test"

func newTestRouter(t *testing.T) *httpapi.Router {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewHS256([]byte("a-long-unguessable-test-secret"), testIssuer)
	require.NoError(t, err)

	logger := jsonDiscardLogger()

	router := httpapi.NewRouter(signer, "test", st, logger)
	router.UserService = &service.UserService{Store: st, Hasher: cryptox.Argon2id{}}
	router.TokenService = &service.TokenService{Signer: signer, Issuer: testIssuer, TTL: time.Hour}
	router.FavouritesService = &service.FavouritesService{Store: st}
	router.HistoryService = &service.HistoryService{Store: st}
	router.ApplyRoutes()

	return router
}

// jsonDiscardLogger keeps request logging out of test output.
func jsonDiscardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func doJSON(t *testing.T, router *httpapi.Router, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

type credentials struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type loginResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		ID       string `json:"id"`
		UserName string `json:"userName"`
	} `json:"user"`
}

func TestUserAPIScenario(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	// Register alice.
	rec := doJSON(t, router, http.MethodPost, "/api/user/register", "",
		credentials{UserName: "alice", Password: "s3cret"})
	require.Equal(t, http.StatusOK, rec.Code)

	// A second registration with the same name fails.
	rec = doJSON(t, router, http.MethodPost, "/api/user/register", "",
		credentials{UserName: "alice", Password: "other"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Login succeeds and echoes the identity claims.
	rec = doJSON(t, router, http.MethodPost, "/api/user/login", "",
		credentials{UserName: "alice", Password: "s3cret"})
	require.Equal(t, http.StatusOK, rec.Code)

	login := decodeBody[loginResult](t, rec)
	require.Equal(t, "login successful", login.Message)
	require.NotEmpty(t, login.Token)
	require.Equal(t, "alice", login.User.UserName)
	require.NotEmpty(t, login.User.ID)

	// Wrong password and unknown username give identical generic failures.
	wrongPw := doJSON(t, router, http.MethodPost, "/api/user/login", "",
		credentials{UserName: "alice", Password: "wrong"})
	noUser := doJSON(t, router, http.MethodPost, "/api/user/login", "",
		credentials{UserName: "mallory", Password: "whatever"})
	require.Equal(t, http.StatusUnprocessableEntity, wrongPw.Code)
	require.Equal(t, http.StatusUnprocessableEntity, noUser.Code)
	require.Equal(t, wrongPw.Body.String(), noUser.Body.String())

	// Favourites require the token; without one the handler is never hit.
	rec = doJSON(t, router, http.MethodGet, "/api/user/favourites", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/user/favourites", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeBody[[]string](t, rec))

	rec = doJSON(t, router, http.MethodPut, "/api/user/favourites/tt0111161", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"tt0111161"}, decodeBody[[]string](t, rec))

	rec = doJSON(t, router, http.MethodDelete, "/api/user/favourites/tt0111161", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeBody[[]string](t, rec))
}

func TestHistoryEndpoints(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/user/register", "",
		credentials{UserName: "alice", Password: "s3cret"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/user/login", "",
		credentials{UserName: "alice", Password: "s3cret"})
	require.Equal(t, http.StatusOK, rec.Code)
	token := decodeBody[loginResult](t, rec).Token

	type entry struct {
		ID        string `json:"id"`
		Query     string `json:"query"`
		CreatedAt string `json:"createdAt"`
	}

	// Missing queryString is a 400.
	rec = doJSON(t, router, http.MethodPut, "/api/user/history", token, map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/user/history", token,
		map[string]string{"queryString": "title=matrix"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/user/history", token,
		map[string]string{"queryString": "title=alien"})
	require.Equal(t, http.StatusOK, rec.Code)

	entries := decodeBody[[]entry](t, rec)
	require.Len(t, entries, 2)
	require.Equal(t, "title=alien", entries[0].Query)

	// Timestamps are RFC 3339.
	_, err := time.Parse(time.RFC3339, entries[0].CreatedAt)
	require.NoError(t, err)

	rec = doJSON(t, router, http.MethodDelete, "/api/user/history/"+entries[0].ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries = decodeBody[[]entry](t, rec)
	require.Len(t, entries, 1)
	require.Equal(t, "title=matrix", entries[0].Query)

	// History is scoped to the token's identity, not shared.
	rec = doJSON(t, router, http.MethodPost, "/api/user/register", "",
		credentials{UserName: "bob", Password: "hunter2"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/user/login", "",
		credentials{UserName: "bob", Password: "hunter2"})
	require.Equal(t, http.StatusOK, rec.Code)
	bobToken := decodeBody[loginResult](t, rec).Token

	rec = doJSON(t, router, http.MethodGet, "/api/user/history", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeBody[[]entry](t, rec))
}

func TestSystemEndpoints(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
