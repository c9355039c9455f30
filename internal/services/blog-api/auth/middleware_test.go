package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	authcore "github.com/NordCoder/Bloggerus/internal/auth"
	"github.com/NordCoder/Bloggerus/internal/domain/user"
)

func newTestRouter(t *testing.T, codec *authcore.Codec, users user.Repo) *mux.Router {
	t.Helper()
	r := mux.NewRouter()
	sec := r.PathPrefix("/").Subrouter()
	sec.Use(Middleware(codec, users, zap.NewNop()))
	sec.HandleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerFrom(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(caller.Username))
	}).Methods(http.MethodGet)
	return r
}

func TestMiddleware_ValidToken(t *testing.T) {
	uc, repo, codec := newTestUsecase(t, nil)
	ctx := context.Background()

	_, err := uc.Register(ctx, "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	_, access, _, err := uc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)

	router := newTestRouter(t, codec, repo)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "alice", rec.Body.String())
}

func TestMiddleware_MissingOrMalformedHeader(t *testing.T) {
	_, repo, codec := newTestUsecase(t, nil)
	router := newTestRouter(t, codec, repo)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer  "} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "header=%q", header)
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := t0
	uc, repo, codec := newTestUsecase(t, func() time.Time { return now })
	ctx := context.Background()

	_, err := uc.Register(ctx, "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	_, access, _, err := uc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)

	now = t0.Add(time.Hour)
	router := newTestRouter(t, codec, repo)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// A token whose subject no longer resolves to a user is a 404, not a 401.
func TestMiddleware_UnknownSubject(t *testing.T) {
	_, repo, codec := newTestUsecase(t, nil)
	router := newTestRouter(t, codec, repo)

	tok, err := codec.IssueAccess("ghost")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
