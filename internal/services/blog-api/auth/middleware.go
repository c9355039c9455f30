package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/NordCoder/Bloggerus/internal/auth"
	"github.com/NordCoder/Bloggerus/internal/domain/user"
	"github.com/NordCoder/Bloggerus/internal/repository/postgres"
	"github.com/NordCoder/Bloggerus/internal/services/blog-api/httpx"
)

type callerKey struct{}

// CallerFrom returns the authenticated user injected by Middleware.
func CallerFrom(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(callerKey{}).(*user.User)
	return u, ok
}

// Middleware verifies the bearer access token and resolves its subject to a
// live user record. Expired and malformed tokens produce the same 401; a
// token whose subject no longer exists is a 404.
func Middleware(codec *auth.Codec, users user.Repo, log *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				httpx.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			claims, err := codec.VerifyAccess(raw)
			if err != nil {
				httpx.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			rec, err := users.GetByUsername(r.Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, postgres.ErrNotFound) {
					httpx.Error(w, http.StatusNotFound, "User not found")
					return
				}
				log.Error("auth lookup failed", zap.Error(err))
				httpx.Error(w, http.StatusInternalServerError, "Something went wrong")
				return
			}
			ctx := context.WithValue(r.Context(), callerKey{}, rec)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
