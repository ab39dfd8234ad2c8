package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmelnyk-dev/salonbook/internal/httpx"
	"github.com/dmelnyk-dev/salonbook/internal/model"
	"github.com/dmelnyk-dev/salonbook/internal/storage"
)

type ctxKey int

const ctxKeyUser ctxKey = iota

// UserFromContext returns the authenticated account placed by RequireUser.
func UserFromContext(ctx context.Context) (model.User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(model.User)
	return u, ok
}

// RequireUser resolves the bearer token to a stored account and injects it
// into the request context. A missing, malformed or unresolvable credential
// is a 401; account state is not inspected here.
func RequireUser(signer *Signer, users storage.UserRepository) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				httpx.Unauthorized(w, "missing credentials")
				return
			}
			email, err := signer.Verify(raw)
			if err != nil {
				httpx.Unauthorized(w, "could not validate credentials")
				return
			}
			user, err := users.GetByEmail(r.Context(), email)
			if err != nil {
				if storage.IsNotFound(err) {
					httpx.Unauthorized(w, "could not validate credentials")
					return
				}
				httpx.Internal(w)
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireActive rejects authenticated but deactivated accounts. Runs after
// RequireUser.
func RequireActive(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			httpx.Unauthorized(w, "missing credentials")
			return
		}
		if !user.IsActive {
			httpx.Forbidden(w, "inactive user")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects non-admin accounts. Runs after RequireUser.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			httpx.Unauthorized(w, "missing credentials")
			return
		}
		if !user.IsAdmin {
			httpx.Forbidden(w, "admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
