package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/crucial707/bloglet/internal/auth"
	"github.com/crucial707/bloglet/internal/models"
	"github.com/crucial707/bloglet/internal/repo"
)

type key string

const userKey key = "user"

// SessionCookie is the name of the cookie holding the signed session token.
const SessionCookie = "bloglet_session"

// ResolveUser resolves the session cookie to a user record once per request
// and stores it in the request context for every handler downstream. A
// missing cookie, an invalid or expired token, or a token for a user that no
// longer exists all resolve to anonymous rather than an error, so stale
// sessions degrade gracefully.
func ResolveUser(signer *auth.Signer, users *repo.UserRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := signer.Verify(cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					next.ServeHTTP(w, r)
					return
				}
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a context carrying the resolved session user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFrom returns the session user resolved for this request, if any.
func UserFrom(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}
