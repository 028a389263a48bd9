package middleware

import (
	"net/http"
	"net/url"
)

// RequireUser redirects anonymous requests to the login page; the wrapped
// handler never runs without a resolved session user. The original path is
// preserved in the next parameter so login can return the user to it.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFrom(r.Context()); !ok {
			http.Redirect(w, r, "/auth/login?next="+url.QueryEscape(r.URL.Path), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
