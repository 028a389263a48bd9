package handlers

import (
	"log/slog"
	"net/http"
)

// errMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const errMessageInternal = "internal server error"

// serverError logs a store or rendering failure and terminates the request
// with a 500. Store errors are fatal for the request; there is no retry.
func serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err)
	http.Error(w, errMessageInternal, http.StatusInternalServerError)
}
