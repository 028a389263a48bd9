package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/crucial707/bloglet/internal/auth"
	"github.com/crucial707/bloglet/internal/middleware"
	"github.com/crucial707/bloglet/internal/repo"
)

// ==========================
// AuthHandler
// ==========================
type AuthHandler struct {
	Users  *repo.UserRepo
	Signer *auth.Signer

	// CookieMaxAge is the session cookie lifetime in seconds; keep it in
	// step with the signer's token lifetime.
	CookieMaxAge int

	// SecureCookies marks session cookies Secure (set when serving HTTPS).
	SecureCookies bool
}

// ==========================
// Register (GET form, POST create account)
// ==========================

func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "register.html", pageData(r, nil))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	var message string
	switch {
	case username == "":
		message = "Username is required."
	case password == "":
		message = "Password is required."
	default:
		exists, err := h.Users.UsernameExists(r.Context(), username)
		if err != nil {
			serverError(w, r, err)
			return
		}
		if exists {
			message = fmt.Sprintf("User %s is already registered.", username)
		}
	}
	if message != "" {
		renderTemplate(w, "register.html", pageData(r, map[string]interface{}{
			"Error":    message,
			"Username": username,
		}))
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		serverError(w, r, err)
		return
	}

	if _, err := h.Users.Create(r.Context(), username, hash); err != nil {
		// The existence check above races with concurrent registrations;
		// the unique constraint is the backstop.
		if errors.Is(err, repo.ErrDuplicateUsername) {
			renderTemplate(w, "register.html", pageData(r, map[string]interface{}{
				"Error":    fmt.Sprintf("User %s is already registered.", username),
				"Username": username,
			}))
			return
		}
		serverError(w, r, err)
		return
	}

	// Registration does not establish a session; the user proceeds to login.
	http.Redirect(w, r, "/auth/login", http.StatusFound)
}

// ==========================
// Login (GET form, POST establish session)
// ==========================

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "login.html", pageData(r, nil))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	user, err := h.Users.GetByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			renderTemplate(w, "login.html", pageData(r, map[string]interface{}{
				"Error":    "Incorrect username.",
				"Username": username,
			}))
			return
		}
		serverError(w, r, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		renderTemplate(w, "login.html", pageData(r, map[string]interface{}{
			"Error":    "Incorrect password.",
			"Username": username,
		}))
		return
	}

	token, err := h.Signer.Sign(user.ID)
	if err != nil {
		serverError(w, r, err)
		return
	}

	// Setting the cookie replaces any prior session outright.
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   h.CookieMaxAge,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	next := r.URL.Query().Get("next")
	if next == "" || !strings.HasPrefix(next, "/") {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusFound)
}

// ==========================
// Logout
// ==========================

// Logout clears the session cookie unconditionally; logging out twice is a no-op.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}
