package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/crucial707/bloglet/internal/auth"
	"github.com/crucial707/bloglet/internal/config"
	"github.com/crucial707/bloglet/internal/handlers"
	"github.com/crucial707/bloglet/internal/middleware"
	"github.com/crucial707/bloglet/internal/repo"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires repositories, handlers, and the middleware chain into the
// application's HTTP handler.
func NewRouter(cfg config.Config, database *sql.DB) http.Handler {
	users := repo.NewUserRepo(database)
	posts := repo.NewPostRepo(database)

	ttl := time.Duration(cfg.SessionExpireHours) * time.Hour
	signer := auth.NewSigner([]byte(cfg.SessionSecret), ttl)

	authHandler := &handlers.AuthHandler{
		Users:         users,
		Signer:        signer,
		CookieMaxAge:  int(ttl.Seconds()),
		SecureCookies: cfg.Env == "prod",
	}
	blogHandler := &handlers.BlogHandler{Posts: posts}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecurityHeaders(cfg.Env == "prod"))
	r.Use(middleware.Prometheus)
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
	r.Use(middleware.ResolveUser(signer, users))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public
	r.Get("/", blogHandler.Index)
	r.Route("/auth", func(r chi.Router) {
		r.Get("/register", authHandler.RegisterForm)
		r.Post("/register", authHandler.Register)
		r.Get("/login", authHandler.LoginForm)
		r.Post("/login", authHandler.Login)
		r.Get("/logout", authHandler.Logout)
	})

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/create", blogHandler.CreateForm)
		r.Post("/create", blogHandler.Create)
		r.Get("/{id}/update", blogHandler.UpdateForm)
		r.Post("/{id}/update", blogHandler.Update)
		r.Post("/{id}/delete", blogHandler.Delete)
	})

	return r
}
