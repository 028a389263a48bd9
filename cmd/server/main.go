package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/crucial707/bloglet/internal/config"
	"github.com/crucial707/bloglet/internal/db"
	"github.com/crucial707/bloglet/internal/server"
)

func main() {

	// Load configuration
	cfg := config.Load()

	setupLogger(cfg.LogFormat)

	// Connect to database FIRST
	database, err := db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
		cfg.DBMaxOpenConns,
		cfg.DBMaxIdleConns,
	)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	slog.Info("connected to the database", "host", cfg.DBHost, "name", cfg.DBName)

	// Apply pending migrations
	url := db.URL(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)
	if err := db.Run(url); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	r := server.NewRouter(cfg, database)

	// Start server LAST
	slog.Info("starting server", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogger(format string) {
	if format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}
}
