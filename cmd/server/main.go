/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the vacation manager server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load .env and layered configuration (defaults -> YAML -> env)
  3. Initialize SQLite store and bootstrap the admin account
  4. Build the scoring calculator with the default weight table
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  Path to a YAML config file (overrides VACATION_CONFIG)

ENVIRONMENT:
  VACATION_* variables override file values, e.g. VACATION_ADDR,
  VACATION_DATABASE_PATH, VACATION_JWT_SECRET. A .env file in the
  working directory is loaded first.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server

  # Run with explicit config
  ./server -config=./config.yaml

  # Run on a different port with an ephemeral database
  VACATION_ADDR=:3000 VACATION_DATABASE_PATH=":memory:" ./server

SEE ALSO:
  - api/server.go: Router configuration
  - config/loader.go: Configuration layering
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/warp/vacation-manager/api"
	"github.com/warp/vacation-manager/auth"
	"github.com/warp/vacation-manager/config"
	"github.com/warp/vacation-manager/scoring"
	"github.com/warp/vacation-manager/store/sqlite"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	// .env is optional; real env vars still win inside config.Load.
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("log_level", cfg.LogLevel).Warn("unknown log level, using info")
	}

	// Initialize store
	store, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer store.Close()

	// Bootstrap the admin account so a fresh database is usable.
	adminHash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.WithError(err).Fatal("failed to hash admin password")
	}
	if err := store.EnsureUser(context.Background(), cfg.AdminUsername, adminHash); err != nil {
		log.WithError(err).Fatal("failed to bootstrap admin account")
	}

	weights := scoring.DefaultWeights()
	if err := weights.Validate(); err != nil {
		log.WithError(err).Fatal("invalid month weight table")
	}

	authService := auth.NewService([]byte(cfg.JWTSecret), cfg.SessionTTL())
	handler := api.NewHandler(store, authService, scoring.NewCalculator(weights), log)
	router := api.NewRouter(handler, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.WithField("addr", cfg.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server stopped")
}
