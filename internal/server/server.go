// Package server provides the HTTP server of the TaskTracker API.
// It wires configuration, storage, services and handlers together, builds the
// chi router and manages the server lifecycle including graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/auth"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/config"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/constants"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/database"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/handlers"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/middleware"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/repository"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/service"
	"github.com/yasinhessnawi1/TaskTracker_Backend/internal/utils/ratelimit"
	"github.com/yasinhessnawi1/TaskTracker_Backend/migrations"
	"github.com/yasinhessnawi1/TaskTracker_Backend/scripts"
)

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	AuthHandler   *handlers.AuthHandler
	UserHandler   *handlers.UserHandler
	TaskHandler   *handlers.TaskHandler
	HealthHandler *handlers.HealthHandler
}

// AuthProviders contains the token service and password hasher.
type AuthProviders struct {
	Tokens *auth.TokenService
	Hasher *auth.Hasher
}

// Server represents the API server.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Db provides database access
	Db *database.Pool

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	router        chi.Router
	authProviders *AuthProviders
	metrics       *middleware.Metrics
	httpServer    *http.Server

	// limiter is nil when rate limiting is disabled
	limiter      ratelimit.Checker
	limiterStore *ratelimit.Store
	redisClient  *redis.Client
}

// NewServer creates a new server instance with all required components.
// Initialization order: auth providers, database (connect, migrate, seed),
// rate limiter, handlers, routes.
func NewServer(cfg *config.AppConfig) (*Server, error) {
	s := &Server{
		Config:  cfg,
		metrics: middleware.NewMetrics(nil),
	}

	s.setupAuthProviders()

	if err := s.setupDatabase(); err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := s.setupRateLimiter(); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to set up rate limiter: %w", err)
	}

	s.setupHandlers()
	s.SetupRoutes()

	idleTimeout := cfg.Server.IdleTimeout
	if idleTimeout == 0 {
		idleTimeout = constants.DefaultIdleTimeout
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  idleTimeout,
	}

	return s, nil
}

func (s *Server) setupAuthProviders() {
	s.authProviders = &AuthProviders{
		Tokens: auth.NewTokenService(&s.Config.JWT),
		Hasher: auth.NewHasher(auth.ConfigFromAppConfig(s.Config)),
	}
}

// setupDatabase connects, runs migrations and applies the seeds.
func (s *Server) setupDatabase() error {
	db, err := database.Connect(s.Config)
	if err != nil {
		return err
	}
	s.Db = db

	ctx := context.Background()

	if err := migrations.NewMigrator(db).RunMigrations(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	seeder := scripts.NewSeeder(db, s.authProviders.Hasher, s.Config.Admin)
	if err := seeder.SeedDatabase(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to seed database: %w", err)
	}

	return nil
}

// setupRateLimiter selects the Redis limiter when a URL is configured and
// the in-memory token buckets otherwise.
func (s *Server) setupRateLimiter() error {
	rl := s.Config.RateLimit
	if !rl.Enabled {
		log.Info().Msg("Rate limiting disabled")
		return nil
	}

	if rl.RedisURL != "" {
		client, err := ratelimit.NewRedisClient(rl.RedisURL)
		if err != nil {
			return err
		}
		s.redisClient = client
		s.limiter = ratelimit.NewRedisLimiter(client, rl.RequestsPerMinute, constants.RateLimitWindow, constants.RateLimitKeyPrefix)
		log.Info().Int("requests_per_minute", rl.RequestsPerMinute).Msg("Using Redis rate limiter")
		return nil
	}

	s.limiterStore = ratelimit.NewStore(ratelimit.PerMinute(rl.RequestsPerMinute, rl.Burst), constants.RateLimitCleanupInterval)
	s.limiter = s.limiterStore
	log.Info().
		Int("requests_per_minute", rl.RequestsPerMinute).
		Int("burst", rl.Burst).
		Msg("Using in-memory rate limiter")
	return nil
}

// setupHandlers builds repositories, services and handlers.
func (s *Server) setupHandlers() {
	userRepo := repository.NewUserRepository(s.Db)
	taskRepo := repository.NewTaskRepository(s.Db)

	authService := service.NewAuthService(userRepo, s.authProviders.Hasher, s.authProviders.Tokens)
	userService := service.NewUserService(userRepo, s.authProviders.Hasher)
	taskService := service.NewTaskService(taskRepo)

	checks := map[string]handlers.HealthCheck{
		"database": s.Db.HealthCheck,
	}
	if client := s.redisClient; client != nil {
		checks["redis"] = func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
	}

	s.Handlers = &Handlers{
		AuthHandler:   handlers.NewAuthHandler(authService),
		UserHandler:   handlers.NewUserHandler(userService),
		TaskHandler:   handlers.NewTaskHandler(taskService),
		HealthHandler: handlers.NewHealthHandler(s.Config.App.Version, s.Config.App.Environment, checks),
	}
}

// GetRouter returns the configured router.
func (s *Server) GetRouter() chi.Router {
	return s.router
}

// Start starts the HTTP server and blocks until it fails or a SIGINT or
// SIGTERM triggers a graceful shutdown.
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			// Shutdown the server immediately if graceful shutdown fails
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			s.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown waits for in-flight requests within ctx, then releases the
// database, limiter and Redis resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info().Msg("Server stopped gracefully")

	s.Close()
	return nil
}

// Close releases the resources held by the server. It is safe to call more
// than once.
func (s *Server) Close() {
	if s.limiterStore != nil {
		s.limiterStore.Close()
		s.limiterStore = nil
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis client")
		}
		s.redisClient = nil
	}

	if s.Db != nil {
		s.Db.Close()
		s.Db = nil
		log.Info().Msg("Database connection closed")
	}
}
