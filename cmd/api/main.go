// Package main is the entrypoint for the users API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/udukunda1/usersvc/internal/cache"
	"github.com/udukunda1/usersvc/internal/config"
	"github.com/udukunda1/usersvc/internal/handler"
	"github.com/udukunda1/usersvc/internal/metrics"
	"github.com/udukunda1/usersvc/internal/middleware"
	"github.com/udukunda1/usersvc/internal/repository"
	"github.com/udukunda1/usersvc/internal/server"
	"github.com/udukunda1/usersvc/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize cache (optional)
	var cacheClient *cache.Cache
	if cfg.HasRedis() {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		logger.Info("connected to Redis")
	} else {
		logger.Info("REDIS_URL not set, rate limiting disabled")
	}

	// Initialize services
	newID, err := service.NewIDGenerator(cfg.IDFormat)
	if err != nil {
		logger.Error("invalid id format", "error", err)
		os.Exit(1)
	}
	metricsRecorder := metrics.NewInMemory()
	userService := service.NewUserService(repository.New(), newID, metricsRecorder)

	// Setup router
	r := setupRouter(cfg, logger, userService, metricsRecorder, cacheClient)

	// Create and run server
	srv := server.New(
		r,
		cfg.Port,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	if cacheClient != nil {
		srv.OnShutdown("redis", func(ctx context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("Server running on port",
		"port", cfg.Port,
		"env", cfg.AppEnv,
		"id_format", cfg.IDFormat,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
// cacheClient may be nil.
func setupRouter(
	cfg *config.Config,
	logger *slog.Logger,
	userService *service.UserService,
	recorder *metrics.InMemoryRecorder,
	cacheClient *cache.Cache,
) *chi.Mux {
	h := handler.New(logger)
	userHandler := handler.NewUserHandler(userService, logger)
	metricsHandler := handler.NewMetricsHandler(recorder, userService)

	// Typed nil pointers must not leak into the interfaces.
	var (
		healthChecker handler.HealthChecker
		limiter       middleware.RateLimiter
	)
	if cacheClient != nil {
		healthChecker = cacheClient
		limiter = cacheClient
	}
	healthHandler := handler.NewHealthHandler(healthChecker)

	r := chi.NewRouter()

	// 404 for unknown paths and for known paths with the wrong method
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.GetCORSAllowedOrigins())))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))
	r.Use(chimiddleware.StripSlashes)

	// Health endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:  logger,
		Limiter: limiter,
		Enabled: cfg.RateLimitEnabled,
		RPS:     cfg.RateLimitRPS,
		Burst:   cfg.RateLimitBurst,
	}

	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.RateLimitIP(rateLimitCfg))

		r.Post("/", userHandler.Create)
		r.Get("/", userHandler.List)
		r.Get("/{id}", userHandler.Get)
	})

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
