package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/saturnino-fabrica-de-software/ponto/internal/admin"
	"github.com/saturnino-fabrica-de-software/ponto/internal/api"
	"github.com/saturnino-fabrica-de-software/ponto/internal/attendance"
	"github.com/saturnino-fabrica-de-software/ponto/internal/config"
	"github.com/saturnino-fabrica-de-software/ponto/internal/database"
	"github.com/saturnino-fabrica-de-software/ponto/internal/events"
	"github.com/saturnino-fabrica-de-software/ponto/internal/face"
	"github.com/saturnino-fabrica-de-software/ponto/internal/observability"
	"github.com/saturnino-fabrica-de-software/ponto/internal/ratelimit"
	"github.com/saturnino-fabrica-de-software/ponto/internal/repository"
	"github.com/saturnino-fabrica-de-software/ponto/internal/service"
	"github.com/saturnino-fabrica-de-software/ponto/internal/storage"
	"github.com/saturnino-fabrica-de-software/ponto/internal/ws"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting Ponto API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
		slog.String("provider", cfg.ProviderType),
	)

	location, err := cfg.Location()
	if err != nil {
		return err
	}

	// Database
	ctx := context.Background()
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Face provider
	faceProvider, err := face.NewFaceProvider(cfg)
	if err != nil {
		return fmt.Errorf("failed to create face provider: %w", err)
	}

	// Repositories
	employeeRepo := repository.NewEmployeeRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	adminUserRepo := repository.NewAdminUserRepository(pool)

	// Core domain wiring
	matcher := face.NewMatcher(employeeRepo, cfg.FaceMatchThreshold)
	policy := attendance.NewPolicy(attendanceRepo, cfg.CooldownWindow)

	// Metrics
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	// Live activity feed
	hub := ws.NewHub()
	go hub.Run()

	// Services
	recognitionService := service.NewRecognitionService(
		employeeRepo,
		attendanceRepo,
		matcher,
		policy,
		faceProvider,
		metrics,
		logger,
		service.RecognitionConfig{
			Location:         location,
			ExtractorTimeout: cfg.ExtractorTimeout,
		},
	).WithHub(hub)

	enrollmentService := service.NewEnrollmentService(
		employeeRepo,
		matcher,
		faceProvider,
		metrics,
		logger,
	).WithHub(hub)

	// Optional snapshot archive
	if cfg.MinIOEndpoint != "" {
		snapshots, err := storage.NewSnapshotStore(storage.Config{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			Bucket:    cfg.MinIOBucket,
			UseSSL:    cfg.MinIOUseSSL,
		})
		if err != nil {
			return fmt.Errorf("failed to create snapshot store: %w", err)
		}
		if err := snapshots.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to ensure snapshot bucket: %w", err)
		}
		recognitionService = recognitionService.WithSnapshots(snapshots)
		logger.Info("snapshot archive enabled", slog.String("bucket", cfg.MinIOBucket))
	}

	// Optional event bus
	if cfg.NATSURL != "" {
		publisher, err := events.NewPublisher(cfg.NATSURL)
		if err != nil {
			return fmt.Errorf("failed to connect to nats: %w", err)
		}
		defer publisher.Close()

		if err := publisher.EnsureStream(ctx); err != nil {
			return fmt.Errorf("failed to ensure event stream: %w", err)
		}
		recognitionService = recognitionService.WithPublisher(publisher)
		logger.Info("event bus enabled", slog.String("url", cfg.NATSURL))
	}

	// Admin
	jwtService := admin.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiresIn)
	adminService := admin.NewService(
		adminUserRepo,
		employeeRepo,
		attendanceRepo,
		jwtService,
		location,
		logger,
	)

	// Rate limiter for the kiosk endpoints
	rateLimiter := ratelimit.NewRateLimiter(pool, cfg.RateLimitWindow)

	// Metrics listener on its own port
	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
			logger.Info("metrics listening", slog.String("addr", cfg.MetricsAddr))
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Error("metrics listener failed", slog.Any("error", err))
			}
		}()
	}

	// Setup router
	router := api.NewRouter(logger, &api.Dependencies{
		Recognition: recognitionService,
		Enrollment:  enrollmentService,
		Admin:       adminService,
		JWT:         jwtService,
		RateLimiter: rateLimiter,
		RateLimit:   cfg.RateLimitRequests,
		Hub:         hub,
		DB:          pool,
	})
	router.Setup()

	// Graceful shutdown
	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-shutdownCtx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown with timeout
	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server...")
	done := make(chan error, 1)
	go func() {
		done <- router.Shutdown()
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Error("shutdown error", slog.Any("error", err))
		}
	case <-timeoutCtx.Done():
		logger.Warn("shutdown timed out, exiting")
	}
	logger.Info("server stopped")

	return nil
}
