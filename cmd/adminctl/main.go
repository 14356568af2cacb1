package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/saturnino-fabrica-de-software/ponto/internal/admin"
	"github.com/saturnino-fabrica-de-software/ponto/internal/config"
	"github.com/saturnino-fabrica-de-software/ponto/internal/database"
	"github.com/saturnino-fabrica-de-software/ponto/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	username := flag.String("username", "", "Admin username")
	password := flag.String("password", "", "Admin password (min 8 characters)")
	flag.Parse()

	if *username == "" || *password == "" {
		flag.Usage()
		return fmt.Errorf("username and password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := config.NewLogger(cfg.Environment)

	location, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	jwtService := admin.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiresIn)
	adminService := admin.NewService(
		repository.NewAdminUserRepository(pool),
		repository.NewEmployeeRepository(pool),
		repository.NewAttendanceRepository(pool),
		jwtService,
		location,
		logger,
	)

	user, err := adminService.CreateUser(ctx, *username, *password)
	if err != nil {
		return err
	}

	logger.Info("admin user created",
		slog.String("id", user.ID.String()),
		slog.String("username", user.Username),
	)
	return nil
}
