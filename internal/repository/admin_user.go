package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

type AdminUserRepository struct {
	pool PgxPool
}

func NewAdminUserRepository(pool PgxPool) *AdminUserRepository {
	return &AdminUserRepository{pool: pool}
}

func (r *AdminUserRepository) Create(ctx context.Context, user *domain.AdminUser) error {
	query := `
		INSERT INTO admin_users (id, username, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.IsActive,
	).Scan(&user.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAdminUserExists
		}
		return fmt.Errorf("create admin user: %w", err)
	}

	return nil
}

func (r *AdminUserRepository) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	query := `
		SELECT id, username, password_hash, is_active, last_login, created_at
		FROM admin_users
		WHERE username = $1
	`

	var user domain.AdminUser
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.IsActive,
		&user.LastLogin,
		&user.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get admin user: %w", err)
	}

	return &user, nil
}

func (r *AdminUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE admin_users SET last_login = NOW() WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}
