package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/face"
)

// EmployeeRepositoryInterface defines operations for employee data access.
// It doubles as the encoding store: Add and All expose the embedding column
// to the matcher.
type EmployeeRepositoryInterface interface {
	Create(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Add(ctx context.Context, employeeID uuid.UUID, embedding []float64) error
	All(ctx context.Context) ([]face.Encoding, error)
}

// AttendanceRepositoryInterface defines operations for the append-only
// attendance ledger
type AttendanceRepositoryInterface interface {
	Append(ctx context.Context, record *domain.AttendanceRecord) error
	MostRecentFor(ctx context.Context, employeeID uuid.UUID) (*domain.AttendanceRecord, error)
	Recent(ctx context.Context, limit int) ([]domain.AttendanceEntry, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
	DistinctEmployeesSince(ctx context.Context, since time.Time) (int, error)
	Range(ctx context.Context, from, to time.Time, department string) ([]domain.AttendanceEntry, error)
}

// AdminUserRepositoryInterface defines operations for admin account access
type AdminUserRepositoryInterface interface {
	Create(ctx context.Context, user *domain.AdminUser) error
	GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}
