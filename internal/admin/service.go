package admin

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/repository"
)

// recentActivityLimit caps the dashboard feed.
const recentActivityLimit = 10

// Service handles admin business logic
type Service struct {
	users      repository.AdminUserRepositoryInterface
	employees  repository.EmployeeRepositoryInterface
	attendance repository.AttendanceRepositoryInterface
	jwt        *JWTService
	location   *time.Location
	logger     *slog.Logger
}

// NewService creates a new admin service
func NewService(
	users repository.AdminUserRepositoryInterface,
	employees repository.EmployeeRepositoryInterface,
	attendance repository.AttendanceRepositoryInterface,
	jwt *JWTService,
	location *time.Location,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:      users,
		employees:  employees,
		attendance: attendance,
		jwt:        jwt,
		location:   location,
		logger:     logger,
	}
}

// Login authenticates an admin operator and issues a JWT.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		// Hide whether the account exists.
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrForbidden
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Username, "admin")
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		// Login still succeeds; the timestamp is cosmetic.
		s.logger.Warn("failed to update last login",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
	}

	claims, _ := s.jwt.ValidateToken(token)

	return &LoginResult{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      *user,
	}, nil
}

// CreateUser registers a new admin operator with a bcrypt-hashed password.
func (s *Service) CreateUser(ctx context.Context, username, password string) (*domain.AdminUser, error) {
	if username == "" || len(password) < 8 {
		return nil, domain.ErrValidationFailed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}

	user := &domain.AdminUser{
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("admin user created", slog.String("username", username))

	return user, nil
}

// Stats assembles the dashboard summary. "Today" starts at midnight in the
// configured display timezone.
func (s *Service) Stats(ctx context.Context) (*DashboardStats, error) {
	now := time.Now().In(s.location)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)

	total, err := s.employees.Count(ctx)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}

	checkins, err := s.attendance.CountSince(ctx, startOfDay)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}

	present, err := s.attendance.DistinctEmployeesSince(ctx, startOfDay)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}

	recent, err := s.attendance.Recent(ctx, recentActivityLimit)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}

	return &DashboardStats{
		TotalEmployees: total,
		CheckinsToday:  checkins,
		PresentToday:   present,
		RecentActivity: recent,
	}, nil
}

// DailyReport lists the check-ins of one calendar day, resolved in the
// configured display timezone. A zero day means today; an empty department
// matches everyone.
func (s *Service) DailyReport(ctx context.Context, day time.Time, department string) ([]domain.AttendanceEntry, error) {
	if day.IsZero() {
		day = time.Now().In(s.location)
	}

	year, month, d := day.Date()
	start := time.Date(year, month, d, 0, 0, 0, 0, s.location)
	end := start.AddDate(0, 0, 1)

	entries, err := s.attendance.Range(ctx, start, end, department)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}

	return entries, nil
}

// ExportCSV streams attendance entries in [from, to) as CSV rows. An empty
// department exports every department.
func (s *Service) ExportCSV(ctx context.Context, from, to time.Time, department string, w io.Writer) error {
	if !to.After(from) {
		return domain.ErrValidationFailed
	}

	entries, err := s.attendance.Range(ctx, from, to, department)
	if err != nil {
		return domain.ErrInternal.WithError(err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"record_id", "employee_id", "name", "department", "timestamp", "confidence"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, e := range entries {
		row := []string{
			e.ID.String(),
			e.EmployeeID.String(),
			e.Name,
			e.Department,
			e.Timestamp.In(s.location).Format(time.RFC3339),
			strconv.FormatFloat(e.Confidence, 'f', 4, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}
