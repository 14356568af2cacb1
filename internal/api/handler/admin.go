package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/ponto/internal/admin"
	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

// AdminService interface for the admin service
type AdminService interface {
	Login(ctx context.Context, username, password string) (*admin.LoginResult, error)
	CreateUser(ctx context.Context, username, password string) (*domain.AdminUser, error)
	Stats(ctx context.Context) (*admin.DashboardStats, error)
	DailyReport(ctx context.Context, day time.Time, department string) ([]domain.AttendanceEntry, error)
	ExportCSV(ctx context.Context, from, to time.Time, department string, w io.Writer) error
}

// AdminHandler handles the dashboard endpoints
type AdminHandler struct {
	service AdminService
	logger  *slog.Logger
}

// NewAdminHandler creates a new AdminHandler instance
func NewAdminHandler(service AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger,
	}
}

// LoginRequest request body for the login endpoint
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse response for the login endpoint
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	Username  string `json:"username"`
}

// Login POST /v1/admin/login - exchange credentials for a JWT
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return domain.ErrValidationFailed
	}

	result, err := h.service.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.UTC().Format(time.RFC3339),
		Username:  result.User.Username,
	})
}

// CreateUserRequest request body for the user creation endpoint
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateUserResponse response for the user creation endpoint
type CreateUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// CreateUser POST /v1/admin/users - add another dashboard user
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	user, err := h.service.CreateUser(c.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(CreateUserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
	})
}

// Stats GET /v1/admin/stats - dashboard summary
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

// DailyReportResponse response for the daily report endpoint
type DailyReportResponse struct {
	Entries []domain.AttendanceEntry `json:"entries"`
	Total   int                      `json:"total"`
}

// Daily GET /v1/admin/attendance/daily - one calendar day of check-ins
func (h *AdminHandler) Daily(c *fiber.Ctx) error {
	var day time.Time
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return domain.ErrValidationFailed.WithError(err)
		}
		day = t
	}

	entries, err := h.service.DailyReport(c.Context(), day, strings.TrimSpace(c.Query("department")))
	if err != nil {
		return err
	}

	if entries == nil {
		entries = []domain.AttendanceEntry{}
	}

	return c.JSON(DailyReportResponse{
		Entries: entries,
		Total:   len(entries),
	})
}

// Export GET /v1/admin/export - attendance records as CSV
func (h *AdminHandler) Export(c *fiber.Ctx) error {
	from, _, err := parseDateQuery(c, "from", time.Now().AddDate(0, 0, -30))
	if err != nil {
		return err
	}
	to, toIsDate, err := parseDateQuery(c, "to", time.Now())
	if err != nil {
		return err
	}

	// A date-only end bound means "through that whole day".
	end := to
	if toIsDate {
		end = to.AddDate(0, 0, 1)
	}

	var buf bytes.Buffer
	if err := h.service.ExportCSV(c.Context(), from, end, strings.TrimSpace(c.Query("department")), &buf); err != nil {
		return err
	}

	filename := fmt.Sprintf("attendance_%s_%s.csv",
		from.Format("2006-01-02"), to.Format("2006-01-02"))

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}

// parseDateQuery accepts a plain date or an RFC3339 instant. The second
// return reports which form was given; fallbacks count as instants.
func parseDateQuery(c *fiber.Ctx, name string, fallback time.Time) (time.Time, bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, false, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, domain.ErrValidationFailed.WithError(err)
	}
	return t, false, nil
}
