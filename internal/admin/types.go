package admin

import (
	"time"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      domain.AdminUser `json:"user"`
}

// DashboardStats summarizes today's activity for the admin dashboard.
type DashboardStats struct {
	TotalEmployees int                      `json:"total_employees"`
	CheckinsToday  int                      `json:"checkins_today"`
	PresentToday   int                      `json:"present_today"`
	RecentActivity []domain.AttendanceEntry `json:"recent_activity"`
}
