package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

// ActivityService interface for the recent-activity feed
type ActivityService interface {
	RecentActivity(ctx context.Context, limit int) ([]domain.AttendanceEntry, error)
}

// ActivityHandler serves the attendance activity feed
type ActivityHandler struct {
	service ActivityService
	logger  *slog.Logger
}

// NewActivityHandler creates a new ActivityHandler instance
func NewActivityHandler(service ActivityService, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		logger:  logger,
	}
}

// ActivityResponse response for the recent-activity endpoint
type ActivityResponse struct {
	Entries []domain.AttendanceEntry `json:"entries"`
	Total   int                      `json:"total"`
}

// Recent GET /v1/attendance/recent - latest check-ins, newest first
func (h *ActivityHandler) Recent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)

	entries, err := h.service.RecentActivity(c.Context(), limit)
	if err != nil {
		return err
	}

	if entries == nil {
		entries = []domain.AttendanceEntry{}
	}

	return c.JSON(ActivityResponse{
		Entries: entries,
		Total:   len(entries),
	})
}
