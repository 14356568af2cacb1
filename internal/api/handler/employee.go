package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/service"
)

// EnrollmentService interface for the enrollment service
type EnrollmentService interface {
	Register(ctx context.Context, req service.RegisterEmployeeRequest, image []byte) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EmployeeHandler handles employee enrollment and management
type EmployeeHandler struct {
	service EnrollmentService
	logger  *slog.Logger
}

// NewEmployeeHandler creates a new EmployeeHandler instance
func NewEmployeeHandler(service EnrollmentService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		service: service,
		logger:  logger,
	}
}

// EmployeeResponse response for employee endpoints
type EmployeeResponse struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	Email        string `json:"email"`
	CompanyEmail string `json:"company_email"`
	CreatedAt    string `json:"created_at"`
}

// ListEmployeesResponse response for the list endpoint
type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int                `json:"total"`
}

// Register POST /v1/employees - register a new employee with a face photo
func (h *EmployeeHandler) Register(c *fiber.Ctx) error {
	req := service.RegisterEmployeeRequest{
		FirstName:  strings.TrimSpace(c.FormValue("first_name")),
		LastName:   strings.TrimSpace(c.FormValue("last_name")),
		Department: strings.TrimSpace(c.FormValue("department")),
		Position:   strings.TrimSpace(c.FormValue("position")),
		Email:      strings.TrimSpace(c.FormValue("email")),
	}

	imageBytes, err := extractAndValidateImage(c)
	if err != nil {
		return err
	}

	employee, err := h.service.Register(c.Context(), req, imageBytes)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(toEmployeeResponse(employee))
}

// List GET /v1/employees - list registered employees
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	employees, err := h.service.List(c.Context())
	if err != nil {
		return err
	}

	resp := ListEmployeesResponse{
		Employees: make([]EmployeeResponse, 0, len(employees)),
		Total:     len(employees),
	}
	for i := range employees {
		resp.Employees = append(resp.Employees, toEmployeeResponse(&employees[i]))
	}

	return c.JSON(resp)
}

// Get GET /v1/employees/:id - fetch a single employee
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, err := parseEmployeeID(c)
	if err != nil {
		return err
	}

	employee, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(toEmployeeResponse(employee))
}

// Delete DELETE /v1/employees/:id - remove an employee and their records
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := parseEmployeeID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func parseEmployeeID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, domain.ErrValidationFailed.WithError(err)
	}
	return id, nil
}

func toEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID.String(),
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Department:   e.Department,
		Position:     e.Position,
		Email:        e.Email,
		CompanyEmail: e.CompanyEmail,
		CreatedAt:    e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
