package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/face"
	"github.com/saturnino-fabrica-de-software/ponto/internal/observability"
	"github.com/saturnino-fabrica-de-software/ponto/internal/provider"
	"github.com/saturnino-fabrica-de-software/ponto/internal/repository"
	"github.com/saturnino-fabrica-de-software/ponto/internal/ws"
)

// companyEmailDomain is appended to generated addresses.
const companyEmailDomain = "company.com"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// EnrollmentService registers employees with their face embedding.
type EnrollmentService struct {
	employees repository.EmployeeRepositoryInterface
	matcher   *face.Matcher
	provider  provider.FaceProvider

	hub     *ws.Hub
	metrics *observability.Metrics
	logger  *slog.Logger
}

func NewEnrollmentService(
	employees repository.EmployeeRepositoryInterface,
	matcher *face.Matcher,
	faceProvider provider.FaceProvider,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		employees: employees,
		matcher:   matcher,
		provider:  faceProvider,
		metrics:   metrics,
		logger:    logger,
	}
}

// WithHub enables live feed broadcasts.
func (s *EnrollmentService) WithHub(hub *ws.Hub) *EnrollmentService {
	s.hub = hub
	return s
}

// Register enrolls a new employee from the registration form and a single
// face photo. The photo's embedding must not already belong to someone else.
func (s *EnrollmentService) Register(ctx context.Context, req RegisterEmployeeRequest, image []byte) (*domain.Employee, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)

	if req.FirstName == "" || req.LastName == "" {
		return nil, domain.ErrValidationFailed.WithError(fmt.Errorf("first and last name are required"))
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, domain.ErrValidationFailed.WithError(fmt.Errorf("invalid email address"))
	}

	faces, err := s.provider.DetectFaces(ctx, image)
	if err != nil {
		return nil, asAppError(err)
	}
	if len(faces) == 0 {
		return nil, domain.ErrNoFaceDetected
	}
	if len(faces) > 1 {
		return nil, domain.ErrMultipleFaces
	}

	embedding, err := s.provider.ExtractEmbedding(ctx, image)
	if err != nil {
		return nil, asAppError(err)
	}

	// Biometric duplicate check: if this face already matches an enrolled
	// employee, refuse the registration rather than create a second identity
	// the matcher could confuse.
	match, err := s.matcher.Match(ctx, embedding)
	if err != nil {
		return nil, asAppError(err)
	}
	if match != nil {
		return nil, domain.ErrFaceExists
	}

	employee := &domain.Employee{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Department:   strings.TrimSpace(req.Department),
		Position:     strings.TrimSpace(req.Position),
		Email:        strings.ToLower(req.Email),
		CompanyEmail: CompanyEmail(req.FirstName, req.LastName),
		Embedding:    embedding,
	}

	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, asAppError(err)
	}

	s.metrics.EnrolledEmployees.Inc()

	s.logger.Info("employee enrolled",
		slog.String("employee_id", employee.ID.String()),
		slog.String("company_email", employee.CompanyEmail),
	)

	if s.hub != nil {
		s.hub.Broadcast(ws.EventEmployeeEnrolled, RecognizedEmployee{
			ID:         employee.ID,
			Name:       employee.FullName(),
			Department: employee.Department,
			Position:   employee.Position,
		})
	}

	return employee, nil
}

// List returns all registered employees without embeddings.
func (s *EnrollmentService) List(ctx context.Context) ([]domain.Employee, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}
	if employees == nil {
		employees = []domain.Employee{}
	}
	return employees, nil
}

// Get returns a single employee by ID.
func (s *EnrollmentService) Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, asAppError(err)
	}
	return employee, nil
}

// Delete removes an employee and, via cascade, their attendance records.
func (s *EnrollmentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.employees.Delete(ctx, id); err != nil {
		return asAppError(err)
	}
	s.metrics.EnrolledEmployees.Dec()
	return nil
}

var nonAlpha = regexp.MustCompile(`[^a-z]`)

// CompanyEmail derives the internal address as first.last@company.com,
// lowercased with non-letters stripped.
func CompanyEmail(firstName, lastName string) string {
	first := nonAlpha.ReplaceAllString(strings.ToLower(firstName), "")
	last := nonAlpha.ReplaceAllString(strings.ToLower(lastName), "")
	return fmt.Sprintf("%s.%s@%s", first, last, companyEmailDomain)
}
