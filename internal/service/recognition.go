package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/ponto/internal/attendance"
	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/face"
	"github.com/saturnino-fabrica-de-software/ponto/internal/observability"
	"github.com/saturnino-fabrica-de-software/ponto/internal/provider"
	"github.com/saturnino-fabrica-de-software/ponto/internal/repository"
	"github.com/saturnino-fabrica-de-software/ponto/internal/ws"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100

	// sideEffectTimeout bounds the async snapshot/publish work that runs
	// after the response is sent.
	sideEffectTimeout = 10 * time.Second
)

// SnapshotArchiver archives check-in images. Optional.
type SnapshotArchiver interface {
	Put(ctx context.Context, recordID uuid.UUID, takenAt time.Time, image []byte) (string, error)
}

// EventPublisher emits check-in events for downstream consumers. Optional.
type EventPublisher interface {
	PublishCheckin(ctx context.Context, employee *domain.Employee, record *domain.AttendanceRecord) error
}

// RecognitionService drives the kiosk check-in pipeline: detect, embed,
// match, then apply the cooldown policy.
type RecognitionService struct {
	employees  repository.EmployeeRepositoryInterface
	attendance repository.AttendanceRepositoryInterface
	matcher    *face.Matcher
	policy     *attendance.Policy
	provider   provider.FaceProvider

	snapshots SnapshotArchiver
	publisher EventPublisher
	hub       *ws.Hub
	metrics   *observability.Metrics

	location         *time.Location
	extractorTimeout time.Duration
	logger           *slog.Logger
}

type RecognitionConfig struct {
	Location         *time.Location
	ExtractorTimeout time.Duration
}

func NewRecognitionService(
	employees repository.EmployeeRepositoryInterface,
	attendanceRepo repository.AttendanceRepositoryInterface,
	matcher *face.Matcher,
	policy *attendance.Policy,
	faceProvider provider.FaceProvider,
	metrics *observability.Metrics,
	logger *slog.Logger,
	cfg RecognitionConfig,
) *RecognitionService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.ExtractorTimeout <= 0 {
		cfg.ExtractorTimeout = 15 * time.Second
	}
	return &RecognitionService{
		employees:        employees,
		attendance:       attendanceRepo,
		matcher:          matcher,
		policy:           policy,
		provider:         faceProvider,
		metrics:          metrics,
		location:         cfg.Location,
		extractorTimeout: cfg.ExtractorTimeout,
		logger:           logger,
	}
}

// WithSnapshots enables snapshot archiving for recorded check-ins.
func (s *RecognitionService) WithSnapshots(archiver SnapshotArchiver) *RecognitionService {
	s.snapshots = archiver
	return s
}

// WithPublisher enables check-in event publishing.
func (s *RecognitionService) WithPublisher(publisher EventPublisher) *RecognitionService {
	s.publisher = publisher
	return s
}

// WithHub enables live feed broadcasts.
func (s *RecognitionService) WithHub(hub *ws.Hub) *RecognitionService {
	s.hub = hub
	return s
}

// Recognize runs the full check-in pipeline for one kiosk frame.
func (s *RecognitionService) Recognize(ctx context.Context, image []byte) (*RecognitionResult, error) {
	start := time.Now()

	result, err := s.recognize(ctx, image)

	s.metrics.RecognitionDuration.Observe(time.Since(start).Seconds())
	s.metrics.Recognitions.WithLabelValues(outcomeLabel(result, err)).Inc()

	return result, err
}

func (s *RecognitionService) recognize(ctx context.Context, image []byte) (*RecognitionResult, error) {
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

	embedding, err := s.extractEmbedding(ctx, image)
	if err != nil {
		return nil, err
	}

	match, err := s.matcher.Match(ctx, embedding)
	if err != nil {
		return nil, asAppError(err)
	}
	if match == nil {
		return nil, domain.ErrFaceNotRecognized
	}

	employee, err := s.employees.GetByID(ctx, match.EmployeeID)
	if err != nil {
		return nil, asAppError(err)
	}

	now := time.Now().UTC()
	decision, err := s.policy.RecordIfEligible(ctx, employee.ID, match.Confidence, now)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}

	result := &RecognitionResult{
		Employee: RecognizedEmployee{
			ID:         employee.ID,
			Name:       employee.FullName(),
			Department: employee.Department,
			Position:   employee.Position,
		},
		Confidence: match.Confidence,
		Timestamp:  now,
	}

	if decision.Recorded {
		result.Recorded = true
		result.RecordID = &decision.Record.ID
		result.Message = fmt.Sprintf("Welcome, %s! Attendance logged at %s",
			employee.FullName(), now.In(s.location).Format("3:04 PM"))

		s.metrics.CheckinsRecorded.Inc()
		go s.afterRecorded(employee, decision.Record, image)
	} else {
		retryMinutes := int(decision.RetryAfter.Minutes())
		if decision.RetryAfter > 0 && retryMinutes == 0 {
			retryMinutes = 1
		}
		result.RetryAfter = retryMinutes
		result.Message = fmt.Sprintf("Already logged at %s. Try after %d minutes",
			decision.LastSeen.In(s.location).Format("3:04 PM"), retryMinutes)

		s.metrics.CheckinsSuppressed.Inc()
		if s.hub != nil {
			s.hub.Broadcast(ws.EventCheckinSuppressed, result)
		}
	}

	return result, nil
}

// afterRecorded runs the non-blocking side effects of a recorded check-in:
// snapshot archive, event publish, live feed. Failures are logged, never
// surfaced; the ledger write already happened.
func (s *RecognitionService) afterRecorded(employee *domain.Employee, record *domain.AttendanceRecord, image []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	if s.snapshots != nil {
		if _, err := s.snapshots.Put(ctx, record.ID, record.Timestamp, image); err != nil {
			s.logger.Warn("snapshot archive failed",
				slog.String("record_id", record.ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishCheckin(ctx, employee, record); err != nil {
			s.logger.Warn("checkin publish failed",
				slog.String("record_id", record.ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	if s.hub != nil {
		s.hub.Broadcast(ws.EventCheckinRecorded, domain.AttendanceEntry{
			ID:         record.ID,
			EmployeeID: employee.ID,
			Name:       employee.FullName(),
			Department: employee.Department,
			Timestamp:  record.Timestamp,
			Confidence: record.Confidence,
		})
	}
}

func (s *RecognitionService) extractEmbedding(ctx context.Context, image []byte) ([]float64, error) {
	extractCtx, cancel := context.WithTimeout(ctx, s.extractorTimeout)
	defer cancel()

	embedding, err := s.provider.ExtractEmbedding(extractCtx, image)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.ErrInternal.WithError(fmt.Errorf("extractor timed out after %s", s.extractorTimeout))
		}
		return nil, asAppError(err)
	}
	return embedding, nil
}

// DetectFaces reports face locations without matching or recording.
func (s *RecognitionService) DetectFaces(ctx context.Context, image []byte) (*DetectionResult, error) {
	faces, err := s.provider.DetectFaces(ctx, image)
	if err != nil {
		return nil, asAppError(err)
	}

	if faces == nil {
		faces = []provider.DetectedFace{}
	}

	return &DetectionResult{
		Count: len(faces),
		Faces: faces,
	}, nil
}

// RecentActivity returns the newest attendance entries for the dashboard.
func (s *RecognitionService) RecentActivity(ctx context.Context, limit int) ([]domain.AttendanceEntry, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	entries, err := s.attendance.Recent(ctx, limit)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}
	if entries == nil {
		entries = []domain.AttendanceEntry{}
	}
	return entries, nil
}

func outcomeLabel(result *RecognitionResult, err error) string {
	switch {
	case err == nil && result != nil:
		return observability.OutcomeMatched
	case errors.Is(err, domain.ErrFaceNotRecognized):
		return observability.OutcomeUnrecognized
	case errors.Is(err, domain.ErrNoFaceDetected):
		return observability.OutcomeNoFace
	case errors.Is(err, domain.ErrMultipleFaces):
		return observability.OutcomeMultiFace
	case errors.Is(err, domain.ErrInvalidImage):
		return observability.OutcomeInvalidImage
	default:
		return observability.OutcomeError
	}
}

// asAppError passes AppErrors through untouched and wraps anything else as
// an internal error.
func asAppError(err error) error {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return domain.ErrInternal.WithError(err)
}
