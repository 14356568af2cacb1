package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/ponto/internal/provider"
)

// RecognizedEmployee is the employee summary attached to a recognition
// outcome. The embedding never leaves the server.
type RecognizedEmployee struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
}

// RecognitionResult is the outcome of a kiosk check-in attempt.
type RecognitionResult struct {
	Employee   RecognizedEmployee `json:"employee"`
	Confidence float64            `json:"confidence"`
	Recorded   bool               `json:"attendance_logged"`
	Message    string             `json:"message"`
	RecordID   *uuid.UUID         `json:"record_id,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
	RetryAfter int                `json:"retry_after_minutes,omitempty"`
}

// DetectionResult reports face locations for camera preview overlays.
type DetectionResult struct {
	Count int                     `json:"count"`
	Faces []provider.DetectedFace `json:"faces"`
}

// RegisterEmployeeRequest carries the enrollment form fields.
type RegisterEmployeeRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Email      string `json:"email"`
}
