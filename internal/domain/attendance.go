package domain

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecord é um registro de ponto: uma ocorrência reconhecida de check-in.
// Records are append-only; the recognition path never mutates or deletes them.
type AttendanceRecord struct {
	ID         uuid.UUID `json:"id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	Timestamp  time.Time `json:"timestamp"`
	Confidence float64   `json:"confidence"`
}

// AttendanceEntry is an AttendanceRecord joined with employee display info,
// as exposed by the recent-activity query surface.
type AttendanceEntry struct {
	ID         uuid.UUID `json:"id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	Timestamp  time.Time `json:"timestamp"`
	Confidence float64   `json:"confidence"`
}

// SuppressedReasonCooldown is the machine-readable reason attached to a
// check-in suppressed inside the cooldown window.
const SuppressedReasonCooldown = "duplicate-within-cooldown"

// Decision is the outcome of an attendance eligibility check.
type Decision struct {
	Recorded   bool              `json:"recorded"`
	Record     *AttendanceRecord `json:"record,omitempty"`
	Reason     string            `json:"reason,omitempty"`
	RetryAfter time.Duration     `json:"retry_after,omitempty"`
	LastSeen   time.Time         `json:"last_seen,omitempty"`
}
