package attendance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

// Ledger is the append-only attendance store consumed by the policy.
type Ledger interface {
	Append(ctx context.Context, record *domain.AttendanceRecord) error
	// MostRecentFor returns the latest record for the employee by timestamp,
	// or (nil, nil) when the employee has never checked in.
	MostRecentFor(ctx context.Context, employeeID uuid.UUID) (*domain.AttendanceRecord, error)
	Recent(ctx context.Context, limit int) ([]domain.AttendanceEntry, error)
}

// Policy decides whether a recognized check-in becomes a new ledger entry or
// is suppressed as a duplicate inside the cooldown window.
//
// The read-check-append sequence is serialized per employee so that
// near-simultaneous requests recognizing the same person produce exactly one
// Recorded outcome per window. Different employees proceed in parallel.
type Policy struct {
	ledger Ledger
	window time.Duration

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewPolicy(ledger Ledger, window time.Duration) *Policy {
	return &Policy{
		ledger: ledger,
		window: window,
		locks:  make(map[uuid.UUID]*sync.Mutex),
	}
}

// Window returns the configured cooldown duration.
func (p *Policy) Window() time.Duration {
	return p.window
}

func (p *Policy) lockFor(employeeID uuid.UUID) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, ok := p.locks[employeeID]
	if !ok {
		l = &sync.Mutex{}
		p.locks[employeeID] = l
	}
	return l
}

// RecordIfEligible appends a new attendance record unless the employee
// already has one inside the cooldown window. Suppression is a normal
// outcome, not an error.
func (p *Policy) RecordIfEligible(ctx context.Context, employeeID uuid.UUID, confidence float64, now time.Time) (*domain.Decision, error) {
	l := p.lockFor(employeeID)
	l.Lock()
	defer l.Unlock()

	last, err := p.ledger.MostRecentFor(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("read last attendance for %s: %w", employeeID, err)
	}

	if last != nil {
		elapsed := now.Sub(last.Timestamp)

		// Clock skew (now before the last record) counts as still inside
		// the window: fail safe toward suppression, never double-record.
		if elapsed < p.window {
			retryAfter := p.window - elapsed
			if retryAfter > p.window {
				retryAfter = p.window
			}
			return &domain.Decision{
				Recorded:   false,
				Reason:     domain.SuppressedReasonCooldown,
				RetryAfter: retryAfter,
				LastSeen:   last.Timestamp,
			}, nil
		}
	}

	record := &domain.AttendanceRecord{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Timestamp:  now,
		Confidence: confidence,
	}

	if err := p.ledger.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("append attendance for %s: %w", employeeID, err)
	}

	return &domain.Decision{
		Recorded: true,
		Record:   record,
	}, nil
}
