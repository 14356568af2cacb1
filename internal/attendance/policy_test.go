package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

// memoryLedger is an in-process Ledger for policy tests.
type memoryLedger struct {
	mu      sync.Mutex
	records []domain.AttendanceRecord
}

func (m *memoryLedger) Append(_ context.Context, record *domain.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *record)
	return nil
}

func (m *memoryLedger) MostRecentFor(_ context.Context, employeeID uuid.UUID) (*domain.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var latest *domain.AttendanceRecord
	for i := range m.records {
		r := m.records[i]
		if r.EmployeeID != employeeID {
			continue
		}
		if latest == nil || r.Timestamp.After(latest.Timestamp) {
			latest = &r
		}
	}
	return latest, nil
}

func (m *memoryLedger) Recent(_ context.Context, limit int) ([]domain.AttendanceEntry, error) {
	return nil, nil
}

func (m *memoryLedger) countFor(employeeID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, r := range m.records {
		if r.EmployeeID == employeeID {
			n++
		}
	}
	return n
}

const window = 10 * time.Minute

func TestPolicy_FirstCheckInRecorded(t *testing.T) {
	ledger := &memoryLedger{}
	policy := NewPolicy(ledger, window)
	employeeID := uuid.New()
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	decision, err := policy.RecordIfEligible(context.Background(), employeeID, 0.95, now)
	require.NoError(t, err)
	assert.True(t, decision.Recorded)
	require.NotNil(t, decision.Record)
	assert.Equal(t, employeeID, decision.Record.EmployeeID)
	assert.Equal(t, now, decision.Record.Timestamp)
	assert.Equal(t, 0.95, decision.Record.Confidence)
	assert.Equal(t, 1, ledger.countFor(employeeID))
}

func TestPolicy_SuppressedWithinCooldown(t *testing.T) {
	ledger := &memoryLedger{}
	policy := NewPolicy(ledger, window)
	employeeID := uuid.New()
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	first, err := policy.RecordIfEligible(context.Background(), employeeID, 0.95, now)
	require.NoError(t, err)
	assert.True(t, first.Recorded)

	second, err := policy.RecordIfEligible(context.Background(), employeeID, 0.95, now.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, second.Recorded)
	assert.Equal(t, domain.SuppressedReasonCooldown, second.Reason)
	assert.Equal(t, 9*time.Minute, second.RetryAfter)
	assert.Equal(t, now, second.LastSeen)

	// Exactly one ledger entry after both calls.
	assert.Equal(t, 1, ledger.countFor(employeeID))
}

func TestPolicy_RecordedAfterCooldownExpires(t *testing.T) {
	ledger := &memoryLedger{}
	policy := NewPolicy(ledger, window)
	employeeID := uuid.New()
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	first, err := policy.RecordIfEligible(context.Background(), employeeID, 0.9, now)
	require.NoError(t, err)
	assert.True(t, first.Recorded)

	second, err := policy.RecordIfEligible(context.Background(), employeeID, 0.9, now.Add(window+time.Second))
	require.NoError(t, err)
	assert.True(t, second.Recorded)

	assert.Equal(t, 2, ledger.countFor(employeeID))
}

func TestPolicy_ExactWindowBoundaryRecords(t *testing.T) {
	ledger := &memoryLedger{}
	policy := NewPolicy(ledger, window)
	employeeID := uuid.New()
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	_, err := policy.RecordIfEligible(context.Background(), employeeID, 0.9, now)
	require.NoError(t, err)

	// now - last == window satisfies the >= window rule.
	decision, err := policy.RecordIfEligible(context.Background(), employeeID, 0.9, now.Add(window))
	require.NoError(t, err)
	assert.True(t, decision.Recorded)
}

func TestPolicy_ClockSkewSuppresses(t *testing.T) {
	ledger := &memoryLedger{}
	policy := NewPolicy(ledger, window)
	employeeID := uuid.New()
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	_, err := policy.RecordIfEligible(context.Background(), employeeID, 0.9, now)
	require.NoError(t, err)

	// Wall clock went backwards; never double-record.
	decision, err := policy.RecordIfEligible(context.Background(), employeeID, 0.9, now.Add(-time.Minute))
	require.NoError(t, err)
	assert.False(t, decision.Recorded)
	assert.Equal(t, domain.SuppressedReasonCooldown, decision.Reason)
	assert.LessOrEqual(t, decision.RetryAfter, window)
	assert.Equal(t, 1, ledger.countFor(employeeID))
}

func TestPolicy_ConcurrentSameEmployee(t *testing.T) {
	ledger := &memoryLedger{}
	policy := NewPolicy(ledger, window)
	employeeID := uuid.New()
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	const workers = 32

	var wg sync.WaitGroup
	var mu sync.Mutex
	recorded, suppressed := 0, 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decision, err := policy.RecordIfEligible(context.Background(), employeeID, 0.9, now)
			require.NoError(t, err)

			mu.Lock()
			defer mu.Unlock()
			if decision.Recorded {
				recorded++
			} else {
				suppressed++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, recorded)
	assert.Equal(t, workers-1, suppressed)
	assert.Equal(t, 1, ledger.countFor(employeeID))
}

func TestPolicy_DifferentEmployeesIndependent(t *testing.T) {
	ledger := &memoryLedger{}
	policy := NewPolicy(ledger, window)
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	const workers = 16

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decision, err := policy.RecordIfEligible(context.Background(), uuid.New(), 0.9, now)
			require.NoError(t, err)
			assert.True(t, decision.Recorded)
		}()
	}
	wg.Wait()
}
