package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

type AttendanceRepository struct {
	pool PgxPool
}

func NewAttendanceRepository(pool PgxPool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Append inserts a new attendance record. The ledger is append-only; there
// is no update or delete path.
func (r *AttendanceRepository) Append(ctx context.Context, record *domain.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (id, employee_id, timestamp, confidence)
		VALUES ($1, $2, $3, $4)
	`

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.EmployeeID,
		record.Timestamp,
		record.Confidence,
	)
	if err != nil {
		return fmt.Errorf("append attendance record: %w", err)
	}

	return nil
}

// MostRecentFor returns the latest record for an employee, or (nil, nil)
// when the employee has never checked in.
func (r *AttendanceRepository) MostRecentFor(ctx context.Context, employeeID uuid.UUID) (*domain.AttendanceRecord, error) {
	query := `
		SELECT id, employee_id, timestamp, confidence
		FROM attendance_records
		WHERE employee_id = $1
		ORDER BY timestamp DESC
		LIMIT 1
	`

	var record domain.AttendanceRecord
	err := r.pool.QueryRow(ctx, query, employeeID).Scan(
		&record.ID,
		&record.EmployeeID,
		&record.Timestamp,
		&record.Confidence,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get most recent record: %w", err)
	}

	return &record, nil
}

// Recent returns the newest records joined with employee display info.
func (r *AttendanceRepository) Recent(ctx context.Context, limit int) ([]domain.AttendanceEntry, error) {
	query := `
		SELECT a.id, a.employee_id, e.first_name || ' ' || e.last_name, e.department, a.timestamp, a.confidence
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		ORDER BY a.timestamp DESC
		LIMIT $1
	`

	return r.queryEntries(ctx, query, limit)
}

// Range returns all entries in [from, to), oldest first, for reporting. An
// empty department matches every department.
func (r *AttendanceRepository) Range(ctx context.Context, from, to time.Time, department string) ([]domain.AttendanceEntry, error) {
	query := `
		SELECT a.id, a.employee_id, e.first_name || ' ' || e.last_name, e.department, a.timestamp, a.confidence
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.timestamp >= $1 AND a.timestamp < $2`

	args := []any{from, to}
	if department != "" {
		query += " AND e.department = $3"
		args = append(args, department)
	}
	query += " ORDER BY a.timestamp ASC"

	return r.queryEntries(ctx, query, args...)
}

func (r *AttendanceRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.AttendanceEntry, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attendance entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.AttendanceEntry
	for rows.Next() {
		var e domain.AttendanceEntry
		if err := rows.Scan(
			&e.ID,
			&e.EmployeeID,
			&e.Name,
			&e.Department,
			&e.Timestamp,
			&e.Confidence,
		); err != nil {
			return nil, fmt.Errorf("scan attendance entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query attendance entries: %w", err)
	}

	return entries, nil
}

func (r *AttendanceRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendance_records WHERE timestamp >= $1`, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

func (r *AttendanceRepository) DistinctEmployeesSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT employee_id) FROM attendance_records WHERE timestamp >= $1`, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count distinct employees: %w", err)
	}
	return count, nil
}
