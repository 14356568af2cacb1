package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/face"
)

type EmployeeRepository struct {
	pool PgxPool
}

func NewEmployeeRepository(pool PgxPool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	query := `
		INSERT INTO employees (id, first_name, last_name, department, position, email, company_email, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`

	if employee.ID == uuid.Nil {
		employee.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		employee.ID,
		employee.FirstName,
		employee.LastName,
		employee.Department,
		employee.Position,
		employee.Email,
		employee.CompanyEmail,
		toVector(employee.Embedding),
	).Scan(&employee.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmployeeExists
		}
		return fmt.Errorf("create employee: %w", err)
	}

	return nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	query := `
		SELECT id, first_name, last_name, department, position, email, company_email, embedding, created_at
		FROM employees
		WHERE id = $1
	`

	return r.scanEmployee(r.pool.QueryRow(ctx, query, id))
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := `
		SELECT id, first_name, last_name, department, position, email, company_email, embedding, created_at
		FROM employees
		WHERE email = $1
	`

	return r.scanEmployee(r.pool.QueryRow(ctx, query, email))
}

func (r *EmployeeRepository) scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var employee domain.Employee
	var embedding *pgvector.Vector

	err := row.Scan(
		&employee.ID,
		&employee.FirstName,
		&employee.LastName,
		&employee.Department,
		&employee.Position,
		&employee.Email,
		&employee.CompanyEmail,
		&embedding,
		&employee.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}

	employee.Embedding = fromVector(embedding)

	return &employee, nil
}

func (r *EmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	query := `
		SELECT id, first_name, last_name, department, position, email, company_email, created_at
		FROM employees
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(
			&e.ID,
			&e.FirstName,
			&e.LastName,
			&e.Department,
			&e.Position,
			&e.Email,
			&e.CompanyEmail,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	return employees, nil
}

func (r *EmployeeRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return count, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}

	return nil
}

// Add sets the embedding for an already registered employee. The column is
// overwritten only when NULL so a second enrollment cannot silently replace
// the first.
func (r *EmployeeRepository) Add(ctx context.Context, employeeID uuid.UUID, embedding []float64) error {
	query := `
		UPDATE employees
		SET embedding = $2
		WHERE id = $1 AND embedding IS NULL
	`

	result, err := r.pool.Exec(ctx, query, employeeID, toVector(embedding))
	if err != nil {
		return fmt.Errorf("add encoding: %w", err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1)`, employeeID).Scan(&exists); err != nil {
			return fmt.Errorf("add encoding: %w", err)
		}
		if !exists {
			return domain.ErrEmployeeNotFound
		}
		return domain.ErrAlreadyEnrolled
	}

	return nil
}

// All returns the embedding of every enrolled employee, ordered by
// enrollment time so earlier registrations win distance ties.
func (r *EmployeeRepository) All(ctx context.Context) ([]face.Encoding, error) {
	query := `
		SELECT id, embedding
		FROM employees
		WHERE embedding IS NOT NULL
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load encodings: %w", err)
	}
	defer rows.Close()

	var encodings []face.Encoding
	for rows.Next() {
		var enc face.Encoding
		var embedding pgvector.Vector
		if err := rows.Scan(&enc.EmployeeID, &embedding); err != nil {
			return nil, fmt.Errorf("scan encoding: %w", err)
		}
		enc.Embedding = fromVector(&embedding)
		encodings = append(encodings, enc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load encodings: %w", err)
	}

	return encodings, nil
}

func toVector(embedding []float64) *pgvector.Vector {
	if len(embedding) == 0 {
		return nil
	}
	floats := make([]float32, len(embedding))
	for i, v := range embedding {
		floats[i] = float32(v)
	}
	vec := pgvector.NewVector(floats)
	return &vec
}

func fromVector(vec *pgvector.Vector) []float64 {
	if vec == nil || vec.Slice() == nil {
		return nil
	}
	out := make([]float64, len(vec.Slice()))
	for i, v := range vec.Slice() {
		out[i] = float64(v)
	}
	return out
}
