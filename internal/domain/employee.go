package domain

import (
	"time"

	"github.com/google/uuid"
)

// Employee representa um funcionário cadastrado para reconhecimento
type Employee struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Department   string    `json:"department"`
	Position     string    `json:"position"`
	Email        string    `json:"email"`
	CompanyEmail string    `json:"company_email"`
	Embedding    []float64 `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// FullName returns the display name used in attendance responses.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// AdminUser is an operator account for the admin endpoints.
type AdminUser struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
