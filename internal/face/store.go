package face

import (
	"context"

	"github.com/google/uuid"
)

// Encoding pairs an enrolled employee with their embedding.
type Encoding struct {
	EmployeeID uuid.UUID
	Embedding  []float64
}

// EncodingStore holds one embedding per enrolled employee. Implementations
// must be safe for concurrent use; the matcher only ever reads. Enrollment is
// a one-time operation: Add fails with domain.ErrAlreadyEnrolled when the
// employee already has a stored embedding, and with domain.ErrInvalidEmbedding
// when the vector does not match the store's established dimensionality (or,
// for the first entry, is empty or non-finite).
type EncodingStore interface {
	Add(ctx context.Context, employeeID uuid.UUID, embedding []float64) error
	// All returns a snapshot of every stored (employee, embedding) pair.
	// Each call rescans the backing storage; no ordering is guaranteed
	// beyond being stable for a single snapshot.
	All(ctx context.Context) ([]Encoding, error)
}
