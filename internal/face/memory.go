package face

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

// MemoryStore is an in-process EncodingStore. It backs tests and single-node
// deployments without Postgres; the repository-backed store is the production
// implementation.
type MemoryStore struct {
	mu        sync.RWMutex
	encodings []Encoding
	index     map[uuid.UUID]int
	dim       int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		index: make(map[uuid.UUID]int),
	}
}

func (s *MemoryStore) Add(_ context.Context, employeeID uuid.UUID, embedding []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[employeeID]; ok {
		return domain.ErrAlreadyEnrolled
	}

	if len(embedding) == 0 || !Finite(embedding) {
		return domain.ErrInvalidEmbedding
	}
	if s.dim != 0 && len(embedding) != s.dim {
		return domain.ErrInvalidEmbedding
	}

	stored := make([]float64, len(embedding))
	copy(stored, embedding)

	s.index[employeeID] = len(s.encodings)
	s.encodings = append(s.encodings, Encoding{EmployeeID: employeeID, Embedding: stored})
	s.dim = len(embedding)

	return nil
}

func (s *MemoryStore) All(_ context.Context) ([]Encoding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Encoding, len(s.encodings))
	copy(out, s.encodings)
	return out, nil
}
