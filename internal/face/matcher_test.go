package face

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

func newStoreWith(t *testing.T, encodings map[uuid.UUID][]float64) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	for id, emb := range encodings {
		require.NoError(t, store.Add(context.Background(), id, emb))
	}
	return store
}

func TestMatcher_IdenticalEmbedding(t *testing.T) {
	employeeID := uuid.New()
	embedding := []float64{0.3, -0.5, 0.8, 0.1}

	matcher := NewMatcher(newStoreWith(t, map[uuid.UUID][]float64{
		employeeID: embedding,
	}), 0.6)

	match, err := matcher.Match(context.Background(), embedding)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, employeeID, match.EmployeeID)
	assert.InDelta(t, 0.0, match.Distance, 1e-9)
	assert.InDelta(t, 1.0, match.Confidence, 1e-9)
}

func TestMatcher_DistantEmbeddingRejected(t *testing.T) {
	// Orthogonal unit vectors are sqrt(2) apart, far beyond the threshold.
	matcher := NewMatcher(newStoreWith(t, map[uuid.UUID][]float64{
		uuid.New(): {0, 1, 0},
	}), 0.6)

	match, err := matcher.Match(context.Background(), []float64{1, 0, 0})
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestMatcher_EmptyStore(t *testing.T) {
	matcher := NewMatcher(NewMemoryStore(), 0.6)

	match, err := matcher.Match(context.Background(), []float64{1, 0, 0})
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestMatcher_PicksClosestCandidate(t *testing.T) {
	employeeA := uuid.New()
	employeeB := uuid.New()

	store := NewMemoryStore()
	require.NoError(t, store.Add(context.Background(), employeeA, []float64{1, 0, 0}))
	require.NoError(t, store.Add(context.Background(), employeeB, []float64{0, 1, 0}))

	matcher := NewMatcher(store, 0.6)

	match, err := matcher.Match(context.Background(), []float64{0.98, 0.1, 0})
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, employeeA, match.EmployeeID)
	assert.InDelta(t, 0.1, match.Distance, 0.02)
	assert.Greater(t, match.Confidence, 0.9)
}

func TestMatcher_InvalidQuery(t *testing.T) {
	matcher := NewMatcher(newStoreWith(t, map[uuid.UUID][]float64{
		uuid.New(): {1, 0, 0},
	}), 0.6)

	tests := []struct {
		name  string
		query []float64
	}{
		{name: "empty", query: nil},
		{name: "NaN component", query: []float64{math.NaN(), 0, 0}},
		{name: "infinite component", query: []float64{math.Inf(1), 0, 0}},
		{name: "wrong dimensionality", query: []float64{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := matcher.Match(context.Background(), tt.query)
			assert.ErrorIs(t, err, domain.ErrInvalidEmbedding)
			assert.Nil(t, match)
		})
	}
}

func TestMatcher_ScaleInvariance(t *testing.T) {
	employeeID := uuid.New()

	matcher := NewMatcher(newStoreWith(t, map[uuid.UUID][]float64{
		employeeID: {10, 0, 0},
	}), 0.6)

	// Same direction, very different magnitude.
	match, err := matcher.Match(context.Background(), []float64{0.001, 0, 0})
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, employeeID, match.EmployeeID)
	assert.InDelta(t, 1.0, match.Confidence, 1e-9)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	employeeID := uuid.New()
	embedding := []float64{0.1, 0.2, 0.3}

	require.NoError(t, store.Add(context.Background(), employeeID, embedding))

	all, err := store.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, employeeID, all[0].EmployeeID)
	assert.Equal(t, embedding, all[0].Embedding)
}

func TestMemoryStore_DuplicateIdentity(t *testing.T) {
	store := NewMemoryStore()
	employeeID := uuid.New()

	require.NoError(t, store.Add(context.Background(), employeeID, []float64{1, 0}))
	err := store.Add(context.Background(), employeeID, []float64{0, 1})
	assert.ErrorIs(t, err, domain.ErrAlreadyEnrolled)
}

func TestMemoryStore_DimensionalityEnforced(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Add(context.Background(), uuid.New(), []float64{1, 0, 0}))

	err := store.Add(context.Background(), uuid.New(), []float64{1, 0})
	assert.ErrorIs(t, err, domain.ErrInvalidEmbedding)

	err = store.Add(context.Background(), uuid.New(), []float64{math.NaN(), 0, 0})
	assert.ErrorIs(t, err, domain.ErrInvalidEmbedding)
}

func TestNormalize(t *testing.T) {
	normalized := Normalize([]float64{3, 4})
	assert.InDelta(t, 0.6, normalized[0], 1e-9)
	assert.InDelta(t, 0.8, normalized[1], 1e-9)

	var norm float64
	for _, v := range normalized {
		norm += v * v
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
}

func TestConfidence_Monotonic(t *testing.T) {
	assert.InDelta(t, 1.0, Confidence(0), 1e-9)
	assert.Greater(t, Confidence(0.1), Confidence(0.5))
	assert.Greater(t, Confidence(0.5), Confidence(2.0))
	assert.Greater(t, Confidence(100), 0.0)
}
