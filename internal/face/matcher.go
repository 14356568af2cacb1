package face

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

// Match is the winning candidate of a store scan.
type Match struct {
	EmployeeID uuid.UUID
	Distance   float64
	Confidence float64
}

// Matcher compares a fresh embedding against every enrolled encoding and
// accepts the closest one under the configured distance threshold. Both sides
// are L2-normalized before comparison, so the distance is invariant to the
// overall magnitude the extractor happens to produce.
type Matcher struct {
	store     EncodingStore
	threshold float64
}

func NewMatcher(store EncodingStore, threshold float64) *Matcher {
	return &Matcher{
		store:     store,
		threshold: threshold,
	}
}

// Match returns the best candidate, or nil when the store is empty or no
// enrolled face is within the threshold. Matching never writes to the store.
func (m *Matcher) Match(ctx context.Context, query []float64) (*Match, error) {
	if len(query) == 0 || !Finite(query) {
		return nil, domain.ErrInvalidEmbedding
	}

	encodings, err := m.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan encoding store: %w", err)
	}

	if len(encodings) == 0 {
		return nil, nil
	}

	if len(query) != len(encodings[0].Embedding) {
		return nil, domain.ErrInvalidEmbedding.WithError(
			fmt.Errorf("query has %d dimensions, store has %d", len(query), len(encodings[0].Embedding)))
	}

	normalized := Normalize(query)

	var best *Match
	for _, enc := range encodings {
		d := EuclideanDistance(normalized, Normalize(enc.Embedding))
		if d >= m.threshold {
			continue
		}
		// Strict < keeps the first-encountered winner on exact ties.
		if best == nil || d < best.Distance {
			best = &Match{
				EmployeeID: enc.EmployeeID,
				Distance:   d,
				Confidence: Confidence(d),
			}
		}
	}

	return best, nil
}
