package mock

import (
	"context"
	"crypto/sha256"
	"math"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/provider"
)

const embeddingDimension = 512

// Provider implementa provider.FaceProvider para testes e desenvolvimento.
// The embedding is a deterministic function of the image bytes, so the same
// picture always "recognizes" itself and different pictures do not collide.
type Provider struct{}

func New() *Provider {
	return &Provider{}
}

// DetectFaces simula detecção: any plausible image contains exactly one face.
func (p *Provider) DetectFaces(ctx context.Context, image []byte) ([]provider.DetectedFace, error) {
	if len(image) < 1000 {
		return nil, domain.ErrInvalidImage
	}

	return []provider.DetectedFace{
		{
			BoundingBox: provider.BoundingBox{Left: 48, Top: 32, Right: 208, Bottom: 224},
			Confidence:  0.99,
		},
	}, nil
}

// ExtractEmbedding gera embedding determinístico baseado no hash da imagem
func (p *Provider) ExtractEmbedding(ctx context.Context, image []byte) ([]float64, error) {
	if len(image) < 1000 {
		return nil, domain.ErrInvalidImage
	}

	return generateEmbedding(image), nil
}

func (p *Provider) Dimension() int {
	return embeddingDimension
}

func generateEmbedding(image []byte) []float64 {
	hash := sha256.Sum256(image)
	embedding := make([]float64, embeddingDimension)
	hashLen := len(hash)

	for i := 0; i < embeddingDimension; i++ {
		idx := i % hashLen
		embedding[i] = (float64(hash[idx])/255.0)*2 - 1
	}

	norm := 0.0
	for _, v := range embedding {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	for i := range embedding {
		embedding[i] /= norm
	}

	return embedding
}

var _ provider.FaceProvider = (*Provider)(nil)
