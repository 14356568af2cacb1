package deepface

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/saturnino-fabrica-de-software/ponto/internal/provider"
)

// embeddingDimension is fixed by the Facenet512 model the provider is
// configured with.
const embeddingDimension = 512

// Provider implements provider.FaceProvider using a DeepFace API sidecar.
type Provider struct {
	client *Client
}

// NewProvider creates a new DeepFace provider
func NewProvider(config Config) *Provider {
	return &Provider{
		client: NewClient(config),
	}
}

// DetectFaces returns one entry per face found by the detector backend.
func (p *Provider) DetectFaces(ctx context.Context, image []byte) ([]provider.DetectedFace, error) {
	imageBase64 := base64.StdEncoding.EncodeToString(image)

	resp, err := p.client.Represent(ctx, imageBase64)
	if err != nil {
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	faces := make([]provider.DetectedFace, 0, len(resp.Results))
	for _, result := range resp.Results {
		faces = append(faces, provider.DetectedFace{
			BoundingBox: provider.BoundingBox{
				Left:   result.FacialArea.X,
				Top:    result.FacialArea.Y,
				Right:  result.FacialArea.X + result.FacialArea.W,
				Bottom: result.FacialArea.Y + result.FacialArea.H,
			},
			Confidence: faceConfidence(result.FacialArea),
		})
	}

	return faces, nil
}

// minFaceArea is the face area (pixels²) below which detection confidence
// bottoms out. DeepFace does not report confidence; face size is the proxy.
const (
	minFaceArea = 2500   // 50x50
	maxFaceArea = 250000 // 500x500
)

func faceConfidence(area FacialArea) float64 {
	faceArea := float64(area.W * area.H)
	if faceArea < minFaceArea {
		return 0.5
	}
	normalized := (faceArea - minFaceArea) / (maxFaceArea - minFaceArea)
	if normalized > 1 {
		normalized = 1
	}
	return 0.7 + normalized*0.29
}

// ExtractEmbedding extracts the embedding of the single face in the image.
func (p *Provider) ExtractEmbedding(ctx context.Context, image []byte) ([]float64, error) {
	imageBase64 := base64.StdEncoding.EncodeToString(image)

	resp, err := p.client.Represent(ctx, imageBase64)
	if err != nil {
		return nil, fmt.Errorf("extract embedding: %w", err)
	}

	if len(resp.Results) == 0 {
		return nil, ErrNoFaceInResponse
	}

	return resp.Results[0].Embedding, nil
}

func (p *Provider) Dimension() int {
	return embeddingDimension
}

var _ provider.FaceProvider = (*Provider)(nil)
