package onnx

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/provider"
)

// ErrNoFaceFound is returned when embedding extraction finds no face.
var ErrNoFaceFound = errors.New("no face found in image")

const (
	detectorModelFile = "det_10g.onnx"
	embedderModelFile = "w600k_r50.onnx"

	detectorThreshold = 0.5
	cropPaddingRatio  = 0.1
)

// Provider implements provider.FaceProvider with local ONNX Runtime
// inference: RetinaFace for detection and ArcFace for embeddings.
type Provider struct {
	mu       sync.Mutex
	detector *Detector
	embedder *Embedder
}

var initOnce sync.Once

// NewProvider initializes the ONNX runtime and loads both models from
// modelsDir.
func NewProvider(modelsDir string) (*Provider, error) {
	var initErr error
	initOnce.Do(func() {
		initErr = ort.InitializeEnvironment()
	})
	if initErr != nil {
		return nil, fmt.Errorf("initialize onnx runtime: %w", initErr)
	}

	detector, err := NewDetector(filepath.Join(modelsDir, detectorModelFile), detectorThreshold)
	if err != nil {
		return nil, fmt.Errorf("load detector: %w", err)
	}

	embedder, err := NewEmbedder(filepath.Join(modelsDir, embedderModelFile))
	if err != nil {
		detector.Close()
		return nil, fmt.Errorf("load embedder: %w", err)
	}

	return &Provider{detector: detector, embedder: embedder}, nil
}

// DetectFaces returns one entry per face found in the image.
func (p *Provider) DetectFaces(ctx context.Context, image []byte) ([]provider.DetectedFace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	_, detections, err := p.detect(image)
	if err != nil {
		return nil, err
	}

	faces := make([]provider.DetectedFace, 0, len(detections))
	for _, det := range detections {
		faces = append(faces, provider.DetectedFace{
			BoundingBox: provider.BoundingBox{
				Left:   int(det.BBox[0]),
				Top:    int(det.BBox[1]),
				Right:  int(det.BBox[2]),
				Bottom: int(det.BBox[3]),
			},
			Confidence: float64(det.Confidence),
		})
	}

	return faces, nil
}

// ExtractEmbedding crops the highest-confidence face and embeds it.
func (p *Provider) ExtractEmbedding(ctx context.Context, imageData []byte) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, detections, err := p.detect(imageData)
	if err != nil {
		return nil, err
	}
	if len(detections) == 0 {
		return nil, ErrNoFaceFound
	}

	// Detections come back sorted by confidence after NMS.
	face := cropFace(img, detections[0].BBox, cropPaddingRatio)

	p.mu.Lock()
	embedding, err := p.embedder.Embed(face)
	p.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("embed face: %w", err)
	}

	result := make([]float64, len(embedding))
	for i, v := range embedding {
		result[i] = float64(v)
	}
	return result, nil
}

func (p *Provider) detect(imageData []byte) (image.Image, []Detection, error) {
	img, err := decodeImage(imageData)
	if err != nil {
		return nil, nil, domain.ErrInvalidImage.WithError(err)
	}

	bounds := img.Bounds()
	resized := resizeImage(img, p.detector.inputW, p.detector.inputH)
	data := imageToFloat32CHW(resized, []float32{127.5}, []float32{128})

	p.mu.Lock()
	detections, err := p.detector.Detect(data, bounds.Dx(), bounds.Dy())
	p.mu.Unlock()
	if err != nil {
		return nil, nil, fmt.Errorf("detect faces: %w", err)
	}

	return img, detections, nil
}

func (p *Provider) Dimension() int {
	return embeddingDim
}

// Close releases the ONNX sessions.
func (p *Provider) Close() {
	p.detector.Close()
	p.embedder.Close()
}

var _ provider.FaceProvider = (*Provider)(nil)
