package face

import (
	"fmt"

	"github.com/saturnino-fabrica-de-software/ponto/internal/config"
	"github.com/saturnino-fabrica-de-software/ponto/internal/provider"
	"github.com/saturnino-fabrica-de-software/ponto/internal/provider/deepface"
	"github.com/saturnino-fabrica-de-software/ponto/internal/provider/mock"
	"github.com/saturnino-fabrica-de-software/ponto/internal/provider/onnx"
)

// ProviderType defines supported face recognition provider types
type ProviderType string

const (
	// ProviderTypeDeepFace is the DeepFace sidecar provider (dev/test)
	ProviderTypeDeepFace ProviderType = "deepface"
	// ProviderTypeONNX is the local ONNX Runtime provider (prod)
	ProviderTypeONNX ProviderType = "onnx"
	// ProviderTypeMock is the deterministic in-process provider (unit tests)
	ProviderTypeMock ProviderType = "mock"
)

// NewFaceProvider creates a FaceProvider instance based on configuration
//
// Environment variables:
//   - PROVIDER_TYPE: "deepface", "onnx" or "mock" (default: "deepface")
//   - DEEPFACE_URL: DeepFace API URL (default: "http://localhost:5005")
//   - MODELS_DIR: directory holding the ONNX model files
func NewFaceProvider(cfg *config.Config) (provider.FaceProvider, error) {
	providerType := ProviderType(cfg.ProviderType)

	switch providerType {
	case ProviderTypeONNX:
		return createONNXProvider(cfg)

	case ProviderTypeMock:
		return mock.New(), nil

	case ProviderTypeDeepFace, "":
		// Default to DeepFace for dev/test environments
		return createDeepFaceProvider(cfg), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s, %s)",
			cfg.ProviderType, ProviderTypeDeepFace, ProviderTypeONNX, ProviderTypeMock)
	}
}

// createONNXProvider creates a local ONNX Runtime provider instance
func createONNXProvider(cfg *config.Config) (provider.FaceProvider, error) {
	prov, err := onnx.NewProvider(cfg.ModelsDir)
	if err != nil {
		return nil, fmt.Errorf("create onnx provider: %w", err)
	}
	return prov, nil
}

// createDeepFaceProvider creates a DeepFace provider instance
func createDeepFaceProvider(cfg *config.Config) provider.FaceProvider {
	deepfaceConfig := deepface.Config{
		BaseURL: cfg.DeepFaceURL,
	}

	// Use defaults for other fields (timeout, model, detector, retry)
	if deepfaceConfig.BaseURL == "" {
		deepfaceConfig.BaseURL = deepface.DefaultConfig().BaseURL
	}

	return deepface.NewProvider(deepfaceConfig)
}
