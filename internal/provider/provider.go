package provider

import "context"

// FaceProvider define a interface para extratores de embedding facial.
// Embeddings from different providers (or model versions) are not comparable;
// a deployment must enroll and recognize through the same provider.
type FaceProvider interface {
	// DetectFaces returns one entry per face region found in the image.
	// Zero entries is not an error; callers decide how to treat it.
	DetectFaces(ctx context.Context, image []byte) ([]DetectedFace, error)

	// ExtractEmbedding produces the fixed-length embedding for the single
	// face in the image. Behavior is undefined for multi-face images;
	// callers gate on DetectFaces first.
	ExtractEmbedding(ctx context.Context, image []byte) ([]float64, error)

	// Dimension is the embedding length this provider produces.
	Dimension() int
}

// DetectedFace represents a detected face in the image
type DetectedFace struct {
	BoundingBox BoundingBox `json:"bounding_box"`
	Confidence  float64     `json:"confidence"`
}

// BoundingBox represents the face area in the image, in pixel coordinates.
type BoundingBox struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}
