package onnx

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformImage(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDecodeImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, uniformImage(4, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255})))

	img, err := decodeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())

	_, err = decodeImage([]byte("not an image"))
	assert.Error(t, err)
}

func TestResizeImage(t *testing.T) {
	img := uniformImage(8, 4, color.RGBA{R: 255, A: 255})

	resized := resizeImage(img, 640, 640)
	assert.Equal(t, 640, resized.Bounds().Dx())
	assert.Equal(t, 640, resized.Bounds().Dy())
}

func TestImageToFloat32CHW(t *testing.T) {
	// A uniform mid-gray frame normalizes to zero in every channel.
	img := uniformImage(2, 2, color.RGBA{R: 127, G: 127, B: 127, A: 255})

	data := imageToFloat32CHW(img, []float32{127}, []float32{128})
	require.Len(t, data, 3*2*2)
	for i, v := range data {
		assert.InDelta(t, 0, v, 1e-6, "index %d", i)
	}

	// Per-channel mean/std applies each channel's own values.
	img = uniformImage(1, 1, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	data = imageToFloat32CHW(img, []float32{100, 100, 100}, []float32{50, 50, 50})
	require.Len(t, data, 3)
	assert.InDelta(t, 2.0, data[0], 1e-6)
	assert.InDelta(t, 0.0, data[1], 1e-6)
	assert.InDelta(t, -1.0, data[2], 1e-6)
}

func TestCropFace(t *testing.T) {
	img := uniformImage(100, 100, color.RGBA{R: 255, A: 255})

	// 10% padding on a 20x20 box grows it by 2px per side.
	crop := cropFace(img, [4]float32{40, 40, 60, 60}, 0.1)
	assert.Equal(t, 24, crop.Bounds().Dx())
	assert.Equal(t, 24, crop.Bounds().Dy())

	// Padding is clamped at the image edge.
	crop = cropFace(img, [4]float32{0, 0, 20, 20}, 0.1)
	assert.Equal(t, 22, crop.Bounds().Dx())
	assert.Equal(t, 22, crop.Bounds().Dy())

	// Degenerate boxes fall back to the full image.
	crop = cropFace(img, [4]float32{50, 50, 50, 50}, 0.1)
	assert.Equal(t, 100, crop.Bounds().Dx())
}

func TestIoU(t *testing.T) {
	a := [4]float32{0, 0, 10, 10}

	assert.InDelta(t, 1.0, iou(a, a), 1e-6)
	assert.InDelta(t, 0.0, iou(a, [4]float32{20, 20, 30, 30}), 1e-6)

	// Half-overlapping boxes: intersection 50, union 150.
	b := [4]float32{5, 0, 15, 10}
	assert.InDelta(t, 50.0/150.0, iou(a, b), 1e-6)
}

func TestNMS(t *testing.T) {
	detections := []Detection{
		{BBox: [4]float32{0, 0, 10, 10}, Confidence: 0.9},
		{BBox: [4]float32{1, 1, 11, 11}, Confidence: 0.8}, // overlaps the first
		{BBox: [4]float32{50, 50, 60, 60}, Confidence: 0.7},
	}

	kept := nms(detections, 0.4)
	assert.Len(t, kept, 2)
	assert.Equal(t, float32(0.9), kept[0].Confidence)
	assert.Equal(t, float32(0.7), kept[1].Confidence)

	assert.Empty(t, nms(nil, 0.4))
}

func TestClampF(t *testing.T) {
	assert.Equal(t, float32(0), clampF(-5, 0, 10))
	assert.Equal(t, float32(10), clampF(15, 0, 10))
	assert.Equal(t, float32(7), clampF(7, 0, 10))
}
