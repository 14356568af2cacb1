package onnx

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// decodeImage decodes JPEG or PNG bytes into an image.
func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// resizeImage scales an image to the target dimensions with bilinear filtering.
func resizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// imageToFloat32CHW converts an image to a CHW float32 tensor, normalizing
// each channel as (pixel - mean) / std. mean and std may hold a single value
// applied to all channels or one value per channel.
func imageToFloat32CHW(img image.Image, mean, std []float32) []float32 {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	data := make([]float32, 3*width*height)
	channelSize := width * height

	chMean := func(c int) float32 {
		if len(mean) == 1 {
			return mean[0]
		}
		return mean[c]
	}
	chStd := func(c int) float32 {
		if len(std) == 1 {
			return std[0]
		}
		return std[c]
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			idx := y*width + x
			data[idx] = (float32(r>>8) - chMean(0)) / chStd(0)
			data[channelSize+idx] = (float32(g>>8) - chMean(1)) / chStd(1)
			data[2*channelSize+idx] = (float32(b>>8) - chMean(2)) / chStd(2)
		}
	}

	return data
}

// cropFace extracts a face region from the image with padding around the
// bounding box, clamped to the image bounds.
func cropFace(img image.Image, bbox [4]float32, paddingRatio float32) image.Image {
	bounds := img.Bounds()

	w := bbox[2] - bbox[0]
	h := bbox[3] - bbox[1]
	padX := w * paddingRatio
	padY := h * paddingRatio

	x1 := int(clampF(bbox[0]-padX, 0, float32(bounds.Max.X)))
	y1 := int(clampF(bbox[1]-padY, 0, float32(bounds.Max.Y)))
	x2 := int(clampF(bbox[2]+padX, 0, float32(bounds.Max.X)))
	y2 := int(clampF(bbox[3]+padY, 0, float32(bounds.Max.Y)))

	if x2 <= x1 || y2 <= y1 {
		return img
	}

	crop := image.NewRGBA(image.Rect(0, 0, x2-x1, y2-y1))
	draw.Copy(crop, image.Point{}, img, image.Rect(x1, y1, x2, y2), draw.Over, nil)
	return crop
}
