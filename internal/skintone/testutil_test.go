package skintone

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// uniformImage creates a w x h image filled with one RGB color
func uniformImage(w, h int, r, g, b uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	fillRect(img, img.Bounds(), r, g, b)
	return img
}

func fillRect(img *image.NRGBA, rect image.Rectangle, r, g, b uint8) {
	c := color.NRGBA{R: r, G: g, B: b, A: 255}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// encodePNG encodes img as PNG bytes
func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

// fullBox covers the whole image
var fullBox = BoundingBox{XMin: 0, YMin: 0, Width: 1, Height: 1}
