package facedetect

import (
	"image"

	"golang.org/x/image/draw"
)

// Downscale shrinks img so its longest side is at most maxSize, keeping aspect ratio.
// Detections are normalized, so boxes found on the smaller image apply to the original.
func Downscale(img image.Image, maxSize int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if maxSize <= 0 || (width <= maxSize && height <= maxSize) {
		return img
	}

	var newWidth, newHeight int
	if width > height {
		newWidth = maxSize
		newHeight = max(int(float64(height)*float64(maxSize)/float64(width)), 1)
	} else {
		newHeight = maxSize
		newWidth = max(int(float64(width)*float64(maxSize)/float64(height)), 1)
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)
	return resized
}
