// Package facedetect defines the face locator contract and the pure-Go helpers around it.
// Model-backed locators live in facedetect/opencv; callers only see normalized boxes.
package facedetect

import "image"

// Detection represents a detected face
type Detection struct {
	X, Y       float64 // Top-left corner (0-1 normalized)
	W, H       float64 // Width and height (0-1 normalized)
	Confidence float64 // Detection confidence (0-1)
}

// Clamp returns the detection with its box clipped to the unit square.
func (d Detection) Clamp() Detection {
	x1 := clamp01(d.X)
	y1 := clamp01(d.Y)
	x2 := clamp01(d.X + d.W)
	y2 := clamp01(d.Y + d.H)
	d.X, d.Y = x1, y1
	d.W, d.H = max(x2-x1, 0), max(y2-y1, 0)
	return d
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

// Locator is the interface for face detection backends
type Locator interface {
	// Locate finds faces in the image. Order of the result is backend-defined.
	// No faces is not an error: an empty slice is returned.
	Locate(img image.Image) ([]Detection, error)

	// Close releases resources
	Close() error
}

// Best picks the highest-confidence detection. Ties keep the earliest entry.
func Best(dets []Detection) (Detection, bool) {
	if len(dets) == 0 {
		return Detection{}, false
	}

	best := dets[0]
	for _, d := range dets[1:] {
		if d.Confidence > best.Confidence {
			best = d
		}
	}
	return best, true
}

// FilterConfidence drops detections scoring below minConfidence.
func FilterConfidence(dets []Detection, minConfidence float64) []Detection {
	kept := make([]Detection, 0, len(dets))
	for _, d := range dets {
		if d.Confidence >= minConfidence {
			kept = append(kept, d)
		}
	}
	return kept
}
