// Package skintone estimates a coarse skin tone from a photo of a face.
//
// The pipeline is decode -> locate face -> sample a cheek patch -> average -> threshold.
// Every step after decoding works on *image.NRGBA, whose Pix slice stores
// non-premultiplied red, green, blue, alpha in that order; thresholds are defined on RGB.
package skintone

import (
	"errors"

	"github.com/lucasb-eyer/go-colorful"
)

// Category is a coarse skin tone bucket
type Category string

const (
	Light  Category = "light"
	Medium Category = "medium"
	Dark   Category = "dark"
)

// Categories lists every category in classification order
var Categories = []Category{Light, Medium, Dark}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case Light, Medium, Dark:
		return true
	}
	return false
}

// BoundingBox is a face box normalized to [0,1] fractions of the image size
type BoundingBox struct {
	XMin   float64 `json:"x"`
	YMin   float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// AverageColor holds per-channel means over a sample patch, in RGB order (0-255)
type AverageColor struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

func (c AverageColor) colorful() colorful.Color {
	return colorful.Color{R: c.R / 255, G: c.G / 255, B: c.B / 255}.Clamped()
}

// Hex returns the color as #rrggbb
func (c AverageColor) Hex() string {
	return c.colorful().Hex()
}

// HSL returns hue in degrees [0,360), saturation and lightness in [0,1]
func (c AverageColor) HSL() (h, s, l float64) {
	return c.colorful().Hsl()
}

var (
	ErrUnreadableImage = errors.New("unable to read image")
	ErrNoFace          = errors.New("no face detected")
	ErrNoSkinPatch     = errors.New("could not extract skin tone")

	// ErrImageTooLarge marks a decodable image whose pixel count exceeds the decode bound.
	ErrImageTooLarge = errors.New("image too large")
)

// Outcome tags the result of one analysis
type Outcome string

const (
	OutcomeOK              Outcome = "ok"
	OutcomeUnreadableImage Outcome = "unreadable_image"
	OutcomeNoFace          Outcome = "no_face"
	OutcomeNoSkinPatch     Outcome = "no_skin_patch"
)

// Labels shown to clients. The original frontend matches on these exact strings.
const (
	LabelUnreadableImage = "Error: Unable to read image"
	LabelNoFace          = "No face detected"
	LabelNoSkinPatch     = "Could not extract skin tone"
)

// Result is the tagged outcome of analyzing one photo
type Result struct {
	Outcome    Outcome
	Category   Category     // set when Outcome is OutcomeOK
	Average    AverageColor // set when Outcome is OutcomeOK
	Box        BoundingBox  // set once a face was found
	Confidence float64      // confidence of the chosen face
	Faces      int          // number of faces the locator reported
}

// Label returns the client-facing skin_tone string for the result.
func (r Result) Label() string {
	switch r.Outcome {
	case OutcomeOK:
		return string(r.Category)
	case OutcomeUnreadableImage:
		return LabelUnreadableImage
	case OutcomeNoFace:
		return LabelNoFace
	case OutcomeNoSkinPatch:
		return LabelNoSkinPatch
	}
	return ""
}

// Err returns the sentinel error matching a failed outcome, or nil on success.
func (r Result) Err() error {
	switch r.Outcome {
	case OutcomeUnreadableImage:
		return ErrUnreadableImage
	case OutcomeNoFace:
		return ErrNoFace
	case OutcomeNoSkinPatch:
		return ErrNoSkinPatch
	}
	return nil
}

// FaceFound reports whether a face box is part of the result.
func (r Result) FaceFound() bool {
	return r.Outcome == OutcomeOK || r.Outcome == OutcomeNoSkinPatch
}
