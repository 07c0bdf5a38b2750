// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Skin sampling constants
const (
	// SamplePatchSize is the side length, in pixels, of the square patch averaged for skin color
	SamplePatchSize = 10

	// CheekOffset is how far down the face box (as a fraction of its height) the patch is anchored.
	// 0.75 lands on the cheek, below the eyes and away from hair and forehead.
	CheekOffset = 0.75
)

// Classification thresholds on mean RGB values. All comparisons are strict.
const (
	LightMinRed   = 180
	LightMinGreen = 140
	LightMinBlue  = 120

	MediumMinRed   = 140
	MediumMinGreen = 100
	MediumMinBlue  = 80
)

// Face detection constants
const (
	// DefaultMinConfidence is the minimum score for a detection to count as a face
	DefaultMinConfidence = 0.5

	// DefaultDetectorMaxSize is the longest side (in pixels) of the image handed to the detector
	DefaultDetectorMaxSize = 1280

	// YuNetNMSThreshold is the non-maximum suppression threshold for YuNet
	YuNetNMSThreshold = 0.3

	// YuNetTopK is the maximum number of candidates YuNet keeps before NMS
	YuNetTopK = 5000
)

// Processing constants
const (
	// DefaultConcurrency is the default number of parallel workers for batch classification
	DefaultConcurrency = 4
)

// Decoding constants
const (
	// MaxImagePixels bounds width*height of an accepted upload to keep decoding memory bounded
	MaxImagePixels = 50_000_000
)
