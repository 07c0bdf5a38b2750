package facedetect

import "github.com/kozaktomas/skintone-advisor/internal/constants"

// Supported backends
const (
	BackendYuNet = "yunet"
	BackendHaar  = "haar"
)

// Config holds detector configuration
type Config struct {
	Backend       string  // yunet or haar
	ModelPath     string  // Path to ONNX model (yunet) or cascade XML (haar)
	MinConfidence float64 // Minimum confidence (default 0.5)
	MaxSize       int     // Longest image side handed to the model, 0 disables downscaling
	InputWidth    int     // Initial model input width
	InputHeight   int     // Initial model input height
}

// DefaultConfig returns production defaults for YuNet
func DefaultConfig() Config {
	return Config{
		Backend:       BackendYuNet,
		ModelPath:     "models/face_detection_yunet_2023mar.onnx",
		MinConfidence: constants.DefaultMinConfidence,
		MaxSize:       constants.DefaultDetectorMaxSize,
		InputWidth:    320,
		InputHeight:   320,
	}
}
