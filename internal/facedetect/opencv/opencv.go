// Package opencv implements facedetect.Locator on top of pretrained OpenCV models via gocv.
// It is the only package under internal that needs cgo and an OpenCV install.
package opencv

import (
	"fmt"

	"github.com/kozaktomas/skintone-advisor/internal/facedetect"
)

// New creates the locator selected by cfg.Backend.
func New(cfg facedetect.Config) (facedetect.Locator, error) {
	switch cfg.Backend {
	case facedetect.BackendYuNet, "":
		return NewYuNet(cfg)
	case facedetect.BackendHaar:
		return NewCascade(cfg)
	default:
		return nil, fmt.Errorf("unknown detector backend: %q", cfg.Backend)
	}
}
