package cmd

import (
	"fmt"
	"os"

	"github.com/kozaktomas/skintone-advisor/internal/config"
	"github.com/kozaktomas/skintone-advisor/internal/facedetect"
	"github.com/kozaktomas/skintone-advisor/internal/facedetect/opencv"
	"github.com/spf13/cobra"
)

// addDetectorFlags registers the flags that override DETECTOR_* settings.
func addDetectorFlags(cmd *cobra.Command) {
	cmd.Flags().String("backend", "", "Face detector backend: yunet or haar (overrides DETECTOR_BACKEND)")
	cmd.Flags().String("model", "", "Detector model file (overrides DETECTOR_MODEL_PATH)")
	cmd.Flags().Float64("min-confidence", 0, "Minimum face confidence (overrides DETECTOR_MIN_CONFIDENCE)")
}

// applyDetectorFlags copies explicitly set detector flags into cfg.
func applyDetectorFlags(cmd *cobra.Command, cfg *config.Config) {
	if override(cmd, "backend", &cfg.Detector.Backend, mustGetString) && !envSet("DETECTOR_MODEL_PATH") {
		cfg.Detector.ModelPath = config.DefaultModelPath(cfg.Detector.Backend)
	}
	override(cmd, "model", &cfg.Detector.ModelPath, mustGetString)
	override(cmd, "min-confidence", &cfg.Detector.MinConfidence, mustGetFloat64)
}

// newLocator builds the configured face locator.
func newLocator(cfg *config.Config) (facedetect.Locator, error) {
	dc := facedetect.DefaultConfig()
	dc.Backend = cfg.Detector.Backend
	dc.ModelPath = cfg.Detector.ModelPath
	dc.MinConfidence = cfg.Detector.MinConfidence
	dc.MaxSize = cfg.Detector.MaxSize

	locator, err := opencv.New(dc)
	if err != nil {
		return nil, fmt.Errorf("creating %s face detector: %w", dc.Backend, err)
	}
	return locator, nil
}

func envSet(key string) bool {
	return os.Getenv(key) != ""
}
