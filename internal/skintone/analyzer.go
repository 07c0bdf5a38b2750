package skintone

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/kozaktomas/skintone-advisor/internal/facedetect"
)

// Analyzer runs the full photo -> category pipeline against a face locator.
// It holds no per-request state, so one Analyzer serves concurrent requests
// as long as the locator does.
type Analyzer struct {
	locator  facedetect.Locator
	classify func(img *image.NRGBA, box BoundingBox) (Category, AverageColor, error)
}

// NewAnalyzer creates an analyzer using locator for face detection.
func NewAnalyzer(locator facedetect.Locator) *Analyzer {
	return &Analyzer{
		locator:  locator,
		classify: Classify,
	}
}

// Analyze decodes data, finds the most confident face and classifies its skin tone.
//
// Undecodable input, no face and an empty sample patch are ordinary outcomes
// reported in Result. The error is reserved for images over the pixel bound
// (ErrImageTooLarge), locator failures and a done ctx.
func (a *Analyzer) Analyze(ctx context.Context, data []byte) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	img, err := Decode(data)
	if errors.Is(err, ErrImageTooLarge) {
		return Result{}, err
	}
	if err != nil {
		return Result{Outcome: OutcomeUnreadableImage}, nil
	}

	return a.AnalyzeImage(ctx, img)
}

// AnalyzeImage runs detection and classification on an already decoded image.
func (a *Analyzer) AnalyzeImage(ctx context.Context, img *image.NRGBA) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	dets, err := a.locator.Locate(img)
	if err != nil {
		return Result{}, fmt.Errorf("locating faces: %w", err)
	}

	best, ok := facedetect.Best(dets)
	if !ok {
		return Result{Outcome: OutcomeNoFace}, nil
	}

	res := Result{
		Box:        BoundingBox{XMin: best.X, YMin: best.Y, Width: best.W, Height: best.H},
		Confidence: best.Confidence,
		Faces:      len(dets),
	}

	category, avg, err := a.classify(img, res.Box)
	if errors.Is(err, ErrNoSkinPatch) {
		res.Outcome = OutcomeNoSkinPatch
		return res, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("classifying skin tone: %w", err)
	}

	res.Outcome = OutcomeOK
	res.Category = category
	res.Average = avg
	return res, nil
}
