package opencv

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/kozaktomas/skintone-advisor/internal/facedetect"
	"gocv.io/x/gocv"
)

// CascadeLocator detects faces with an OpenCV Haar cascade.
// Cascades produce no score, so every hit is reported with confidence 1.
type CascadeLocator struct {
	classifier gocv.CascadeClassifier
	config     facedetect.Config
	mu         sync.Mutex
}

// NewCascade loads the cascade XML at cfg.ModelPath.
func NewCascade(cfg facedetect.Config) (*CascadeLocator, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("cascade file not found: %s", cfg.ModelPath)
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(cfg.ModelPath) {
		classifier.Close()
		return nil, fmt.Errorf("failed to load cascade classifier from %s", cfg.ModelPath)
	}

	return &CascadeLocator{
		classifier: classifier,
		config:     cfg,
	}, nil
}

// Locate finds faces in the image
func (l *CascadeLocator) Locate(img image.Image) ([]facedetect.Detection, error) {
	input := facedetect.Downscale(img, l.config.MaxSize)

	mat, err := gocv.ImageToMatRGB(input)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, errors.New("empty image")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	equalized := gocv.NewMat()
	defer equalized.Close()
	gocv.EqualizeHist(gray, &equalized)

	l.mu.Lock()
	rects := l.classifier.DetectMultiScaleWithParams(
		equalized,
		1.1,              // scale factor
		3,                // min neighbors
		0,                // flags
		image.Pt(30, 30), // min size
		image.Point{},    // no max size
	)
	l.mu.Unlock()

	imgW := float64(mat.Cols())
	imgH := float64(mat.Rows())

	detections := make([]facedetect.Detection, 0, len(rects))
	for _, r := range rects {
		detections = append(detections, facedetect.Detection{
			X:          float64(r.Min.X) / imgW,
			Y:          float64(r.Min.Y) / imgH,
			W:          float64(r.Dx()) / imgW,
			H:          float64(r.Dy()) / imgH,
			Confidence: 1,
		}.Clamp())
	}

	return facedetect.FilterConfidence(detections, l.config.MinConfidence), nil
}

// Close releases the classifier
func (l *CascadeLocator) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.classifier.Close()
}
