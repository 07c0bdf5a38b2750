package opencv

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"sync"

	"github.com/kozaktomas/skintone-advisor/internal/constants"
	"github.com/kozaktomas/skintone-advisor/internal/facedetect"
	"gocv.io/x/gocv"
)

// YuNetLocator uses OpenCV's FaceDetectorYN for face detection
type YuNetLocator struct {
	detector gocv.FaceDetectorYN
	config   facedetect.Config
	mu       sync.Mutex // FaceDetectorYN is not safe for concurrent use
}

// NewYuNet creates a new YuNet face locator using GoCV's built-in FaceDetectorYN
func NewYuNet(cfg facedetect.Config) (*YuNetLocator, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	width, height := cfg.InputWidth, cfg.InputHeight
	if width <= 0 || height <= 0 {
		width, height = 320, 320
	}

	// Input size is updated per image in Locate
	detector := gocv.NewFaceDetectorYNWithParams(
		cfg.ModelPath,
		"", // No config file needed for ONNX
		image.Pt(width, height),
		float32(cfg.MinConfidence),
		constants.YuNetNMSThreshold,
		constants.YuNetTopK,
		int(gocv.NetBackendDefault),
		int(gocv.NetTargetCPU),
	)

	return &YuNetLocator{
		detector: detector,
		config:   cfg,
	}, nil
}

// Locate finds faces in the image
func (l *YuNetLocator) Locate(img image.Image) ([]facedetect.Detection, error) {
	input := facedetect.Downscale(img, l.config.MaxSize)

	// ImageToMatRGB lays pixels out in BGR order, which is what OpenCV models expect
	mat, err := gocv.ImageToMatRGB(input)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, errors.New("empty image")
	}

	imgW := float64(mat.Cols())
	imgH := float64(mat.Rows())

	faces := gocv.NewMat()
	defer faces.Close()

	l.mu.Lock()
	l.detector.SetInputSize(image.Pt(mat.Cols(), mat.Rows()))
	l.detector.Detect(mat, &faces)
	l.mu.Unlock()

	var detections []facedetect.Detection
	for r := 0; r < faces.Rows(); r++ {
		// YuNet output format (15 columns):
		// 0-3: x, y, w, h (bounding box in pixels)
		// 4-13: 5 facial landmarks (x,y pairs)
		// 14: face score
		x := float64(faces.GetFloatAt(r, 0))
		y := float64(faces.GetFloatAt(r, 1))
		w := float64(faces.GetFloatAt(r, 2))
		h := float64(faces.GetFloatAt(r, 3))
		score := float64(faces.GetFloatAt(r, 14))

		detections = append(detections, facedetect.Detection{
			X:          x / imgW,
			Y:          y / imgH,
			W:          w / imgW,
			H:          h / imgH,
			Confidence: score,
		}.Clamp())
	}

	detections = facedetect.FilterConfidence(detections, l.config.MinConfidence)
	if len(detections) > 0 {
		log.Printf("yunet: found %d face(s) in %dx%d image", len(detections), mat.Cols(), mat.Rows())
	}

	return detections, nil
}

// Close releases the detector resources
func (l *YuNetLocator) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.detector.Close()
	return nil
}
