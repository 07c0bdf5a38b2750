package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/skintone-advisor/internal/config"
	"github.com/kozaktomas/skintone-advisor/internal/facedetect"
	"github.com/kozaktomas/skintone-advisor/internal/recommend"
	"github.com/kozaktomas/skintone-advisor/internal/skintone"
)

// testConfig creates a minimal config for testing
func testConfig() *config.Config {
	return &config.Config{
		Web: config.WebConfig{
			Host:           "127.0.0.1",
			Port:           5000,
			AllowedOrigins: []string{"*"},
			MaxUploadMB:    1,
		},
		Detector: config.DetectorConfig{
			Backend:       "yunet",
			MinConfidence: 0.5,
			MaxSize:       1280,
		},
		Catalog: config.LoadCatalog(),
	}
}

// testCatalog creates a catalog backed by the embedded product data
func testCatalog() *recommend.Catalog {
	return recommend.NewCatalog(config.LoadCatalog())
}

// staticAnalyzer creates an analyzer whose locator always reports dets
func staticAnalyzer(dets ...facedetect.Detection) *skintone.Analyzer {
	return skintone.NewAnalyzer(facedetect.NewStatic(dets...))
}

// wholeFace is a detection covering the entire image
var wholeFace = facedetect.Detection{X: 0, Y: 0, W: 1, H: 1, Confidence: 0.93}

// pngOfColor encodes a uniform w x h image as PNG
func pngOfColor(t *testing.T, w, h int, r, g, b uint8) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	c := color.NRGBA{R: r, G: g, B: b, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

// multipartRequest builds a POST with data in the given form field
func multipartRequest(t *testing.T, path, field string, data []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, "face.png")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// jsonRequest builds a POST with a JSON body
func jsonRequest(t *testing.T, path string, payload any) *http.Request {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// fakeAnalyzer returns a fixed result and error
type fakeAnalyzer struct {
	result skintone.Result
	err    error
	calls  int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, data []byte) (skintone.Result, error) {
	f.calls++
	return f.result, f.err
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertContentType checks if the response has the expected content type
func assertContentType(t *testing.T, recorder *httptest.ResponseRecorder, expected string) {
	t.Helper()
	ct := recorder.Header().Get("Content-Type")
	if ct != expected {
		t.Errorf("expected Content-Type '%s', got '%s'", expected, ct)
	}
}

// assertJSONError checks if the response is a JSON error with the expected message
func assertJSONError(t *testing.T, recorder *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var result map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, recorder.Body.String())
	}
	if result["error"] != expectedMessage {
		t.Errorf("expected error '%s', got '%s'", expectedMessage, result["error"])
	}
}
