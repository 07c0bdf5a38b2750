package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/kozaktomas/skintone-advisor/internal/skintone"
)

func TestNewAnalyzeHandler(t *testing.T) {
	cfg := testConfig()
	analyzer := staticAnalyzer()

	handler := NewAnalyzeHandler(cfg, analyzer)

	if handler == nil {
		t.Fatal("expected non-nil handler")
	}
	if handler.config != cfg {
		t.Error("expected handler to hold reference to config")
	}
}

func TestAnalyzeHandler_UploadImage_Categories(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    string
		wantHex string
	}{
		{"light", 200, 160, 140, "light", "#c8a08c"},
		{"medium", 150, 110, 90, "medium", "#966e5a"},
		{"dark", 100, 70, 50, "dark", "#644632"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewAnalyzeHandler(testConfig(), staticAnalyzer(wholeFace))
			req := multipartRequest(t, "/upload-image", "image", pngOfColor(t, 40, 40, tc.r, tc.g, tc.b))
			recorder := httptest.NewRecorder()

			handler.UploadImage(recorder, req)

			assertStatusCode(t, recorder, http.StatusOK)
			assertContentType(t, recorder, "application/json")

			var resp UploadImageResponse
			parseJSONResponse(t, recorder, &resp)
			if resp.SkinTone != tc.want {
				t.Errorf("expected skin_tone %q, got %q", tc.want, resp.SkinTone)
			}
			if resp.Outcome != skintone.OutcomeOK {
				t.Errorf("expected outcome ok, got %q", resp.Outcome)
			}
			if _, err := uuid.Parse(resp.AnalysisID); err != nil {
				t.Errorf("expected analysis_id to be a UUID, got %q", resp.AnalysisID)
			}
			if resp.AverageColor == nil {
				t.Fatal("expected average_color in response")
			}
			if resp.AverageColor.Hex != tc.wantHex {
				t.Errorf("expected hex %s, got %s", tc.wantHex, resp.AverageColor.Hex)
			}
			if resp.AverageColor.R != float64(tc.r) || resp.AverageColor.G != float64(tc.g) || resp.AverageColor.B != float64(tc.b) {
				t.Errorf("unexpected average color %+v", resp.AverageColor)
			}
			if resp.Face == nil {
				t.Fatal("expected face in response")
			}
			if resp.Face.Confidence != wholeFace.Confidence || resp.Face.Count != 1 {
				t.Errorf("unexpected face info %+v", resp.Face)
			}
		})
	}
}

func TestAnalyzeHandler_UploadImage_NoFace(t *testing.T) {
	handler := NewAnalyzeHandler(testConfig(), staticAnalyzer())
	req := multipartRequest(t, "/upload-image", "image", pngOfColor(t, 20, 20, 200, 160, 140))
	recorder := httptest.NewRecorder()

	handler.UploadImage(recorder, req)

	assertStatusCode(t, recorder, http.StatusUnprocessableEntity)

	var resp UploadImageResponse
	parseJSONResponse(t, recorder, &resp)
	if resp.SkinTone != skintone.LabelNoFace {
		t.Errorf("expected skin_tone %q, got %q", skintone.LabelNoFace, resp.SkinTone)
	}
	if resp.Face != nil || resp.AverageColor != nil {
		t.Errorf("expected no face or color details, got %+v", resp)
	}
}

func TestAnalyzeHandler_UploadImage_LegacyStatus(t *testing.T) {
	cfg := testConfig()
	cfg.Web.LegacyStatus = true
	handler := NewAnalyzeHandler(cfg, staticAnalyzer())

	tests := []struct {
		name  string
		data  []byte
		label string
	}{
		{"no face", pngOfColor(t, 20, 20, 200, 160, 140), skintone.LabelNoFace},
		{"unreadable", []byte("definitely not an image"), skintone.LabelUnreadableImage},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			handler.UploadImage(recorder, multipartRequest(t, "/upload-image", "image", tc.data))

			assertStatusCode(t, recorder, http.StatusOK)
			var resp UploadImageResponse
			parseJSONResponse(t, recorder, &resp)
			if resp.SkinTone != tc.label {
				t.Errorf("expected skin_tone %q, got %q", tc.label, resp.SkinTone)
			}
		})
	}
}

func TestAnalyzeHandler_UploadImage_Unreadable(t *testing.T) {
	handler := NewAnalyzeHandler(testConfig(), staticAnalyzer(wholeFace))
	req := multipartRequest(t, "/upload-image", "image", []byte("definitely not an image"))
	recorder := httptest.NewRecorder()

	handler.UploadImage(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadRequest)

	var resp UploadImageResponse
	parseJSONResponse(t, recorder, &resp)
	if resp.SkinTone != skintone.LabelUnreadableImage {
		t.Errorf("expected skin_tone %q, got %q", skintone.LabelUnreadableImage, resp.SkinTone)
	}
	if resp.Outcome != skintone.OutcomeUnreadableImage {
		t.Errorf("expected outcome %q, got %q", skintone.OutcomeUnreadableImage, resp.Outcome)
	}
}

func TestAnalyzeHandler_UploadImage_NoSkinPatch(t *testing.T) {
	analyzer := &fakeAnalyzer{result: skintone.Result{
		Outcome:    skintone.OutcomeNoSkinPatch,
		Box:        skintone.BoundingBox{XMin: 0.9, YMin: 0.9, Width: 0.5, Height: 0.5},
		Confidence: 0.7,
		Faces:      2,
	}}
	handler := NewAnalyzeHandler(testConfig(), analyzer)
	recorder := httptest.NewRecorder()

	handler.UploadImage(recorder, multipartRequest(t, "/upload-image", "image", []byte("img")))

	assertStatusCode(t, recorder, http.StatusUnprocessableEntity)

	var resp UploadImageResponse
	parseJSONResponse(t, recorder, &resp)
	if resp.SkinTone != skintone.LabelNoSkinPatch {
		t.Errorf("expected skin_tone %q, got %q", skintone.LabelNoSkinPatch, resp.SkinTone)
	}
	if resp.Face == nil || resp.Face.Count != 2 || resp.Face.Box.XMin != 0.9 {
		t.Errorf("expected face details to be kept, got %+v", resp.Face)
	}
	if resp.AverageColor != nil {
		t.Error("expected no average_color without a sample")
	}
}

func TestAnalyzeHandler_UploadImage_MissingImage(t *testing.T) {
	tests := []struct {
		name string
		req  func(t *testing.T) *http.Request
	}{
		{"wrong field name", func(t *testing.T) *http.Request {
			return multipartRequest(t, "/upload-image", "file", []byte("img"))
		}},
		{"json body", func(t *testing.T) *http.Request {
			return jsonRequest(t, "/upload-image", map[string]string{"image": "abc"})
		}},
		{"no body", func(t *testing.T) *http.Request {
			return httptest.NewRequest(http.MethodPost, "/upload-image", nil)
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{}
			handler := NewAnalyzeHandler(testConfig(), analyzer)
			recorder := httptest.NewRecorder()

			handler.UploadImage(recorder, tc.req(t))

			assertStatusCode(t, recorder, http.StatusBadRequest)
			assertJSONError(t, recorder, "No image uploaded")
			if analyzer.calls != 0 {
				t.Errorf("expected analyzer not to be called, got %d calls", analyzer.calls)
			}
		})
	}
}

func TestAnalyzeHandler_UploadImage_TooLarge(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	handler := NewAnalyzeHandler(testConfig(), analyzer)
	data := bytes.Repeat([]byte{0xAB}, 2<<20)
	recorder := httptest.NewRecorder()

	handler.UploadImage(recorder, multipartRequest(t, "/upload-image", "image", data))

	assertStatusCode(t, recorder, http.StatusRequestEntityTooLarge)
	assertJSONError(t, recorder, "image too large")
	if analyzer.calls != 0 {
		t.Errorf("expected analyzer not to be called, got %d calls", analyzer.calls)
	}
}

func TestAnalyzeHandler_UploadImage_TooManyPixels(t *testing.T) {
	handler := NewAnalyzeHandler(testConfig(), staticAnalyzer(wholeFace))
	// GIF header declaring a 12000x9000 canvas: small upload, huge decode
	header := []byte{'G', 'I', 'F', '8', '9', 'a', 0xE0, 0x2E, 0x28, 0x23, 0x00, 0x00, 0x00}
	recorder := httptest.NewRecorder()

	handler.UploadImage(recorder, multipartRequest(t, "/upload-image", "image", header))

	assertStatusCode(t, recorder, http.StatusRequestEntityTooLarge)
	assertJSONError(t, recorder, "image too large")
}

func TestAnalyzeHandler_UploadImage_AnalyzerErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"detector failure", errors.New("locating faces: model crashed"), http.StatusInternalServerError, "failed to analyze image"},
		{"image too large", fmt.Errorf("%w: 12000x9000", skintone.ErrImageTooLarge), http.StatusRequestEntityTooLarge, "image too large"},
		{"cancelled", context.Canceled, http.StatusServiceUnavailable, "analysis cancelled"},
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable, "analysis cancelled"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewAnalyzeHandler(testConfig(), &fakeAnalyzer{err: tc.err})
			recorder := httptest.NewRecorder()

			handler.UploadImage(recorder, multipartRequest(t, "/upload-image", "image", []byte("img")))

			assertStatusCode(t, recorder, tc.wantStatus)
			assertJSONError(t, recorder, tc.wantError)
		})
	}
}

func TestAnalyzeHandler_UploadImage_IsIdempotent(t *testing.T) {
	handler := NewAnalyzeHandler(testConfig(), staticAnalyzer(wholeFace))
	data := pngOfColor(t, 30, 30, 150, 110, 90)

	var first, second UploadImageResponse
	for i, target := range []*UploadImageResponse{&first, &second} {
		recorder := httptest.NewRecorder()
		handler.UploadImage(recorder, multipartRequest(t, "/upload-image", "image", data))
		assertStatusCode(t, recorder, http.StatusOK)
		parseJSONResponse(t, recorder, target)
		if i == 1 && first.AnalysisID == second.AnalysisID {
			t.Error("expected a fresh analysis_id per request")
		}
	}

	if first.SkinTone != second.SkinTone || *first.AverageColor != *second.AverageColor {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestStatusForOutcome(t *testing.T) {
	tests := []struct {
		outcome skintone.Outcome
		legacy  bool
		want    int
	}{
		{skintone.OutcomeOK, false, http.StatusOK},
		{skintone.OutcomeUnreadableImage, false, http.StatusBadRequest},
		{skintone.OutcomeNoFace, false, http.StatusUnprocessableEntity},
		{skintone.OutcomeNoSkinPatch, false, http.StatusUnprocessableEntity},
		{skintone.Outcome("bogus"), false, http.StatusInternalServerError},
		{skintone.OutcomeNoFace, true, http.StatusOK},
		{skintone.OutcomeUnreadableImage, true, http.StatusOK},
	}

	for _, tc := range tests {
		name := string(tc.outcome)
		if tc.legacy {
			name += "/legacy"
		}
		t.Run(name, func(t *testing.T) {
			if got := statusForOutcome(tc.outcome, tc.legacy); got != tc.want {
				t.Errorf("statusForOutcome(%q, %v) = %d, want %d", tc.outcome, tc.legacy, got, tc.want)
			}
		})
	}
}
