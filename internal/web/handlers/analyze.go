package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/kozaktomas/skintone-advisor/internal/config"
	"github.com/kozaktomas/skintone-advisor/internal/constants"
	"github.com/kozaktomas/skintone-advisor/internal/skintone"
)

const (
	errNoImageUploaded = "No image uploaded"
	errImageTooLarge   = "image too large"
)

// Analyzer turns uploaded image bytes into a skin tone result.
type Analyzer interface {
	Analyze(ctx context.Context, data []byte) (skintone.Result, error)
}

// AnalyzeHandler handles skin tone analysis of uploaded photos.
type AnalyzeHandler struct {
	config   *config.Config
	analyzer Analyzer
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(cfg *config.Config, analyzer Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{
		config:   cfg,
		analyzer: analyzer,
	}
}

// ColorInfo describes the averaged cheek color.
type ColorInfo struct {
	R          float64 `json:"r"`
	G          float64 `json:"g"`
	B          float64 `json:"b"`
	Hex        string  `json:"hex"`
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
}

// FaceInfo describes the face the sample was taken from.
type FaceInfo struct {
	Box        skintone.BoundingBox `json:"box"`
	Confidence float64              `json:"confidence"`
	Count      int                  `json:"count"`
}

// UploadImageResponse is returned by the upload endpoint.
type UploadImageResponse struct {
	SkinTone     string           `json:"skin_tone"`
	Outcome      skintone.Outcome `json:"outcome"`
	AnalysisID   string           `json:"analysis_id"`
	AverageColor *ColorInfo       `json:"average_color,omitempty"`
	Face         *FaceInfo        `json:"face,omitempty"`
}

// statusForOutcome maps an analysis outcome to an HTTP status.
// In legacy mode every completed analysis is answered with 200.
func statusForOutcome(outcome skintone.Outcome, legacy bool) int {
	if legacy {
		return http.StatusOK
	}
	switch outcome {
	case skintone.OutcomeOK:
		return http.StatusOK
	case skintone.OutcomeUnreadableImage:
		return http.StatusBadRequest
	case skintone.OutcomeNoFace, skintone.OutcomeNoSkinPatch:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func newUploadImageResponse(id string, res skintone.Result) UploadImageResponse {
	resp := UploadImageResponse{
		SkinTone:   res.Label(),
		Outcome:    res.Outcome,
		AnalysisID: id,
	}
	if res.Outcome == skintone.OutcomeOK {
		h, s, l := res.Average.HSL()
		resp.AverageColor = &ColorInfo{
			R:          res.Average.R,
			G:          res.Average.G,
			B:          res.Average.B,
			Hex:        res.Average.Hex(),
			Hue:        h,
			Saturation: s,
			Lightness:  l,
		}
	}
	if res.FaceFound() {
		resp.Face = &FaceInfo{
			Box:        res.Box,
			Confidence: res.Confidence,
			Count:      res.Faces,
		}
	}
	return resp
}

// readUpload extracts the bytes of the "image" form field.
// It returns a message suitable for the client when the upload is unusable.
func (h *AnalyzeHandler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, int, string) {
	maxBytes := h.config.Web.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return nil, "", http.StatusRequestEntityTooLarge, errImageTooLarge
		case errors.Is(err, http.ErrNotMultipart):
			return nil, "", http.StatusBadRequest, errNoImageUploaded
		default:
			return nil, "", http.StatusBadRequest, "failed to parse multipart form"
		}
	}

	file, header, err := r.FormFile(constants.UploadFieldName)
	if err != nil {
		return nil, "", http.StatusBadRequest, errNoImageUploaded
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", http.StatusBadRequest, "failed to read uploaded image"
	}
	return data, header.Filename, 0, ""
}

// UploadImage analyzes the photo sent in the multipart field "image".
func (h *AnalyzeHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	data, filename, status, message := h.readUpload(w, r)
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	if message != "" {
		respondError(w, status, message)
		return
	}

	analysisID := uuid.New().String()
	res, err := h.analyzer.Analyze(r.Context(), data)
	if err != nil {
		log.Printf("analysis %s: file=%q failed: %v", analysisID, sanitizeForLog(filename), err)
		switch {
		case errors.Is(err, skintone.ErrImageTooLarge):
			respondError(w, http.StatusRequestEntityTooLarge, errImageTooLarge)
			return
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			respondError(w, http.StatusServiceUnavailable, "analysis cancelled")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to analyze image")
		return
	}

	log.Printf("analysis %s: file=%q bytes=%d outcome=%s skin_tone=%q faces=%d",
		analysisID, sanitizeForLog(filename), len(data), res.Outcome, res.Label(), res.Faces)

	respondJSON(w, statusForOutcome(res.Outcome, h.config.Web.LegacyStatus), newUploadImageResponse(analysisID, res))
}
