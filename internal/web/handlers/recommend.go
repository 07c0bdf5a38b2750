package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/kozaktomas/skintone-advisor/internal/config"
	"github.com/kozaktomas/skintone-advisor/internal/recommend"
)

// RecommendHandler handles product recommendation endpoints.
type RecommendHandler struct {
	config  *config.Config
	catalog *recommend.Catalog
}

// NewRecommendHandler creates a new recommend handler.
func NewRecommendHandler(cfg *config.Config, catalog *recommend.Catalog) *RecommendHandler {
	return &RecommendHandler{
		config:  cfg,
		catalog: catalog,
	}
}

// RecommendRequest is the body of both recommendation endpoints.
// The quiz fields are only read by the full routine.
type RecommendRequest struct {
	SkinTone    string `json:"skin_tone"`
	MakeupStyle string `json:"makeupStyle"`
	SkinType    string `json:"skinType"`
	Finish      string `json:"finish"`
}

func logFallbacks(endpoint string, rec recommend.Recommendation) {
	if len(rec.Fallbacks) > 0 {
		log.Printf("%s: used defaults for %s", endpoint, strings.Join(rec.Fallbacks, ", "))
	}
}

// Recommend returns the foundation shortlist for a skin tone.
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	rec := h.catalog.Foundations(req.SkinTone)
	logFallbacks("recommend", rec)
	respondJSON(w, http.StatusOK, rec)
}

// FullMakeup returns the six-step routine for a skin tone and finished quiz.
func (h *RecommendHandler) FullMakeup(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	rec := h.catalog.Full(req.SkinTone, recommend.Quiz{
		MakeupStyle: req.MakeupStyle,
		SkinType:    req.SkinType,
		Finish:      req.Finish,
	})
	logFallbacks("full-makeup-recommend", rec)
	respondJSON(w, http.StatusOK, rec)
}
