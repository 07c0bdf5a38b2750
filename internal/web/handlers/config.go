package handlers

import (
	"net/http"

	"github.com/kozaktomas/skintone-advisor/internal/config"
	"github.com/kozaktomas/skintone-advisor/internal/skintone"
)

// ConfigHandler handles configuration endpoints
type ConfigHandler struct {
	config *config.Config
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{
		config: cfg,
	}
}

// ConfigResponse represents the configuration response
type ConfigResponse struct {
	Detector     DetectorInfo `json:"detector"`
	MaxUploadMB  int          `json:"max_upload_mb"`
	LegacyStatus bool         `json:"legacy_status"`
	SkinTones    []string     `json:"skin_tones"`
}

// DetectorInfo describes the configured face detector
type DetectorInfo struct {
	Backend       string  `json:"backend"`
	MinConfidence float64 `json:"min_confidence"`
	MaxSize       int     `json:"max_size"`
}

// Get returns the active configuration
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	tones := make([]string, 0, len(skintone.Categories))
	for _, c := range skintone.Categories {
		tones = append(tones, string(c))
	}

	respondJSON(w, http.StatusOK, ConfigResponse{
		Detector: DetectorInfo{
			Backend:       h.config.Detector.Backend,
			MinConfidence: h.config.Detector.MinConfidence,
			MaxSize:       h.config.Detector.MaxSize,
		},
		MaxUploadMB:  h.config.Web.MaxUploadMB,
		LegacyStatus: h.config.Web.LegacyStatus,
		SkinTones:    tones,
	})
}
