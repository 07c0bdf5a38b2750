package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kozaktomas/skintone-advisor/internal/constants"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Config struct {
	Web      WebConfig
	Detector DetectorConfig
	Catalog  CatalogConfig
}

type WebConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string // "*" allows any origin
	LegacyStatus   bool     // answer every analysis outcome with 200, like the original frontend expects
	MaxUploadMB    int
}

// MaxUploadBytes returns the multipart size limit in bytes.
func (c *WebConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Addr returns the host:port listen address.
func (c *WebConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DetectorConfig struct {
	Backend       string  // yunet or haar
	ModelPath     string  // ONNX model for yunet, cascade XML for haar
	MinConfidence float64 // defaults to 0.5
	MaxSize       int     // longest image side fed to the detector
}

type CatalogConfig struct {
	Defaults    CatalogDefaults             `yaml:"defaults"`
	Foundations map[string][]CatalogProduct `yaml:"foundations"`
	Full        FullCatalog                 `yaml:"full"`
}

type CatalogDefaults struct {
	SkinTone    string `yaml:"skin_tone"`
	MakeupStyle string `yaml:"makeup_style"`
	SkinType    string `yaml:"skin_type"`
	Finish      string `yaml:"finish"`
}

type CatalogProduct struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
	Link string `yaml:"link"`
}

type FullCatalog struct {
	Link         string            `yaml:"link"`
	Foundation   map[string]string `yaml:"foundation"`
	Finish       map[string]string `yaml:"finish"`
	Blush        map[string]string `yaml:"blush"`
	Lipstick     map[string]string `yaml:"lipstick"`
	LipBalm      string            `yaml:"lip_balm"`
	Contour      map[string]string `yaml:"contour"`
	SettingSpray map[string]string `yaml:"setting_spray"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable as a float in [0, 1].
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 && f <= 1 {
		return f
	}
	return defaultVal
}

func envBool(key string, defaultVal bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// parseOrigins splits a comma-separated origin list, dropping empty entries.
func parseOrigins(s string) []string {
	var origins []string
	for o := range strings.SplitSeq(s, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// LoadCatalog parses the embedded product catalog.
func LoadCatalog() CatalogConfig {
	var catalog CatalogConfig
	if err := yaml.Unmarshal(catalogYAML, &catalog); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded catalog.yaml: " + err.Error())
	}
	return catalog
}

// DefaultModelPath returns the model file used when DETECTOR_MODEL_PATH is unset.
func DefaultModelPath(backend string) string {
	if backend == "haar" {
		return "models/haarcascade_frontalface_default.xml"
	}
	return "models/face_detection_yunet_2023mar.onnx"
}

func Load() *Config {
	backend := strings.ToLower(envString("DETECTOR_BACKEND", "yunet"))
	return &Config{
		Web: WebConfig{
			Host:           envString("WEB_HOST", "0.0.0.0"),
			Port:           envInt("WEB_PORT", 5000),
			AllowedOrigins: parseOrigins(envString("WEB_ALLOWED_ORIGINS", "*")),
			LegacyStatus:   envBool("WEB_LEGACY_STATUS", false),
			MaxUploadMB:    envInt("MAX_UPLOAD_MB", constants.DefaultMaxUploadMB),
		},
		Detector: DetectorConfig{
			Backend:       backend,
			ModelPath:     envString("DETECTOR_MODEL_PATH", DefaultModelPath(backend)),
			MinConfidence: envFloat("DETECTOR_MIN_CONFIDENCE", constants.DefaultMinConfidence),
			MaxSize:       envInt("DETECTOR_MAX_SIZE", constants.DefaultDetectorMaxSize),
		},
		Catalog: LoadCatalog(),
	}
}
