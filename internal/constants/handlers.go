// Package constants provides shared constants used across the codebase.
package constants

// File upload constants
const (
	// DefaultMaxUploadMB is the default maximum upload size in megabytes
	DefaultMaxUploadMB = 20

	// UploadFieldName is the multipart field carrying the photo
	UploadFieldName = "image"
)

// Request body constants
const (
	// MaxJSONBodySize is the maximum accepted JSON request body in bytes (1MB)
	MaxJSONBodySize = 1 << 20
)
