package skintone

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/kozaktomas/skintone-advisor/internal/constants"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Decode turns raw upload bytes into an NRGBA image anchored at (0,0).
// Source channel layout (YCbCr JPEG, paletted GIF, ...) is resolved here, so
// callers always see RGB order. Errors wrap ErrUnreadableImage, except when a
// valid image exceeds constants.MaxImagePixels, which wraps ErrImageTooLarge.
func Decode(data []byte) (*image.NRGBA, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrUnreadableImage)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrUnreadableImage)
	}
	if int64(cfg.Width)*int64(cfg.Height) > constants.MaxImagePixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}

	return toNRGBA(src), nil
}

// toNRGBA converts any image to non-premultiplied RGBA with its origin at (0,0).
func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	if img, ok := src.(*image.NRGBA); ok && bounds.Min == (image.Point{}) {
		return img
	}

	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	return dst
}
