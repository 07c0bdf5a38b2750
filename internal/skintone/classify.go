package skintone

import (
	"image"
	"math"

	"github.com/kozaktomas/skintone-advisor/internal/constants"
)

// SamplePatch derives the cheek sampling rectangle for a face box.
//
// Box coordinates are scaled to pixels and truncated. The patch is anchored at
// the horizontal middle of the box and CheekOffset down from its top, extends
// SamplePatchSize pixels right and down, and is clipped to bounds.
// A patch with no pixels left after clipping yields ErrNoSkinPatch.
func SamplePatch(bounds image.Rectangle, box BoundingBox) (image.Rectangle, error) {
	if !finite(box.XMin, box.YMin, box.Width, box.Height) {
		return image.Rectangle{}, ErrNoSkinPatch
	}

	w := float64(bounds.Dx())
	h := float64(bounds.Dy())

	xMin := int(box.XMin * w)
	yMin := int(box.YMin * h)
	boxW := int(box.Width * w)
	boxH := int(box.Height * h)

	cheekX := xMin + boxW/2
	cheekY := yMin + int(constants.CheekOffset*float64(boxH))

	patch := image.Rect(cheekX, cheekY, cheekX+constants.SamplePatchSize, cheekY+constants.SamplePatchSize).
		Add(bounds.Min).
		Intersect(bounds)
	if patch.Empty() {
		return image.Rectangle{}, ErrNoSkinPatch
	}
	return patch, nil
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// MeanColor averages each channel over every pixel of patch.
// patch must lie within img.Bounds() and be non-empty.
func MeanColor(img *image.NRGBA, patch image.Rectangle) AverageColor {
	var sumR, sumG, sumB uint64
	for y := patch.Min.Y; y < patch.Max.Y; y++ {
		off := img.PixOffset(patch.Min.X, y)
		for x := patch.Min.X; x < patch.Max.X; x++ {
			sumR += uint64(img.Pix[off])
			sumG += uint64(img.Pix[off+1])
			sumB += uint64(img.Pix[off+2])
			off += 4
		}
	}

	n := float64(patch.Dx() * patch.Dy())
	return AverageColor{
		R: float64(sumR) / n,
		G: float64(sumG) / n,
		B: float64(sumB) / n,
	}
}

// Categorize maps a mean RGB color to a category.
// Rules are checked in order with strict comparisons; the first match wins.
func Categorize(c AverageColor) Category {
	switch {
	case c.R > constants.LightMinRed && c.G > constants.LightMinGreen && c.B > constants.LightMinBlue:
		return Light
	case c.R > constants.MediumMinRed && c.G > constants.MediumMinGreen && c.B > constants.MediumMinBlue:
		return Medium
	default:
		return Dark
	}
}

// Classify samples the cheek patch of box in img and returns its category and mean color.
func Classify(img *image.NRGBA, box BoundingBox) (Category, AverageColor, error) {
	patch, err := SamplePatch(img.Bounds(), box)
	if err != nil {
		return "", AverageColor{}, err
	}

	avg := MeanColor(img, patch)
	return Categorize(avg), avg, nil
}
