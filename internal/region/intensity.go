package region

import (
	"image"

	"github.com/scanstation/receipt-ocr/internal/imaging"
)

const (
	// Pixels brighter than this count as paper when scanning for boundaries.
	paperBrightness = 200
	// Every Nth pixel is sampled along each scanned row/column.
	sampleStride = 10
	// A row/column belongs to the paper once this share of samples is bright.
	paperRatio = 0.3
	// Padding subtracted/added around each detected boundary.
	boundaryPad = 10
	// The crop is applied only if it covers at least this share of each
	// dimension; smaller boxes are treated as misdetections.
	minCoverage = 0.3

	intensityContrastBoost = 1.5
	intensityTargetSize    = 1200
	maxUpscale             = 2.0
)

// IntensityScanDetector finds the paper region by scanning rows and columns
// for runs of bright pixels. It needs no contour library and is the fallback
// when OpenCV support is not compiled in.
type IntensityScanDetector struct{}

// NewIntensityScan returns the pixel-intensity boundary scanner.
func NewIntensityScan() *IntensityScanDetector {
	return &IntensityScanDetector{}
}

// DetectAndCrop scans inward from each edge for the first row/column that is
// mostly paper-bright, crops to the resulting box, boosts contrast and
// upscales for recognition. The original image is returned when no plausible
// box is found.
func (d *IntensityScanDetector) DetectAndCrop(img image.Image) image.Image {
	gray := imaging.Grayscale(img)
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	if w == 0 || h == 0 {
		return img
	}

	top := 0
	for y := 0; y < h; y++ {
		if rowIsPaper(gray, y, w) {
			top = max(0, y-boundaryPad)
			break
		}
	}
	bottom := h
	for y := h - 1; y >= 0; y-- {
		if rowIsPaper(gray, y, w) {
			bottom = min(h, y+boundaryPad)
			break
		}
	}
	left := 0
	for x := 0; x < w; x++ {
		if colIsPaper(gray, x, h) {
			left = max(0, x-boundaryPad)
			break
		}
	}
	right := w
	for x := w - 1; x >= 0; x-- {
		if colIsPaper(gray, x, h) {
			right = min(w, x+boundaryPad)
			break
		}
	}

	if float64(right-left) <= float64(w)*minCoverage || float64(bottom-top) <= float64(h)*minCoverage {
		return img
	}

	cropped := imaging.Crop(img, image.Rect(left, top, right, bottom))
	enhanced := imaging.AdjustContrast(cropped, intensityContrastBoost)
	return imaging.UpscaleMinDim(enhanced, intensityTargetSize, maxUpscale)
}

func rowIsPaper(gray *image.Gray, y, w int) bool {
	bright, total := 0, 0
	for x := 0; x < w; x += sampleStride {
		total++
		if gray.GrayAt(x, y).Y > paperBrightness {
			bright++
		}
	}
	return total > 0 && float64(bright)/float64(total) > paperRatio
}

func colIsPaper(gray *image.Gray, x, h int) bool {
	bright, total := 0, 0
	for y := 0; y < h; y += sampleStride {
		total++
		if gray.GrayAt(x, y).Y > paperBrightness {
			bright++
		}
	}
	return total > 0 && float64(bright)/float64(total) > paperRatio
}
