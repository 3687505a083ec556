package ocr

import (
	"image"

	"github.com/scanstation/receipt-ocr/internal/imaging"
)

const (
	// preprocessTargetSize is the minimum dimension preprocessing scales
	// toward before recognition.
	preprocessTargetSize = 1000
	lightContrastBoost   = 1.3
	heavyContrastBoost   = 1.5
	binarizeThreshold    = 128
)

// LightPreprocess applies a gentle grayscale, upscale and contrast pass. It
// helps on faded receipts without destroying fine print.
func LightPreprocess(img image.Image) image.Image {
	var out image.Image = imaging.Grayscale(img)
	out = imaging.UpscaleMinDim(out, preprocessTargetSize, 0)
	return imaging.AdjustContrast(out, lightContrastBoost)
}

// AggressivePreprocess applies the full chain of grayscale, upscale, strong
// contrast, sharpening and binarization. It is a last resort: on clean scans
// it tends to make recognition worse, so the cascade only reaches for it
// when every other strategy came back empty.
func AggressivePreprocess(img image.Image) image.Image {
	var out image.Image = imaging.Grayscale(img)
	out = imaging.UpscaleMinDim(out, preprocessTargetSize, 0)
	out = imaging.AdjustContrast(out, heavyContrastBoost)
	out = imaging.Sharpen(out)
	return imaging.Threshold(out, binarizeThreshold)
}
