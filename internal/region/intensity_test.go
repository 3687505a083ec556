package region

import (
	"image"
	"image/color"
	"testing"
)

func solidImage(w, h int, c color.Gray) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func paintRect(img *image.RGBA, r image.Rectangle, c color.Gray) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

func TestIntensityScanCropsBrightRegion(t *testing.T) {
	img := solidImage(200, 200, color.Gray{Y: 30})
	paintRect(img, image.Rect(40, 40, 160, 160), color.Gray{Y: 235})

	out := NewIntensityScan().DetectAndCrop(img)

	// Detected box is the bright region padded by 10px (30..169 on both
	// axes, 139px), then upscaled at the 2x cap.
	if got := out.Bounds().Dx(); got != 278 {
		t.Errorf("Dx = %d, want 278", got)
	}
	if got := out.Bounds().Dy(); got != 278 {
		t.Errorf("Dy = %d, want 278", got)
	}
}

func TestIntensityScanNoBrightRows(t *testing.T) {
	// Nothing clears the brightness threshold: the boundaries stay at the
	// image edges and the whole frame is enhanced and upscaled.
	img := solidImage(200, 200, color.Gray{Y: 30})

	out := NewIntensityScan().DetectAndCrop(img)

	if got := out.Bounds().Dx(); got != 400 {
		t.Errorf("Dx = %d, want 400", got)
	}
}

func TestIntensityScanRejectsNarrowRegion(t *testing.T) {
	// A bright strip covering under 30% of the width is treated as a
	// misdetection; the image passes through untouched.
	img := solidImage(200, 200, color.Gray{Y: 30})
	paintRect(img, image.Rect(90, 0, 131, 200), color.Gray{Y: 235})

	out := NewIntensityScan().DetectAndCrop(img)

	if out.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want original %v", out.Bounds(), img.Bounds())
	}
}

func TestNewReturnsDetector(t *testing.T) {
	d := New()
	if d == nil {
		t.Fatal("New() returned nil")
	}
	img := solidImage(50, 50, color.Gray{Y: 220})
	if out := d.DetectAndCrop(img); out == nil {
		t.Fatal("DetectAndCrop returned nil")
	}
}
