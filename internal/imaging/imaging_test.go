package imaging

import (
	"image"
	"image/color"
	"testing"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8((x * 255) / max(w-1, 1))
			img.Set(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestGrayscaleDimensions(t *testing.T) {
	out := Grayscale(gradient(40, 20))
	if out.Bounds().Dx() != 40 || out.Bounds().Dy() != 20 {
		t.Errorf("bounds = %v, want 40x20", out.Bounds())
	}
}

func TestAdjustContrastSpreadsValues(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.SetGray(0, 0, color.Gray{Y: 100})
	img.SetGray(1, 0, color.Gray{Y: 160})

	out := Grayscale(AdjustContrast(img, 1.5))

	low := out.GrayAt(0, 0).Y
	high := out.GrayAt(1, 0).Y
	if int(high)-int(low) <= 60 {
		t.Errorf("contrast did not widen the spread: %d..%d", low, high)
	}
}

func TestAdjustContrastIdentity(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.SetGray(0, 0, color.Gray{Y: 100})
	img.SetGray(1, 0, color.Gray{Y: 160})

	out := Grayscale(AdjustContrast(img, 1.0))
	if out.GrayAt(0, 0).Y != 100 || out.GrayAt(1, 0).Y != 160 {
		t.Errorf("factor 1.0 changed pixels: %d, %d", out.GrayAt(0, 0).Y, out.GrayAt(1, 0).Y)
	}
}

func TestThresholdBinarizes(t *testing.T) {
	out := Threshold(gradient(64, 4), 128)
	for x := 0; x < 64; x++ {
		v := out.GrayAt(x, 0).Y
		if v != 0 && v != 255 {
			t.Fatalf("pixel %d has value %d, want 0 or 255", x, v)
		}
	}
}

func TestCrop(t *testing.T) {
	out := Crop(gradient(100, 100), image.Rect(10, 20, 60, 50))
	if out.Bounds().Dx() != 50 || out.Bounds().Dy() != 30 {
		t.Errorf("bounds = %v, want 50x30", out.Bounds())
	}
}

func TestUpscaleMinDim(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		target   int
		maxScale float64
		wantW    int
	}{
		{"capped", 100, 200, 1000, 2.0, 200},
		{"uncapped", 100, 200, 400, 0, 400},
		{"already large enough", 500, 600, 400, 2.0, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := UpscaleMinDim(gradient(tt.w, tt.h), tt.target, tt.maxScale)
			if got := out.Bounds().Dx(); got != tt.wantW {
				t.Errorf("Dx = %d, want %d", got, tt.wantW)
			}
		})
	}
}

func TestUpscaleMaxDimCapped(t *testing.T) {
	// Larger dimension approaches the target: scale = 1000/200 = 5,
	// capped at 2.
	out := UpscaleMaxDim(gradient(100, 200), 1000, 2.0)
	if out.Bounds().Dx() != 200 || out.Bounds().Dy() != 400 {
		t.Errorf("bounds = %v, want 200x400", out.Bounds())
	}
}
