// Package imaging provides the in-memory image transforms used by the
// recognition pipeline: grayscale conversion, contrast adjustment, sharpening,
// binary thresholding, cropping and smooth upscaling. Every function returns a
// new buffer; inputs are never mutated.
package imaging

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Grayscale converts an image to 8-bit grayscale.
func Grayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Set(x-b.Min.X, y-b.Min.Y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

// AdjustContrast blends each pixel against the image's mean luminance:
// factor 1.0 is a no-op, 1.5 boosts contrast by 50%, values below 1.0 flatten.
func AdjustContrast(img image.Image, factor float64) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	var sum, count float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			sum += 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(bl>>8)
			count++
		}
	}
	if count == 0 {
		return out
	}
	mean := sum / count

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			out.SetRGBA(x-b.Min.X, y-b.Min.Y, color.RGBA{
				R: clampByte(mean + (float64(r>>8)-mean)*factor),
				G: clampByte(mean + (float64(g>>8)-mean)*factor),
				B: clampByte(mean + (float64(bl>>8)-mean)*factor),
				A: uint8(a >> 8),
			})
		}
	}
	return out
}

// sharpenKernel is a standard 3x3 edge-boost kernel (sum 16).
var sharpenKernel = [3][3]float64{
	{-2, -2, -2},
	{-2, 32, -2},
	{-2, -2, -2},
}

// Sharpen applies a 3x3 sharpening convolution to a grayscale copy of img.
func Sharpen(img image.Image) *image.Gray {
	src := Grayscale(img)
	b := src.Bounds()
	out := image.NewGray(b)
	copy(out.Pix, src.Pix)

	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		for x := b.Min.X + 1; x < b.Max.X-1; x++ {
			var acc float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					acc += float64(src.GrayAt(x+kx, y+ky).Y) * sharpenKernel[ky+1][kx+1]
				}
			}
			out.SetGray(x, y, color.Gray{Y: clampByte(acc / 16)})
		}
	}
	return out
}

// Threshold binarizes a grayscale copy of img: pixels at or above the
// threshold become white, the rest black.
func Threshold(img image.Image, threshold uint8) *image.Gray {
	src := Grayscale(img)
	out := image.NewGray(src.Bounds())
	for i, p := range src.Pix {
		if p >= threshold {
			out.Pix[i] = 255
		}
	}
	return out
}

// Crop returns a copy of the given region of img, clamped to its bounds.
func Crop(img image.Image, rect image.Rectangle) image.Image {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	xdraw.Draw(out, out.Bounds(), img, rect.Min, xdraw.Src)
	return out
}

// Resize scales img to the given size with Catmull-Rom resampling.
func Resize(img image.Image, width, height int) image.Image {
	if width <= 0 || height <= 0 {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return out
}

// UpscaleMinDim scales img so its smaller dimension reaches target. A
// positive maxScale caps the magnification; zero or negative means uncapped.
// Images already at or above target are returned unchanged.
func UpscaleMinDim(img image.Image, target int, maxScale float64) image.Image {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w <= 0 || h <= 0 || (w >= target && h >= target) {
		return img
	}
	scale := float64(target) / float64(w)
	if s := float64(target) / float64(h); s > scale {
		scale = s
	}
	if maxScale > 0 && scale > maxScale {
		scale = maxScale
	}
	return Resize(img, int(float64(w)*scale), int(float64(h)*scale))
}

// UpscaleMaxDim scales img so its larger dimension approaches target, with
// the same maxScale cap semantics as UpscaleMinDim. Used after cropping,
// where the recognizer works best on images near the target size.
func UpscaleMaxDim(img image.Image, target int, maxScale float64) image.Image {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w <= 0 || h <= 0 || (w >= target && h >= target) {
		return img
	}
	scale := float64(target) / float64(w)
	if s := float64(target) / float64(h); s < scale {
		scale = s
	}
	if maxScale > 0 && scale > maxScale {
		scale = maxScale
	}
	return Resize(img, int(float64(w)*scale), int(float64(h)*scale))
}

func clampByte(v float64) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}
