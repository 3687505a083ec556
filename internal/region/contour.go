//go:build opencv

package region

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/scanstation/receipt-ocr/internal/imaging"
)

const (
	// Share of the total image area a contour must cover to count as paper.
	minContourAreaRatio = 0.05
	// Padding around the detected bounding rectangle, relative to its size.
	padRatio = 0.02
	minPadPx = 5

	claheClipLimit       = 3.0
	claheTileSize        = 8
	contourContrastAlpha = 1.2
	contourContrastBeta  = 10
	contourTargetSize    = 2000
)

// Binarization thresholds tried in order; bright paper usually separates at
// 200 but darker captures need the lower cuts.
var paperThresholds = []float32{200, 180, 160}

// ContourDetector finds the paper region via thresholding, morphological
// cleanup and external-contour area selection.
type ContourDetector struct{}

// NewContour returns the OpenCV-backed contour detector.
func NewContour() *ContourDetector {
	return &ContourDetector{}
}

func newPlatformDetector() Detector {
	return NewContour()
}

// DetectAndCrop binarizes the image at descending thresholds, keeps the
// largest external contour covering at least 5% of the image, crops to its
// padded bounding rectangle and enhances the crop for recognition. The
// original image is returned when no plausible contour is found.
func (d *ContourDetector) DetectAndCrop(img image.Image) image.Image {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return img
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorRGBToGray)

	w, h := mat.Cols(), mat.Rows()
	totalArea := float64(w * h)

	var bestRect image.Rectangle
	var bestArea float64

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3))
	defer kernel.Close()

	for _, threshold := range paperThresholds {
		binary := gocv.NewMat()
		gocv.Threshold(gray, &binary, threshold, 255, gocv.ThresholdBinary)
		gocv.MorphologyEx(binary, &binary, gocv.MorphClose, kernel)
		gocv.MorphologyEx(binary, &binary, gocv.MorphOpen, kernel)

		contours := gocv.FindContours(binary, gocv.RetrievalExternal, gocv.ChainApproxSimple)
		for i := 0; i < contours.Size(); i++ {
			contour := contours.At(i)
			area := gocv.ContourArea(contour)
			if area > totalArea*minContourAreaRatio && area > bestArea {
				bestArea = area
				bestRect = gocv.BoundingRect(contour)
			}
		}
		contours.Close()
		binary.Close()
	}

	if bestArea == 0 {
		return img
	}

	padX := max(minPadPx, int(float64(bestRect.Dx())*padRatio))
	padY := max(minPadPx, int(float64(bestRect.Dy())*padRatio))
	rect := image.Rect(bestRect.Min.X-padX, bestRect.Min.Y-padY, bestRect.Max.X+padX, bestRect.Max.Y+padY).
		Intersect(image.Rect(0, 0, w, h))
	if rect.Empty() {
		return img
	}

	cropped := mat.Region(rect)
	defer cropped.Close()

	croppedGray := gocv.NewMat()
	defer croppedGray.Close()
	gocv.CvtColor(cropped, &croppedGray, gocv.ColorRGBToGray)

	clahe := gocv.NewCLAHEWithParams(claheClipLimit, image.Pt(claheTileSize, claheTileSize))
	defer clahe.Close()
	equalized := gocv.NewMat()
	defer equalized.Close()
	clahe.Apply(croppedGray, &equalized)

	enhanced := gocv.NewMat()
	defer enhanced.Close()
	gocv.ConvertScaleAbs(equalized, &enhanced, contourContrastAlpha, contourContrastBeta)

	out, err := enhanced.ToImage()
	if err != nil {
		return img
	}
	return imaging.UpscaleMaxDim(out, contourTargetSize, maxUpscale)
}
