// Package region locates the document inside a full photograph and crops and
// enhances it for recognition. Two detector variants exist: a contour-based
// detector built on OpenCV (available behind the "opencv" build tag) and a
// pixel-intensity boundary scanner with no external dependency. Detectors
// never fail: when no confident boundary is found the original image is
// returned unchanged.
package region

import "image"

// Detector finds the document region inside a photograph and returns a
// cropped, enhanced copy, or the original image when detection fails.
type Detector interface {
	DetectAndCrop(img image.Image) image.Image
}

// New returns the best detector compiled into the binary: the contour-based
// detector when OpenCV support is built in, otherwise the intensity scanner.
func New() Detector {
	return newPlatformDetector()
}
