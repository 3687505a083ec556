//go:build !opencv

package region

func newPlatformDetector() Detector {
	return NewIntensityScan()
}
