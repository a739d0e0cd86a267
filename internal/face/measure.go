// Package face tracks blinks and mouth openings and labels coarse emotion
// from face mesh geometry.
package face

import (
	"math"

	"github.com/ayusman/abhinaya/internal/detector"
	"github.com/ayusman/abhinaya/internal/geometry"
)

// Measurements are the per-frame distances derived from a face mesh.
type Measurements struct {
	RightEyeRatio float64 `json:"right_eye_ratio"`
	LeftEyeRatio  float64 `json:"left_eye_ratio"`
	MouthAperture float64 `json:"mouth_aperture"`
	// BrowHeight is the mean vertical span of both eyebrows. It is reported
	// but does not take part in emotion classification.
	BrowHeight float64 `json:"brow_height"`
}

// EyeRatio returns the mean of both eye aspect ratios.
func (m Measurements) EyeRatio() float64 {
	return (m.RightEyeRatio + m.LeftEyeRatio) / 2
}

// Measure computes eye, mouth and eyebrow distances. The mesh must be complete.
func Measure(f *detector.FaceLandmarks) Measurements {
	p := f.Points

	right := math.Abs(p[detector.RightBrowInner].Y - p[detector.RightBrowOuter].Y)
	left := math.Abs(p[detector.LeftBrowInner].Y - p[detector.LeftBrowOuter].Y)

	return Measurements{
		RightEyeRatio: geometry.AspectRatio(p, detector.RightEyeTop, detector.RightEyeBottom, detector.RightEyeOuter, detector.RightEyeInner),
		LeftEyeRatio:  geometry.AspectRatio(p, detector.LeftEyeTop, detector.LeftEyeBottom, detector.LeftEyeInner, detector.LeftEyeOuter),
		MouthAperture: geometry.Distance(p[detector.UpperLip], p[detector.LowerLip]),
		BrowHeight:    (right + left) / 2,
	}
}
