package detector

import (
	"github.com/ayusman/abhinaya/internal/geometry"
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	face  *FaceLandmarks
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by DetectHands.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetFace sets the face that will be returned by DetectFace.
func (m *MockDetector) SetFace(face *FaceLandmarks) {
	m.face = face
}

// SetError sets the error that will be returned by both detect calls.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Calls returns how many detect calls have been made.
func (m *MockDetector) Calls() int {
	return m.calls
}

// DetectHands returns the pre-configured hands or error.
func (m *MockDetector) DetectHands(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// DetectFace returns the pre-configured face or error.
func (m *MockDetector) DetectFace(frame *gocv.Mat) (*FaceLandmarks, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.face, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// HandPose builds an upright hand facing the camera with the given fingers
// extended (thumb, index, middle, ring, pinky). Left hands are the right-hand
// geometry mirrored about the vertical axis.
func HandPose(handedness string, extended [5]bool) HandLandmarks {
	lm := HandLandmarks{
		Handedness: handedness,
		Score:      0.95,
	}

	lm.Points[Wrist] = geometry.Point{X: 0.50, Y: 0.80}

	// Thumb sits on the low-X side of the palm and points further out when extended.
	lm.Points[ThumbCMC] = geometry.Point{X: 0.44, Y: 0.76}
	lm.Points[ThumbMCP] = geometry.Point{X: 0.40, Y: 0.70}
	lm.Points[ThumbIP] = geometry.Point{X: 0.37, Y: 0.65}
	if extended[0] {
		lm.Points[ThumbTip] = geometry.Point{X: 0.32, Y: 0.60}
	} else {
		lm.Points[ThumbTip] = geometry.Point{X: 0.42, Y: 0.66}
	}

	fingers := []struct {
		mcp  int
		base float64
	}{
		{IndexMCP, 0.45},
		{MiddleMCP, 0.50},
		{RingMCP, 0.55},
		{PinkyMCP, 0.60},
	}
	for i, f := range fingers {
		lm.Points[f.mcp] = geometry.Point{X: f.base, Y: 0.68}
		if extended[i+1] {
			lm.Points[f.mcp+1] = geometry.Point{X: f.base, Y: 0.55}
			lm.Points[f.mcp+2] = geometry.Point{X: f.base, Y: 0.45}
			lm.Points[f.mcp+3] = geometry.Point{X: f.base, Y: 0.35}
		} else {
			lm.Points[f.mcp+1] = geometry.Point{X: f.base, Y: 0.62}
			lm.Points[f.mcp+2] = geometry.Point{X: f.base - 0.01, Y: 0.66}
			lm.Points[f.mcp+3] = geometry.Point{X: f.base - 0.02, Y: 0.70}
		}
	}

	if handedness != HandRight {
		for i := range lm.Points {
			lm.Points[i].X = 1 - lm.Points[i].X
		}
	}

	return lm
}

// ThumbsUpLandmarks returns a right hand with only the thumb extended.
func ThumbsUpLandmarks() HandLandmarks {
	return HandPose(HandRight, [5]bool{true, false, false, false, false})
}

// OpenPalmLandmarks returns a right hand with all fingers extended.
func OpenPalmLandmarks() HandLandmarks {
	return HandPose(HandRight, [5]bool{true, true, true, true, true})
}

// PointingLandmarks returns a right hand with only the index finger extended.
func PointingLandmarks() HandLandmarks {
	return HandPose(HandRight, [5]bool{false, true, false, false, false})
}

// FacePose builds a complete face mesh whose eyes have the given aspect
// ratio and whose lips are apart by mouthAperture. Eyebrow pairs sit 0.02
// apart vertically.
func FacePose(eyeRatio, mouthAperture float64) *FaceLandmarks {
	points := make([]geometry.Point, NumFaceLandmarks+10)
	for i := range points {
		points[i] = geometry.Point{X: 0.5, Y: 0.5}
	}

	// Both eyes are 0.10 wide.
	halfOpen := eyeRatio * 0.10 / 2
	points[RightEyeOuter] = geometry.Point{X: 0.35, Y: 0.40}
	points[RightEyeInner] = geometry.Point{X: 0.45, Y: 0.40}
	points[RightEyeTop] = geometry.Point{X: 0.40, Y: 0.40 - halfOpen}
	points[RightEyeBottom] = geometry.Point{X: 0.40, Y: 0.40 + halfOpen}

	points[LeftEyeInner] = geometry.Point{X: 0.55, Y: 0.40}
	points[LeftEyeOuter] = geometry.Point{X: 0.65, Y: 0.40}
	points[LeftEyeTop] = geometry.Point{X: 0.60, Y: 0.40 - halfOpen}
	points[LeftEyeBottom] = geometry.Point{X: 0.60, Y: 0.40 + halfOpen}

	points[UpperLip] = geometry.Point{X: 0.50, Y: 0.70 - mouthAperture/2}
	points[LowerLip] = geometry.Point{X: 0.50, Y: 0.70 + mouthAperture/2}

	points[RightBrowInner] = geometry.Point{X: 0.35, Y: 0.32}
	points[RightBrowOuter] = geometry.Point{X: 0.40, Y: 0.30}
	points[LeftBrowInner] = geometry.Point{X: 0.60, Y: 0.30}
	points[LeftBrowOuter] = geometry.Point{X: 0.65, Y: 0.32}

	return &FaceLandmarks{Points: points}
}
