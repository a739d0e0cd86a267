// Package detector provides hand and face landmark detection interfaces and types.
package detector

import "github.com/ayusman/abhinaya/internal/geometry"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Face mesh landmark indices used by the eye, mouth and eyebrow measurements.
const (
	RightEyeTop    = 159
	RightEyeBottom = 145
	RightEyeOuter  = 33
	RightEyeInner  = 133

	LeftEyeTop    = 386
	LeftEyeBottom = 374
	LeftEyeInner  = 362
	LeftEyeOuter  = 263

	UpperLip = 13
	LowerLip = 14

	RightBrowInner = 70
	RightBrowOuter = 105
	LeftBrowInner  = 300
	LeftBrowOuter  = 334

	// NumFaceLandmarks is the size of the base face mesh. Refined meshes
	// append iris points after it.
	NumFaceLandmarks = 468
)

// Handedness labels reported by the landmark service.
const (
	HandLeft  = "Left"
	HandRight = "Right"
)

// Connection joins two landmark indices for drawing.
type Connection struct {
	From, To int
}

// HandConnections is the MediaPipe hand skeleton.
var HandConnections = []Connection{
	{Wrist, ThumbCMC}, {ThumbCMC, ThumbMCP}, {ThumbMCP, ThumbIP}, {ThumbIP, ThumbTip},
	{Wrist, IndexMCP}, {IndexMCP, IndexPIP}, {IndexPIP, IndexDIP}, {IndexDIP, IndexTip},
	{IndexMCP, MiddleMCP}, {MiddleMCP, MiddlePIP}, {MiddlePIP, MiddleDIP}, {MiddleDIP, MiddleTip},
	{MiddleMCP, RingMCP}, {RingMCP, RingPIP}, {RingPIP, RingDIP}, {RingDIP, RingTip},
	{RingMCP, PinkyMCP}, {Wrist, PinkyMCP}, {PinkyMCP, PinkyPIP}, {PinkyPIP, PinkyDIP}, {PinkyDIP, PinkyTip},
}

// FaceKeypoints are the face mesh indices drawn on the overlay.
var FaceKeypoints = []int{
	RightEyeTop, RightEyeBottom, LeftEyeTop, LeftEyeBottom,
	UpperLip, LowerLip,
	RightEyeOuter, RightEyeInner, LeftEyeInner, LeftEyeOuter,
	RightBrowInner, LeftBrowInner,
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]geometry.Point `json:"points"`
	Handedness string                       `json:"handedness"` // "Left" or "Right"
	Score      float64                      `json:"score"`
}

// FaceLandmarks represents a face mesh in normalized coordinates.
type FaceLandmarks struct {
	Points []geometry.Point `json:"points"`
}

// Complete reports whether the mesh has every landmark the measurements index.
func (f *FaceLandmarks) Complete() bool {
	return f != nil && len(f.Points) >= NumFaceLandmarks
}
