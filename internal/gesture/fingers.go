// Package gesture classifies static hand poses from landmark geometry.
package gesture

import "github.com/ayusman/abhinaya/internal/detector"

// Finger positions within a FingerState.
const (
	Thumb = iota
	Index
	Middle
	Ring
	Pinky
	NumFingers
)

// FingerState records which fingers are extended, ordered thumb to pinky.
type FingerState [NumFingers]bool

// Count returns the number of extended fingers.
func (f FingerState) Count() int {
	n := 0
	for _, up := range f {
		if up {
			n++
		}
	}
	return n
}

// tipJoints pairs each non-thumb fingertip with its PIP joint.
var tipJoints = [NumFingers - 1][2]int{
	{detector.IndexTip, detector.IndexPIP},
	{detector.MiddleTip, detector.MiddlePIP},
	{detector.RingTip, detector.RingPIP},
	{detector.PinkyTip, detector.PinkyPIP},
}

// Fingers extracts the finger state of an upright hand facing the camera.
//
// The thumb counts as extended when its tip lies beyond the IP joint on the
// outer side of the hand; which side that is depends on handedness. The other
// fingers are extended when the tip is above (smaller Y than) the PIP joint.
// A sideways or rotated hand will be misread.
func Fingers(hand *detector.HandLandmarks) FingerState {
	var state FingerState
	if hand == nil {
		return state
	}

	tip := hand.Points[detector.ThumbTip].X
	ip := hand.Points[detector.ThumbIP].X
	if hand.Handedness == detector.HandRight {
		state[Thumb] = tip < ip
	} else {
		state[Thumb] = tip > ip
	}

	for i, tj := range tipJoints {
		state[i+1] = hand.Points[tj[0]].Y < hand.Points[tj[1]].Y
	}

	return state
}
