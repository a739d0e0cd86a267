package app

import (
	"time"

	"github.com/ayusman/abhinaya/internal/face"
	"github.com/ayusman/abhinaya/internal/gesture"
)

// HandResult is the classification of one detected hand.
type HandResult struct {
	Handedness string              `json:"handedness"`
	Fingers    gesture.FingerState `json:"fingers"`
	Label      gesture.Label       `json:"label"`
}

// FrameResult is everything the session derived from one frame.
type FrameResult struct {
	Session   string             `json:"session"`
	Sequence  int64              `json:"sequence"`
	Timestamp time.Time          `json:"timestamp"`
	Hands     []HandResult       `json:"hands"`
	Face      *face.Measurements `json:"face,omitempty"`
	Emotion   face.Emotion       `json:"emotion,omitempty"`
	Counts    face.Counts        `json:"counts"`
	Message   string             `json:"message,omitempty"`
}

// Labels returns the gesture label of every hand, in detection order.
func (r FrameResult) Labels() []gesture.Label {
	labels := make([]gesture.Label, len(r.Hands))
	for i, h := range r.Hands {
		labels[i] = h.Label
	}
	return labels
}
