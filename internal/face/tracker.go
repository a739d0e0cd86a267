package face

import "github.com/ayusman/abhinaya/internal/detector"

// Default thresholds, tuned for a typical face at webcam distance.
const (
	DefaultBlinkRatio = 0.25
	DefaultMouthOpen  = 0.05
)

// Thresholds configure the Tracker.
type Thresholds struct {
	// BlinkRatio is the mean eye aspect ratio below which the eyes count as closed.
	BlinkRatio float64
	// MouthOpen is the lip distance above which the mouth counts as open.
	MouthOpen float64
}

// DefaultThresholds returns the tracker defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		BlinkRatio: DefaultBlinkRatio,
		MouthOpen:  DefaultMouthOpen,
	}
}

// Counts is a snapshot of the tracker counters.
type Counts struct {
	Blinks     int `json:"blinks"`
	MouthOpens int `json:"mouth_opens"`
}

// Tracker counts blinks and mouth openings across frames. Each counter
// increments only on the frame its latch goes from released to held, so a
// held-closed eye or held-open mouth is counted once.
//
// A Tracker is not safe for concurrent use; frames must be fed in order.
type Tracker struct {
	thresholds Thresholds
	eyeClosed  bool
	mouthOpen  bool
	counts     Counts
}

// NewTracker returns a tracker with zeroed counters and released latches.
func NewTracker(t Thresholds) *Tracker {
	return &Tracker{thresholds: t}
}

// Update feeds one frame's mean eye aspect ratio and mouth aperture.
func (t *Tracker) Update(eyeRatio, mouthAperture float64) Counts {
	if eyeRatio < t.thresholds.BlinkRatio {
		if !t.eyeClosed {
			t.counts.Blinks++
			t.eyeClosed = true
		}
	} else {
		t.eyeClosed = false
	}

	if mouthAperture > t.thresholds.MouthOpen {
		if !t.mouthOpen {
			t.counts.MouthOpens++
			t.mouthOpen = true
		}
	} else {
		t.mouthOpen = false
	}

	return t.counts
}

// Observe measures a face mesh and feeds it to Update.
func (t *Tracker) Observe(f *detector.FaceLandmarks) (Measurements, Counts) {
	m := Measure(f)
	return m, t.Update(m.EyeRatio(), m.MouthAperture)
}

// Counts returns the current counters.
func (t *Tracker) Counts() Counts {
	return t.counts
}

// EyeClosed reports whether the eye latch is held.
func (t *Tracker) EyeClosed() bool {
	return t.eyeClosed
}

// MouthOpen reports whether the mouth latch is held.
func (t *Tracker) MouthOpen() bool {
	return t.mouthOpen
}
