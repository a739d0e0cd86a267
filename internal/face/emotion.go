package face

import "github.com/ayusman/abhinaya/internal/detector"

// Emotion is a coarse expression label.
type Emotion string

const (
	EmotionSurprised Emotion = "surprised"
	EmotionNeutral   Emotion = "neutral"
	EmotionHappy     Emotion = "happy"
)

// Default emotion thresholds on the lip distance. They are separate from
// the tracker's mouth-open threshold.
const (
	DefaultSurprised = 0.06
	DefaultNeutral   = 0.02
)

// Classifier labels emotion from the mouth aperture.
type Classifier struct {
	// Surprised is the aperture above which the face is surprised.
	Surprised float64
	// Neutral is the aperture below which the face is neutral.
	Neutral float64
}

// NewClassifier returns a Classifier with the default thresholds.
func NewClassifier() Classifier {
	return Classifier{
		Surprised: DefaultSurprised,
		Neutral:   DefaultNeutral,
	}
}

// ClassifyAperture labels a lip distance.
func (c Classifier) ClassifyAperture(mouthAperture float64) Emotion {
	if mouthAperture > c.Surprised {
		return EmotionSurprised
	}
	if mouthAperture < c.Neutral {
		return EmotionNeutral
	}
	return EmotionHappy
}

// Classify labels a face mesh. Eyebrow height is not consulted.
func (c Classifier) Classify(f *detector.FaceLandmarks) Emotion {
	return c.ClassifyAperture(Measure(f).MouthAperture)
}
