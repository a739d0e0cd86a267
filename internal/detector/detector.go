package detector

import (
	"time"

	"gocv.io/x/gocv"
)

// HandDetector finds hands in a video frame.
type HandDetector interface {
	// DetectHands returns the landmarks of every hand found in frame.
	// Returns an empty slice if no hands are detected.
	DetectHands(frame *gocv.Mat) ([]HandLandmarks, error)
}

// FaceDetector finds a face mesh in a video frame.
type FaceDetector interface {
	// DetectFace returns the landmarks of the first face found in frame,
	// or nil if there is none.
	DetectFace(frame *gocv.Mat) (*FaceLandmarks, error)
}

// FrameDetector finds hands and a face in a single pass over a frame.
// Implementations that can share work between both models provide it.
type FrameDetector interface {
	Detect(frame *gocv.Mat) ([]HandLandmarks, *FaceLandmarks, error)
}

// Detector is a landmark provider for both hands and faces.
type Detector interface {
	HandDetector
	FaceDetector

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for landmark detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64

	// IdleTimeout stops the landmark service after this long without requests.
	IdleTimeout time.Duration

	// ScriptPath overrides the landmark service script lookup.
	ScriptPath string
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        2,
		MinConfidence:   0.7,
		MinTrackingConf: 0.7,
		IdleTimeout:     30 * time.Second,
	}
}
