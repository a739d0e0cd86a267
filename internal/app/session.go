// Package app runs the detection session: it reads frames, classifies hands
// and faces, and renders the overlay.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/ayusman/abhinaya/internal/capture"
	"github.com/ayusman/abhinaya/internal/detector"
	"github.com/ayusman/abhinaya/internal/face"
	"github.com/ayusman/abhinaya/internal/gesture"
	"github.com/ayusman/abhinaya/internal/overlay"
)

// ErrFrameRead is returned by Run when the camera fails to deliver a frame.
var ErrFrameRead = errors.New("camera frame read failed")

// Publisher receives every processed frame. Publish must not block.
type Publisher interface {
	Publish(result FrameResult, frame *gocv.Mat)
}

// Config holds the collaborators and thresholds of a session.
type Config struct {
	ID        string // empty generates a random ID
	Camera    capture.Camera
	Detector  detector.Detector
	Display   overlay.Display // nil runs headless
	Publisher Publisher       // optional

	Thresholds face.Thresholds
	Emotion    face.Classifier
	Mirror     bool
	Verbose    bool
}

// Session owns the tracker state for one run of the frame loop. It is
// driven by a single goroutine; frames are processed strictly in order.
type Session struct {
	id       string
	config   Config
	tracker  *face.Tracker
	sequence int64
}

// New creates a session with zeroed counters.
func New(config Config) *Session {
	id := config.ID
	if id == "" {
		id = uuid.NewString()
	}
	return &Session{
		id:      id,
		config:  config,
		tracker: face.NewTracker(config.Thresholds),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Counts returns the blink and mouth-open counters so far.
func (s *Session) Counts() face.Counts {
	return s.tracker.Counts()
}

// Run opens the camera and processes frames until the escape key is pressed,
// ctx is cancelled, or a frame cannot be read. A failed read is fatal and is
// returned wrapped in ErrFrameRead; the other two end the session cleanly.
func (s *Session) Run(ctx context.Context) error {
	cam := s.config.Camera
	if err := cam.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	defer func() {
		if err := cam.Close(); err != nil {
			log.Printf("Error closing camera: %v", err)
		}
	}()

	log.Printf("Session %s started", s.id)
	defer func() {
		c := s.tracker.Counts()
		log.Printf("Session %s ended after %d frames (blinks: %d, mouth opens: %d)",
			s.id, s.sequence, c.Blinks, c.MouthOpens)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frame, err := cam.ReadFrame()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFrameRead, err)
		}

		s.ProcessFrame(frame)

		if d := s.config.Display; d != nil {
			d.Show(frame)
		}
		frame.Close()

		if d := s.config.Display; d != nil && d.WaitKey() == overlay.KeyEscape {
			return nil
		}
	}
}

// ProcessFrame runs detection and classification on frame, draws the
// overlay onto it and publishes the result.
func (s *Session) ProcessFrame(frame *gocv.Mat) FrameResult {
	if s.config.Mirror {
		capture.Mirror(frame)
	}

	hands, mesh := s.detect(frame)

	result, annotation := s.Evaluate(hands, mesh)
	overlay.Draw(overlay.NewCanvas(frame), annotation)

	if s.config.Publisher != nil {
		s.config.Publisher.Publish(result, frame)
	}

	return result
}

// detect runs the detectors on frame. Failures are logged and count as an
// empty detection.
func (s *Session) detect(frame *gocv.Mat) ([]detector.HandLandmarks, *detector.FaceLandmarks) {
	if fd, ok := s.config.Detector.(detector.FrameDetector); ok {
		hands, mesh, err := fd.Detect(frame)
		if err != nil {
			log.Printf("Error detecting landmarks: %v", err)
			return nil, nil
		}
		return hands, mesh
	}

	hands, err := s.config.Detector.DetectHands(frame)
	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		hands = nil
	}

	mesh, err := s.config.Detector.DetectFace(frame)
	if err != nil {
		log.Printf("Error detecting face: %v", err)
		mesh = nil
	}

	return hands, mesh
}

// Evaluate classifies one frame's landmarks and advances the tracker.
// A missing or incomplete face leaves the tracker untouched.
func (s *Session) Evaluate(hands []detector.HandLandmarks, mesh *detector.FaceLandmarks) (FrameResult, overlay.Annotation) {
	s.sequence++
	result := FrameResult{
		Session:   s.id,
		Sequence:  s.sequence,
		Timestamp: time.Now(),
		Hands:     make([]HandResult, 0, len(hands)),
	}
	var annotation overlay.Annotation

	if mesh.Complete() {
		m, _ := s.tracker.Observe(mesh)
		result.Face = &m
		result.Emotion = s.config.Emotion.ClassifyAperture(m.MouthAperture)
		annotation.Face = mesh
		annotation.Emotion = result.Emotion
	} else if mesh != nil && s.config.Verbose {
		log.Printf("Frame %d: ignoring face mesh with %d points", s.sequence, len(mesh.Points))
	}

	for i := range hands {
		hand := &hands[i]
		fingers := gesture.Fingers(hand)
		label := gesture.Classify(fingers)

		result.Hands = append(result.Hands, HandResult{
			Handedness: hand.Handedness,
			Fingers:    fingers,
			Label:      label,
		})
		annotation.Hands = append(annotation.Hands, overlay.Hand{Landmarks: hand, Label: label})
	}

	result.Counts = s.tracker.Counts()
	result.Message = gesture.SceneMessage(result.Labels())
	annotation.Counts = result.Counts
	annotation.Message = result.Message

	if s.config.Verbose {
		log.Printf("Frame %d: hands=%v emotion=%q counts=%+v message=%q",
			s.sequence, result.Labels(), result.Emotion, result.Counts, result.Message)
	}

	return result, annotation
}
