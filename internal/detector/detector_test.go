package detector

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ayusman/abhinaya/internal/geometry"
)

const epsilon = 1e-9

func TestMockDetector(t *testing.T) {
	t.Run("returns empty results by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.DetectHands(nil)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if hands != nil {
			t.Errorf("expected nil hands, got %v", hands)
		}

		face, err := mock.DetectFace(nil)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if face != nil {
			t.Errorf("expected nil face, got %v", face)
		}
	})

	t.Run("returns configured hands and face", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]HandLandmarks{ThumbsUpLandmarks(), OpenPalmLandmarks()})
		mock.SetFace(FacePose(0.3, 0.01))

		hands, err := mock.DetectHands(nil)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 2 {
			t.Errorf("expected 2 hands, got %d", len(hands))
		}

		face, err := mock.DetectFace(nil)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if !face.Complete() {
			t.Error("expected a complete face mesh")
		}

		if mock.Calls() != 2 {
			t.Errorf("expected 2 calls, got %d", mock.Calls())
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()

		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		hands, err := mock.DetectHands(nil)
		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if hands != nil {
			t.Errorf("expected nil hands when error is set, got %v", hands)
		}

		if _, err := mock.DetectFace(nil); err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
	})

	t.Run("Close returns nil", func(t *testing.T) {
		if err := NewMockDetector().Close(); err != nil {
			t.Errorf("expected Close to return nil, got %v", err)
		}
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
		var _ Detector = (*MediaPipeDetector)(nil)
		var _ FrameDetector = (*MediaPipeDetector)(nil)
	})
}

func TestHandPose(t *testing.T) {
	t.Run("extended fingertips are above their PIP joint", func(t *testing.T) {
		hand := OpenPalmLandmarks()

		tips := []int{IndexTip, MiddleTip, RingTip, PinkyTip}
		pips := []int{IndexPIP, MiddlePIP, RingPIP, PinkyPIP}
		for i := range tips {
			if hand.Points[tips[i]].Y >= hand.Points[pips[i]].Y {
				t.Errorf("tip %d should be above PIP %d", tips[i], pips[i])
			}
		}
	})

	t.Run("curled fingertips are below their PIP joint", func(t *testing.T) {
		hand := ThumbsUpLandmarks()

		tips := []int{IndexTip, MiddleTip, RingTip, PinkyTip}
		pips := []int{IndexPIP, MiddlePIP, RingPIP, PinkyPIP}
		for i := range tips {
			if hand.Points[tips[i]].Y <= hand.Points[pips[i]].Y {
				t.Errorf("tip %d should be below PIP %d", tips[i], pips[i])
			}
		}
	})

	t.Run("left hand mirrors right hand", func(t *testing.T) {
		fingers := [5]bool{true, false, true, false, true}
		right := HandPose(HandRight, fingers)
		left := HandPose(HandLeft, fingers)

		if left.Handedness != HandLeft {
			t.Errorf("expected handedness Left, got %s", left.Handedness)
		}
		for i := 0; i < NumLandmarks; i++ {
			if math.Abs(left.Points[i].X-(1-right.Points[i].X)) > epsilon {
				t.Errorf("landmark %d X = %f, want %f", i, left.Points[i].X, 1-right.Points[i].X)
			}
			if left.Points[i].Y != right.Points[i].Y {
				t.Errorf("landmark %d Y = %f, want %f", i, left.Points[i].Y, right.Points[i].Y)
			}
		}
	})
}

func TestFacePose(t *testing.T) {
	face := FacePose(0.3, 0.04)

	rightRatio := geometry.AspectRatio(face.Points, RightEyeTop, RightEyeBottom, RightEyeOuter, RightEyeInner)
	if math.Abs(rightRatio-0.3) > epsilon {
		t.Errorf("right eye ratio = %f, want 0.3", rightRatio)
	}

	leftRatio := geometry.AspectRatio(face.Points, LeftEyeTop, LeftEyeBottom, LeftEyeInner, LeftEyeOuter)
	if math.Abs(leftRatio-0.3) > epsilon {
		t.Errorf("left eye ratio = %f, want 0.3", leftRatio)
	}

	mouth := geometry.Distance(face.Points[UpperLip], face.Points[LowerLip])
	if math.Abs(mouth-0.04) > epsilon {
		t.Errorf("mouth aperture = %f, want 0.04", mouth)
	}
}

func TestFaceLandmarks_Complete(t *testing.T) {
	var nilFace *FaceLandmarks
	if nilFace.Complete() {
		t.Error("nil face should not be complete")
	}

	short := &FaceLandmarks{Points: make([]geometry.Point, 100)}
	if short.Complete() {
		t.Error("100-point mesh should not be complete")
	}

	if !FacePose(0.3, 0).Complete() {
		t.Error("FacePose should be complete")
	}
}

func TestHandConnections(t *testing.T) {
	if len(HandConnections) != 21 {
		t.Errorf("expected 21 connections, got %d", len(HandConnections))
	}
	for _, c := range HandConnections {
		if c.From < 0 || c.From >= NumLandmarks || c.To < 0 || c.To >= NumLandmarks {
			t.Errorf("connection %v out of range", c)
		}
	}
}

func TestJSONHand_ToHandLandmarks(t *testing.T) {
	h := jsonHand{Handedness: HandLeft, Score: 0.8}
	for i := 0; i < NumLandmarks; i++ {
		h.Points = append(h.Points, jsonPoint{X: float64(i) / 100, Y: 0.5, Z: -0.1})
	}

	lm := h.toHandLandmarks()
	if lm.Handedness != HandLeft || lm.Score != 0.8 {
		t.Errorf("unexpected metadata %s %f", lm.Handedness, lm.Score)
	}
	if lm.Points[IndexTip].X != 0.08 {
		t.Errorf("index tip X = %f, want 0.08", lm.Points[IndexTip].X)
	}
}

func TestNewMediaPipeDetector(t *testing.T) {
	t.Run("missing script", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ScriptPath = filepath.Join(t.TempDir(), "nope.py")

		_, err := NewMediaPipeDetector(cfg)
		if !errors.Is(err, ErrServiceNotFound) {
			t.Errorf("expected ErrServiceNotFound, got %v", err)
		}
	})

	t.Run("explicit script path", func(t *testing.T) {
		script := filepath.Join(t.TempDir(), "landmark_service.py")
		if err := os.WriteFile(script, []byte("\n"), 0644); err != nil {
			t.Fatalf("write script: %v", err)
		}

		cfg := DefaultConfig()
		cfg.ScriptPath = script

		d, err := NewMediaPipeDetector(cfg)
		if err != nil {
			t.Fatalf("NewMediaPipeDetector() error = %v", err)
		}
		// Never started, so closing is a no-op.
		if err := d.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}

		args := d.serviceArgs()
		if len(args) != 6 || args[1] != "2" || args[3] != "0.7" {
			t.Errorf("unexpected service args %v", args)
		}
	})
}
