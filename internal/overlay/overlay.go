// Package overlay draws detection results onto frames and shows them in a window.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ayusman/abhinaya/internal/detector"
	"github.com/ayusman/abhinaya/internal/face"
	"github.com/ayusman/abhinaya/internal/gesture"
)

// Overlay colors.
var (
	Green  = color.RGBA{G: 255}
	Blue   = color.RGBA{B: 255}
	Yellow = color.RGBA{R: 255, G: 255}
	Cyan   = color.RGBA{G: 255, B: 255}
)

// Style describes how text is rendered.
type Style struct {
	Color     color.RGBA
	Scale     float64
	Thickness int
}

// Text styles used by Draw.
var (
	HandStyle    = Style{Color: Green, Scale: 0.6, Thickness: 2}
	CounterStyle = Style{Color: Yellow, Scale: 0.6, Thickness: 2}
	EmotionStyle = Style{Color: Cyan, Scale: 0.7, Thickness: 2}
	MessageStyle = Style{Color: Yellow, Scale: 0.8, Thickness: 2}
)

// Sink accepts drawing requests for one frame. Calls have no result.
type Sink interface {
	// Size returns the frame width and height in pixels.
	Size() (int, int)
	Text(text string, at image.Point, style Style)
	Point(at image.Point, radius int, c color.RGBA)
	Line(from, to image.Point, c color.RGBA, thickness int)
}

// Hand is one detected hand with its classification.
type Hand struct {
	Landmarks *detector.HandLandmarks
	Label     gesture.Label
}

// Annotation is everything drawn for a single frame.
type Annotation struct {
	Hands   []Hand
	Face    *detector.FaceLandmarks
	Emotion face.Emotion
	Counts  face.Counts
	Message string
}

// Draw renders an annotation: face keypoints, hand skeletons with their
// labels along the top, and counters, emotion and message along the bottom.
func Draw(s Sink, a Annotation) {
	w, h := s.Size()

	if a.Face.Complete() {
		for _, idx := range detector.FaceKeypoints {
			s.Point(pixel(a.Face.Points[idx].Pixel(w, h)), 2, Yellow)
		}
	}

	for i, hand := range a.Hands {
		if hand.Landmarks == nil {
			continue
		}
		drawHand(s, hand.Landmarks, w, h)
		s.Text(fmt.Sprintf("%s: %s", hand.Landmarks.Handedness, hand.Label), image.Pt(10, 35+i*30), HandStyle)
	}

	s.Text(fmt.Sprintf("BLINKS: %d", a.Counts.Blinks), image.Pt(10, h-70), CounterStyle)
	s.Text(fmt.Sprintf("MOUTH OPEN: %d", a.Counts.MouthOpens), image.Pt(10, h-40), CounterStyle)
	if a.Emotion != "" {
		s.Text(fmt.Sprintf("EMOTION: %s", a.Emotion), image.Pt(10, h-100), EmotionStyle)
	}
	if a.Message != "" {
		s.Text(a.Message, image.Pt(10, h-130), MessageStyle)
	}
}

func drawHand(s Sink, hand *detector.HandLandmarks, w, h int) {
	for _, c := range detector.HandConnections {
		from := pixel(hand.Points[c.From].Pixel(w, h))
		to := pixel(hand.Points[c.To].Pixel(w, h))
		s.Line(from, to, Blue, 1)
	}
	for _, p := range hand.Points {
		s.Point(pixel(p.Pixel(w, h)), 2, Green)
	}
}

func pixel(x, y int) image.Point {
	return image.Pt(x, y)
}
