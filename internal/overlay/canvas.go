package overlay

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Canvas is a Sink that draws directly onto a gocv frame.
type Canvas struct {
	mat *gocv.Mat
}

// NewCanvas wraps frame. The canvas does not own the frame.
func NewCanvas(frame *gocv.Mat) *Canvas {
	return &Canvas{mat: frame}
}

// Size returns the frame width and height in pixels.
func (c *Canvas) Size() (int, int) {
	return c.mat.Cols(), c.mat.Rows()
}

// Text draws text with its baseline starting at at.
func (c *Canvas) Text(text string, at image.Point, style Style) {
	gocv.PutText(c.mat, text, at, gocv.FontHersheySimplex, style.Scale, style.Color, style.Thickness)
}

// Point draws a filled, anti-aliased dot.
func (c *Canvas) Point(at image.Point, radius int, col color.RGBA) {
	gocv.CircleWithParams(c.mat, at, radius, col, -1, gocv.LineAA, 0)
}

// Line draws a straight segment.
func (c *Canvas) Line(from, to image.Point, col color.RGBA, thickness int) {
	gocv.Line(c.mat, from, to, col, thickness)
}
