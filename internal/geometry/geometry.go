// Package geometry provides distance helpers over normalized 2D landmark points.
package geometry

import "math"

// Point is a landmark position normalized to the frame, with X and Y in [0,1].
// Y grows downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// AspectRatio returns the vertical aperture (top to bottom) divided by the
// horizontal aperture (left to right) of four landmarks in points.
// It returns 0 when the horizontal distance is exactly zero.
func AspectRatio(points []Point, top, bottom, left, right int) float64 {
	vertical := Distance(points[top], points[bottom])
	horizontal := Distance(points[left], points[right])
	if horizontal == 0 {
		return 0
	}
	return vertical / horizontal
}

// Pixel scales a normalized point to integer pixel coordinates for a frame
// of the given size.
func (p Point) Pixel(width, height int) (int, int) {
	return int(p.X * float64(width)), int(p.Y * float64(height))
}
