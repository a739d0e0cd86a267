package overlay

import "gocv.io/x/gocv"

// KeyEscape is the key code that ends a session.
const KeyEscape = 27

// Display shows annotated frames and reports key presses.
type Display interface {
	Show(frame *gocv.Mat)
	// WaitKey waits briefly for a key press and returns its code, or -1.
	WaitKey() int
	Close() error
}

// Window is a Display backed by an OpenCV HighGUI window.
type Window struct {
	win   *gocv.Window
	delay int
}

// NewWindow opens a resizable window of the given size.
func NewWindow(title string, width, height int) *Window {
	win := gocv.NewWindow(title)
	if width > 0 && height > 0 {
		win.ResizeWindow(width, height)
	}
	return &Window{win: win, delay: 5}
}

// Show displays frame in the window.
func (w *Window) Show(frame *gocv.Mat) {
	w.win.IMShow(*frame)
}

// WaitKey polls for a key for a few milliseconds and returns its low byte, or -1.
func (w *Window) WaitKey() int {
	key := w.win.WaitKey(w.delay)
	if key < 0 {
		return key
	}
	return key & 0xFF
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.win.Close()
}
