package detector

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/ayusman/abhinaya/internal/geometry"
	"gocv.io/x/gocv"
)

// ErrServiceNotFound is returned when the landmark service script cannot be located.
var ErrServiceNotFound = errors.New("landmark_service.py not found")

// Request modes understood by the landmark service.
const (
	modeHands byte = 'H'
	modeFace  byte = 'F'
	modeBoth  byte = 'B'
)

// MediaPipeDetector implements Detector using a Python MediaPipe subprocess.
// Each frame is sent as a mode byte, a 4-byte big-endian length and JPEG
// data; the service answers with a single JSON line.
type MediaPipeDetector struct {
	config    Config
	script    string
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	mu        sync.Mutex
	started   bool
	lastUsed  time.Time
	idleTimer *time.Timer
}

// NewMediaPipeDetector creates a new MediaPipe detector.
// The Python process is started lazily on first detection.
func NewMediaPipeDetector(config Config) (*MediaPipeDetector, error) {
	script := config.ScriptPath
	if script == "" {
		script = findServiceScript()
	}
	if script == "" {
		return nil, ErrServiceNotFound
	}
	if _, err := os.Stat(script); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
	}

	return &MediaPipeDetector{
		config: config,
		script: script,
	}, nil
}

// DetectHands analyzes a frame and returns detected hand landmarks.
func (d *MediaPipeDetector) DetectHands(frame *gocv.Mat) ([]HandLandmarks, error) {
	resp, err := d.request(modeHands, frame)
	if err != nil {
		return nil, err
	}
	return resp.hands(), nil
}

// DetectFace analyzes a frame and returns the first face mesh, if any.
func (d *MediaPipeDetector) DetectFace(frame *gocv.Mat) (*FaceLandmarks, error) {
	resp, err := d.request(modeFace, frame)
	if err != nil {
		return nil, err
	}
	return resp.face(), nil
}

// Detect runs both models on one encoded frame in a single round trip.
func (d *MediaPipeDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, *FaceLandmarks, error) {
	resp, err := d.request(modeBoth, frame)
	if err != nil {
		return nil, nil, err
	}
	return resp.hands(), resp.face(), nil
}

// Close shuts down the Python process.
func (d *MediaPipeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shutdown()
}

func (d *MediaPipeDetector) request(mode byte, frame *gocv.Mat) (*serviceResponse, error) {
	if frame == nil || frame.Empty() {
		return nil, errors.New("empty frame")
	}

	// Encode frame as JPEG
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureStarted(); err != nil {
		return nil, err
	}

	response, err := d.exchange(mode, buf.GetBytes())
	if err != nil {
		// The pipes are dead or out of step; the next request starts a new process.
		d.abort()
		return nil, err
	}
	if response.Error != "" {
		return nil, fmt.Errorf("landmark service: %s", response.Error)
	}

	d.lastUsed = time.Now()
	d.resetIdleTimer()

	return response, nil
}

// exchange writes one request and reads its reply line.
func (d *MediaPipeDetector) exchange(mode byte, data []byte) (*serviceResponse, error) {
	header := make([]byte, 5)
	header[0] = mode
	binary.BigEndian.PutUint32(header[1:], uint32(len(data)))

	if _, err := d.stdin.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if _, err := d.stdin.Write(data); err != nil {
		return nil, fmt.Errorf("write data: %w", err)
	}

	line, err := d.stdout.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var response serviceResponse
	if err := json.Unmarshal([]byte(line), &response); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &response, nil
}

func (d *MediaPipeDetector) ensureStarted() error {
	if d.started {
		return nil
	}

	// Use virtual environment Python if available
	pythonPath := findVenvPython()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	d.cmd = exec.Command(pythonPath, append([]string{d.script}, d.serviceArgs()...)...)

	stdin, err := d.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}

	stdout, err := d.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}

	d.cmd.Stderr = os.Stderr

	if err := d.cmd.Start(); err != nil {
		return fmt.Errorf("start landmark service: %w", err)
	}

	d.stdin = stdin
	d.stdout = bufio.NewReader(stdout)
	d.started = true
	d.lastUsed = time.Now()

	return nil
}

// serviceArgs passes the detection thresholds to the Python service.
func (d *MediaPipeDetector) serviceArgs() []string {
	return []string{
		"--max-hands", strconv.Itoa(d.config.MaxHands),
		"--min-detection-confidence", strconv.FormatFloat(d.config.MinConfidence, 'f', -1, 64),
		"--min-tracking-confidence", strconv.FormatFloat(d.config.MinTrackingConf, 'f', -1, 64),
	}
}

func (d *MediaPipeDetector) shutdown() error {
	if !d.started {
		return nil
	}

	if d.idleTimer != nil {
		d.idleTimer.Stop()
		d.idleTimer = nil
	}

	if d.stdin != nil {
		d.stdin.Close()
	}

	err := d.cmd.Wait()
	d.started = false
	d.cmd = nil
	d.stdin = nil
	d.stdout = nil

	return err
}

// abort kills a process whose pipes can no longer be trusted.
func (d *MediaPipeDetector) abort() {
	if !d.started {
		return
	}
	if d.cmd.Process != nil {
		d.cmd.Process.Kill()
	}
	if err := d.shutdown(); err != nil {
		log.Printf("Landmark service stopped: %v", err)
	}
}

func (d *MediaPipeDetector) resetIdleTimer() {
	if d.config.IdleTimeout <= 0 {
		return
	}
	if d.idleTimer != nil {
		d.idleTimer.Stop()
	}
	d.idleTimer = time.AfterFunc(d.config.IdleTimeout, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.shutdown()
	})
}

func findServiceScript() string {
	execPath, err := os.Executable()
	var execDir string
	if err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"scripts/landmark_service.py",
		"../scripts/landmark_service.py",
		filepath.Join(execDir, "scripts/landmark_service.py"),
		filepath.Join(os.Getenv("HOME"), ".abhinaya/scripts/landmark_service.py"),
	}

	return firstExisting(candidates)
}

// findVenvPython looks for a Python interpreter in a virtual environment.
func findVenvPython() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execDir := filepath.Dir(execPath)

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".abhinaya/venv/bin/python"),
	}

	return firstExisting(candidates)
}

func firstExisting(candidates []string) string {
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}

// serviceResponse is the JSON line written by the Python service.
type serviceResponse struct {
	Hands []jsonHand  `json:"hands"`
	Face  []jsonPoint `json:"face"`
	Error string      `json:"error,omitempty"`
}

type jsonHand struct {
	Points     []jsonPoint `json:"points"`
	Handedness string      `json:"handedness"`
	Score      float64     `json:"score"`
}

// jsonPoint carries the service's depth value, which the 2D heuristics ignore.
type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (h jsonHand) toHandLandmarks() HandLandmarks {
	lm := HandLandmarks{
		Handedness: h.Handedness,
		Score:      h.Score,
	}

	for i := 0; i < NumLandmarks && i < len(h.Points); i++ {
		lm.Points[i] = geometry.Point{X: h.Points[i].X, Y: h.Points[i].Y}
	}

	return lm
}

// hands converts every hand that carries all 21 landmarks. Partial hands
// are dropped rather than zero-filled.
func (r *serviceResponse) hands() []HandLandmarks {
	result := make([]HandLandmarks, 0, len(r.Hands))
	for _, h := range r.Hands {
		if len(h.Points) < NumLandmarks {
			continue
		}
		result = append(result, h.toHandLandmarks())
	}
	return result
}

// face returns the face mesh, or nil when the service found none.
func (r *serviceResponse) face() *FaceLandmarks {
	if len(r.Face) == 0 {
		return nil
	}

	face := &FaceLandmarks{Points: make([]geometry.Point, len(r.Face))}
	for i, p := range r.Face {
		face.Points[i] = geometry.Point{X: p.X, Y: p.Y}
	}
	return face
}
