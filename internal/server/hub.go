package server

import (
	"encoding/json"
	"log"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/abhinaya/internal/app"
)

// clientBuffer is how many results a slow websocket client may lag behind
// before results are dropped for it.
const clientBuffer = 16

// Hub keeps the latest frame of a session and fans results out to
// websocket clients. Publish never blocks the frame loop.
type Hub struct {
	mu      sync.RWMutex
	session string
	latest  *app.FrameResult
	jpeg    []byte
	viewers int
	clients map[chan []byte]struct{}
	dropped int64
}

// NewHub creates a hub for the given session ID.
func NewHub(session string) *Hub {
	return &Hub{
		session: session,
		clients: make(map[chan []byte]struct{}),
	}
}

// Session returns the session ID the hub reports.
func (h *Hub) Session() string {
	return h.session
}

// Publish records result as the latest frame and queues it for every client.
// The frame is JPEG-encoded only while a stream viewer is connected.
func (h *Hub) Publish(result app.FrameResult, frame *gocv.Mat) {
	msg, err := json.Marshal(result)
	if err != nil {
		log.Printf("Error encoding frame result: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = &result

	if h.viewers > 0 && frame != nil && !frame.Empty() {
		buf, err := gocv.IMEncode(".jpg", *frame)
		if err != nil {
			log.Printf("Error encoding frame: %v", err)
		} else {
			h.jpeg = append(h.jpeg[:0], buf.GetBytes()...)
			buf.Close()
		}
	}

	for ch := range h.clients {
		select {
		case ch <- msg:
		default:
			h.dropped++
		}
	}
}

// Latest returns the most recent result, or false before the first frame.
func (h *Hub) Latest() (app.FrameResult, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.latest == nil {
		return app.FrameResult{}, false
	}
	return *h.latest, true
}

// Frame returns a copy of the latest encoded frame, or nil.
func (h *Hub) Frame() []byte {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.jpeg) == 0 {
		return nil
	}
	return append([]byte(nil), h.jpeg...)
}

// Subscribe registers a websocket client and returns its result channel.
func (h *Hub) Subscribe() chan []byte {
	ch := make(chan []byte, clientBuffer)

	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()

	return ch
}

// Unsubscribe removes a client registered with Subscribe.
func (h *Hub) Unsubscribe(ch chan []byte) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
}

// Clients returns the number of websocket subscribers.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addViewer(delta int) {
	h.mu.Lock()
	h.viewers += delta
	if h.viewers == 0 {
		h.jpeg = h.jpeg[:0]
	}
	h.mu.Unlock()
}

// Dropped returns how many results were skipped for slow clients.
func (h *Hub) Dropped() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dropped
}
