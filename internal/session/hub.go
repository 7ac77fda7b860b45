package session

import (
	"sync"

	"github.com/muzammilspiralsols/widget-booking/internal/widget"
	"github.com/muzammilspiralsols/widget-booking/pkg/logging"
)

const subscriberBuffer = 16

// Hub fans widget events out to the event-stream connections of a session.
// Slow subscribers lose events rather than block the widget.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[chan widget.Event]struct{}
	logger *logging.Logger
}

func NewHub(logger *logging.Logger) *Hub {
	if logger == nil {
		logger = logging.Default()
	}
	return &Hub{
		subs:   make(map[string]map[chan widget.Event]struct{}),
		logger: logger,
	}
}

// Subscribe registers a listener for sessionID. The returned cancel func
// closes the channel and must be called once the listener is done.
func (h *Hub) Subscribe(sessionID string) (<-chan widget.Event, func()) {
	ch := make(chan widget.Event, subscriberBuffer)
	h.mu.Lock()
	set, ok := h.subs[sessionID]
	if !ok {
		set = make(map[chan widget.Event]struct{})
		h.subs[sessionID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, sessionID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish delivers e to every listener of sessionID.
func (h *Hub) Publish(sessionID string, e widget.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[sessionID] {
		select {
		case ch <- e:
		default:
			h.logger.Warn("session: dropping event for slow subscriber", "session_id", sessionID, "type", e.Type)
		}
	}
}

// Subscribers reports how many listeners sessionID has.
func (h *Hub) Subscribers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[sessionID])
}
