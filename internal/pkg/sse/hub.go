package sse

import (
	"sync"
)

// Event names published after record writes.
const (
	EventSaleRecorded  = "sale_recorded"
	EventSaleUpdated   = "sale_updated"
	EventSaleDeleted   = "sale_deleted"
	EventShiftRecorded = "shift_recorded"
	EventShiftUpdated  = "shift_updated"
	EventShiftDeleted  = "shift_deleted"
)

// Event is pushed to every open stream of one employee
type Event struct {
	EmployeeID string
	Event      string
	Data       interface{}
}

// Publisher is what record-writing services need from the hub.
type Publisher interface {
	Publish(employeeID string, event Event)
}

// Hub fans events out to the open dashboard streams of each employee
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	bufferSize  int
}

// NewHub creates a hub whose subscriber channels hold bufferSize pending events.
func NewHub(bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = 10
	}
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
		bufferSize:  bufferSize,
	}
}

// Subscribe registers a stream for employeeID and returns its channel and an unsubscribe func.
func (h *Hub) Subscribe(employeeID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.bufferSize)

	if h.subscribers[employeeID] == nil {
		h.subscribers[employeeID] = make(map[chan Event]struct{})
	}
	h.subscribers[employeeID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[employeeID], ch)
			close(ch)
			if len(h.subscribers[employeeID]) == 0 {
				delete(h.subscribers, employeeID)
			}
		})
	}

	return ch, cleanup
}

// Publish delivers event to every stream of employeeID. Full channels are skipped.
func (h *Hub) Publish(employeeID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.EmployeeID = employeeID
	for ch := range h.subscribers[employeeID] {
		select {
		case ch <- event:
		default:
			// Slow reader; the dashboard refetches on the next event anyway.
		}
	}
}

// SubscriberCount returns the number of open streams for employeeID
func (h *Hub) SubscriberCount(employeeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[employeeID])
}
