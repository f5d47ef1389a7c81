// Package notify holds transient, severity-tagged messages.
package notify

import (
	"sync"
	"time"
)

// Severity tags a notification.
type Severity int

const (
	Default Severity = iota
	Success
	Error
	Info
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Error:
		return "error"
	case Info:
		return "info"
	default:
		return "default"
	}
}

// Default values.
const (
	DefaultTTL      = time.Second
	DefaultCapacity = 5
)

// Notification is one message on screen.
type Notification struct {
	ID       uint64
	Severity Severity
	Message  string
	Expires  time.Time
}

// Sink receives notifications.
type Sink interface {
	Push(sev Severity, msg string, now time.Time) Notification
}

// Host keeps the active notifications. It is safe for concurrent use.
type Host struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	nextID   uint64
	active   []Notification
}

// NewHost creates a host. Non-positive values fall back to the defaults.
func NewHost(ttl time.Duration, capacity int) *Host {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Host{ttl: ttl, capacity: capacity}
}

// TTL returns how long each notification stays visible.
func (h *Host) TTL() time.Duration {
	return h.ttl
}

// Push adds a notification expiring TTL after now.
// When the host is full the oldest notification is dropped.
func (h *Host) Push(sev Severity, msg string, now time.Time) Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	n := Notification{
		ID:       h.nextID,
		Severity: sev,
		Message:  msg,
		Expires:  now.Add(h.ttl),
	}
	h.active = append(h.active, n)
	if over := len(h.active) - h.capacity; over > 0 {
		h.active = append([]Notification(nil), h.active[over:]...)
	}
	return n
}

// Dismiss removes the notification with id. It returns false if absent.
func (h *Host) Dismiss(id uint64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.active {
		if h.active[i].ID == id {
			h.active = append(h.active[:i:i], h.active[i+1:]...)
			return true
		}
	}
	return false
}

// Expire drops every notification whose expiry is not after now and
// returns how many were removed.
func (h *Host) Expire(now time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	kept := h.active[:0:0]
	for _, n := range h.active {
		if n.Expires.After(now) {
			kept = append(kept, n)
		}
	}
	removed := len(h.active) - len(kept)
	h.active = kept
	return removed
}

// Active returns a copy of the visible notifications, oldest first.
func (h *Host) Active() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Notification, len(h.active))
	copy(out, h.active)
	return out
}

// Len returns the number of visible notifications.
func (h *Host) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.active)
}
