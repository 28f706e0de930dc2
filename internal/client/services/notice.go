package services

import (
	"sync"
	"time"
)

// Notice holds one transient value (usually an error or a status line) that
// clears itself ttl after it was last shown. A non-positive ttl keeps the
// value until Clear. Close cancels any pending timer; Show is a no-op after.
type Notice[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	value   T
	present bool
	seq     uint64
	timer   *time.Timer
	closed  bool
	onClear func()
}

// NewNotice returns an empty notice. onClear, if set, runs after the timer
// clears the value; it is not called for explicit Clear.
func NewNotice[T any](ttl time.Duration, onClear func()) *Notice[T] {
	return &Notice[T]{ttl: ttl, onClear: onClear}
}

// Show replaces the current value and restarts the timer.
func (n *Notice[T]) Show(v T) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.stopLocked()
	n.value, n.present = v, true
	n.seq++
	if n.ttl > 0 {
		seq := n.seq
		n.timer = time.AfterFunc(n.ttl, func() { n.expire(seq) })
	}
}

// Current returns the value and whether one is showing.
func (n *Notice[T]) Current() (T, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.value, n.present
}

// Clear drops the value without waiting for the timer.
func (n *Notice[T]) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopLocked()
	n.resetLocked()
}

// Close stops the timer. The current value stays readable.
func (n *Notice[T]) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopLocked()
	n.closed = true
}

func (n *Notice[T]) expire(seq uint64) {
	n.mu.Lock()
	// A newer Show or a Clear got here first.
	if seq != n.seq || !n.present || n.closed {
		n.mu.Unlock()
		return
	}
	n.resetLocked()
	n.timer = nil
	cb := n.onClear
	n.mu.Unlock()

	if cb != nil {
		cb()
	}
}

func (n *Notice[T]) stopLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}

func (n *Notice[T]) resetLocked() {
	var zero T
	n.value, n.present = zero, false
	n.seq++
}
