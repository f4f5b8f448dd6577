package webhook

import (
	"errors"
	"sync"

	"github.com/thesimplekid/phoenixd-go/phoenixd"
)

var (
	ErrQueueFull   = errors.New("webhook queue full")
	ErrQueueClosed = errors.New("webhook queue closed")
)

// Queue is a bounded buffer of webhook events. The webhook handler
// offers into it; the application drains Events.
type Queue struct {
	mu     sync.RWMutex
	closed bool
	events chan phoenixd.WebhookResponse
}

func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{events: make(chan phoenixd.WebhookResponse, size)}
}

// Events is closed once Close is called and the buffer is drained.
func (q *Queue) Events() <-chan phoenixd.WebhookResponse {
	return q.events
}

// Offer enqueues event without blocking.
func (q *Queue) Offer(event phoenixd.WebhookResponse) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.events <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting events. Safe to call more than once.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.events)
	}
}

func (q *Queue) Len() int {
	return len(q.events)
}

func (q *Queue) Cap() int {
	return cap(q.events)
}
