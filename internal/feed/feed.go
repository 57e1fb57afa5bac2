// Package feed implements the in-process fanout bus that delivers
// finalized incidents to all currently-connected observers. There is no
// history: a subscriber only sees incidents published after it
// subscribed.
package feed

import (
	"sync"

	"github.com/linnemanlabs/beacon/internal/incident"
)

// DefaultBufferSize is the per-subscriber channel depth.
const DefaultBufferSize = 16

// Subscription is one observer's handle on the bus.
type Subscription struct {
	ch chan *incident.Incident
}

// C returns the channel future publications arrive on. The channel is
// never closed; consumers stop by unsubscribing and walking away.
func (s *Subscription) C() <-chan *incident.Incident { return s.ch }

// Bus fans published incidents out to every current subscriber.
// Delivery per subscriber is FIFO across publishes; a slow subscriber
// loses its oldest backlog, never the publisher's time.
type Bus struct {
	mu      sync.Mutex
	subs    map[*Subscription]struct{}
	bufSize int
	metrics *Metrics
}

// New creates a Bus. A non-positive bufSize falls back to
// DefaultBufferSize.
func New(bufSize int, metrics *Metrics) *Bus {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	return &Bus{
		subs:    make(map[*Subscription]struct{}),
		bufSize: bufSize,
		metrics: metrics,
	}
}

// Subscribe registers a new observer and returns its handle.
func (b *Bus) Subscribe() *Subscription {
	sub := &Subscription{ch: make(chan *incident.Incident, b.bufSize)}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	n := len(b.subs)
	b.mu.Unlock()

	b.metrics.SetSubscribers(n)
	return sub
}

// Unsubscribe removes the handle. Calling it twice, or with a handle
// from another bus, is harmless.
func (b *Bus) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	delete(b.subs, sub)
	n := len(b.subs)
	b.mu.Unlock()

	b.metrics.SetSubscribers(n)
}

// Publish delivers inc to every current subscriber without blocking.
// When a subscriber's buffer is full the oldest buffered record is
// dropped in favor of the new one.
func (b *Bus) Publish(inc *incident.Incident) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subs {
		select {
		case sub.ch <- inc:
			continue
		default:
		}

		// Full buffer: evict the oldest entry. Publish holds the only
		// send side, so the retry below has room unless a reader drained
		// the channel first, which also makes room.
		select {
		case <-sub.ch:
			b.metrics.IncDropped()
		default:
		}
		select {
		case sub.ch <- inc:
		default:
		}
	}
}
