package queue

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sibabeauty/storefront/internal/checkout"
	"github.com/sibabeauty/storefront/internal/obs"
)

// Queue is a buffered order queue with a background broker. Orders wait
// in an unbounded backlog so checkout never blocks on receipt delivery.
type Queue struct {
	mu           sync.Mutex
	backlog      []checkout.Order
	notify       chan struct{}
	out          chan checkout.Order
	shuttingDown atomic.Bool

	enqueued  atomic.Uint64
	delivered atomic.Uint64
}

// New creates a Queue with a buffered output channel.
func New(outBuffer int) *Queue {
	if outBuffer <= 0 {
		outBuffer = 64
	}
	return &Queue{
		notify: make(chan struct{}, 1),
		out:    make(chan checkout.Order, outBuffer),
	}
}

// Start runs the broker loop.
func (q *Queue) Start(ctx context.Context, highWatermark int) {
	go q.broker(ctx, highWatermark)
}

// broker moves backlog items to the output channel.
func (q *Queue) broker(ctx context.Context, highWatermark int) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		q.flushOnce()
		if highWatermark > 0 {
			if sz := q.BacklogSize(); sz > highWatermark {
				obs.Logger.Warn("receipt backlog exceeds high watermark", "backlog_size", sz, "high_watermark", highWatermark)
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-q.notify:
		case <-ticker.C:
		}
	}
}

// flushOnce drains backlog into the output buffer.
func (q *Queue) flushOnce() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.backlog) > 0 && len(q.out) < cap(q.out) {
		item := q.backlog[0]
		q.backlog = q.backlog[1:]
		q.out <- item
	}
}

// Enqueue appends an order into the backlog and notifies the broker.
func (q *Queue) Enqueue(ord checkout.Order) bool {
	if q.shuttingDown.Load() {
		return false
	}
	q.enqueued.Add(1)
	q.mu.Lock()
	q.backlog = append(q.backlog, ord)
	q.mu.Unlock()
	select {
	case q.notify <- struct{}{}:
	default:
	}
	return true
}

// Out exposes the output channel of orders.
func (q *Queue) Out() <-chan checkout.Order { return q.out }

// BacklogSize returns the number of enqueued-but-not-yet-output orders.
func (q *Queue) BacklogSize() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.backlog)
}

// QueueDepth returns backlog plus buffered output items.
func (q *Queue) QueueDepth() int {
	q.mu.Lock()
	bl := len(q.backlog)
	q.mu.Unlock()
	return bl + len(q.out)
}

// MarkDelivered increases the delivered counter.
func (q *Queue) MarkDelivered() { q.delivered.Add(1) }

// Metrics returns counters and sizes for observability.
func (q *Queue) Metrics() (enq, delivered uint64, backlog, depth int) {
	enq = q.enqueued.Load()
	delivered = q.delivered.Load()
	backlog = q.BacklogSize()
	depth = q.QueueDepth()
	return enq, delivered, backlog, depth
}

// CloseIntake disallows future enqueues.
func (q *Queue) CloseIntake() { q.shuttingDown.Store(true) }

// IsShuttingDown reports if intake has been closed.
func (q *Queue) IsShuttingDown() bool { return q.shuttingDown.Load() }
