// Package queue implements the in-memory receipt delivery queue and its
// worker manager.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/sibabeauty/storefront/internal/checkout"
	"github.com/sibabeauty/storefront/internal/config"
	"github.com/sibabeauty/storefront/internal/mail"
	"github.com/sibabeauty/storefront/internal/obs"
)

// Manager coordinates workers delivering receipts for queued orders and
// scales the pool with the backlog.
type Manager struct {
	cfg    config.Config
	q      *Queue
	sender mail.Sender
	ctx    context.Context
	cancel context.CancelFunc

	mu            sync.Mutex
	workerCancels []context.CancelFunc
}

// NewManager constructs a Manager with the given config, queue, and sender.
func NewManager(cfg config.Config, q *Queue, sender mail.Sender) *Manager {
	return &Manager{cfg: cfg, q: q, sender: sender}
}

// Start begins delivery and autoscaling in the background.
func (m *Manager) Start(parent context.Context) {
	m.ctx, m.cancel = context.WithCancel(parent)
	m.q.Start(m.ctx, m.cfg.QueueHighWatermark)
	m.addWorkers(m.cfg.InitialWorkerCount)
	go m.scaler()
}

// Stop cancels background routines and stops workers.
func (m *Manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.mu.Lock()
	for _, c := range m.workerCancels {
		c()
	}
	m.workerCancels = nil
	m.mu.Unlock()
}

// scaler adjusts worker count based on backlog and configuration.
func (m *Manager) scaler() {
	t := time.NewTicker(m.cfg.ScaleInterval)
	defer t.Stop()
	idleTicks := 0
	for {
		select {
		case <-m.ctx.Done():
			return
		case <-t.C:
			backlog := m.q.BacklogSize()
			wc := m.WorkerCount()
			if backlog > wc*m.cfg.ScaleUpBacklogPerWorker && wc < m.cfg.WorkerMax {
				m.addWorkers(1)
				idleTicks = 0
				continue
			}
			if backlog == 0 {
				idleTicks++
				if idleTicks >= m.cfg.ScaleDownIdleTicks && wc > m.cfg.WorkerMin {
					m.removeWorkers(1)
					idleTicks = 0
				}
			} else {
				idleTicks = 0
			}
		}
	}
}

// addWorkers spawns n workers.
func (m *Manager) addWorkers(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i < n; i++ {
		wctx, cancel := context.WithCancel(m.ctx)
		m.workerCancels = append(m.workerCancels, cancel)
		go m.worker(wctx)
	}
	obs.Logger.Info("mail workers scaled", "worker_count", len(m.workerCancels))
}

// removeWorkers stops up to n workers.
func (m *Manager) removeWorkers(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n > len(m.workerCancels) {
		n = len(m.workerCancels)
	}
	for i := 0; i < n; i++ {
		c := m.workerCancels[len(m.workerCancels)-1]
		m.workerCancels = m.workerCancels[:len(m.workerCancels)-1]
		c()
	}
	obs.Logger.Info("mail workers scaled", "worker_count", len(m.workerCancels))
}

// worker drains orders from the queue and delivers their receipts.
func (m *Manager) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ord := <-m.q.Out():
			m.deliver(ord)
			m.q.MarkDelivered()
		}
	}
}

// deliver sends the customer receipt and the admin notification for one
// order. Failures are logged, not retried; receipt delivery must never
// block or fail an order.
func (m *Manager) deliver(ord checkout.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	msgs := make([]mail.Message, 0, 2)
	if msg, err := mail.CustomerReceipt(ord); err != nil {
		obs.Logger.Error("receipt_render_failed", "order_id", ord.ID, "error", err)
	} else {
		msgs = append(msgs, msg)
	}
	if msg, err := mail.AdminNotification(ord, m.cfg.AdminEmail); err != nil {
		obs.Logger.Error("receipt_render_failed", "order_id", ord.ID, "error", err)
	} else {
		msgs = append(msgs, msg)
	}
	for _, msg := range msgs {
		if err := m.sender.Send(ctx, msg); err != nil {
			obs.Logger.Error("receipt_send_failed", "order_id", ord.ID, "to", msg.To, "error", err)
			continue
		}
		obs.Logger.Info("receipt_sent", "order_id", ord.ID, "to", msg.To)
	}
}

// Enqueue proxies to the underlying queue.
func (m *Manager) Enqueue(ord checkout.Order) bool { return m.q.Enqueue(ord) }

// BacklogSize returns pending orders in the queue.
func (m *Manager) BacklogSize() int { return m.q.BacklogSize() }

// QueueDepth returns backlog plus buffered output items.
func (m *Manager) QueueDepth() int { return m.q.QueueDepth() }

// WorkerCount returns the current number of workers.
func (m *Manager) WorkerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.workerCancels)
}

// IsShuttingDown reports whether new enqueues are rejected.
func (m *Manager) IsShuttingDown() bool { return m.q.IsShuttingDown() }

// CloseIntake disallows future enqueues.
func (m *Manager) CloseIntake() { m.q.CloseIntake() }

// QueueMetrics exposes the underlying queue metrics.
func (m *Manager) QueueMetrics() (enq, delivered uint64, backlog, depth int) {
	return m.q.Metrics()
}

// DrainUntil blocks until the queue is fully drained or context is done.
func (m *Manager) DrainUntil(ctx context.Context) bool {
	for {
		enq, delivered, backlog, depth := m.q.Metrics()
		if backlog == 0 && depth == 0 && enq == delivered {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(50 * time.Millisecond):
		}
	}
}
