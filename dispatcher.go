package main

import (
	"context"
	"sync"
	"time"

	"github.com/muhammadolammi/resumestatus/internal/review"
	"go.uber.org/zap"
)

const (
	defaultDispatchBuffer = 64
	deliverAttempts       = 3
	deliverTimeout        = 30 * time.Second
)

// Dispatcher hands accepted resubmissions to every sink on a small worker
// pool, off the request path. Delivery failures are logged and dropped.
type Dispatcher struct {
	events chan review.Resubmission
	sinks  []Sink
	log    *zap.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(log *zap.Logger, buffer int, sinks ...Sink) *Dispatcher {
	if buffer <= 0 {
		buffer = defaultDispatchBuffer
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		events: make(chan review.Resubmission, buffer),
		sinks:  sinks,
		log:    log,
	}
}

// ResumeResubmitted enqueues ev without blocking. A full queue drops the event.
func (d *Dispatcher) ResumeResubmitted(ctx context.Context, ev review.Resubmission) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn("dispatcher closed, dropping resubmission event", zap.String("event_id", ev.ID.String()))
		return
	}
	select {
	case d.events <- ev:
	default:
		d.log.Warn("dispatch queue full, dropping resubmission event",
			zap.String("event_id", ev.ID.String()),
			zap.String("student_code", ev.StudentCode),
		)
	}
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()
	for ev := range d.events {
		d.log.Debug("delivering resubmission", zap.Int("worker", id+1), zap.String("event_id", ev.ID.String()))
		for _, sink := range d.sinks {
			d.deliver(sink, ev)
		}
	}
}

func (d *Dispatcher) deliver(sink Sink, ev review.Resubmission) {
	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()

	_, err := retry(deliverAttempts, func() (any, error) {
		return nil, sink.Deliver(ctx, ev)
	})
	if err != nil {
		d.log.Error("failed to deliver resubmission",
			zap.String("sink", sink.Name()),
			zap.String("event_id", ev.ID.String()),
			zap.String("student_code", ev.StudentCode),
			zap.Error(err),
		)
	}
}

// Start launches numWorkers delivery goroutines.
func (d *Dispatcher) Start(numWorkers int) {
	d.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go d.worker(i)
	}
	d.log.Info("dispatcher started", zap.Int("workers", numWorkers), zap.Int("sinks", len(d.sinks)))
}

// Close stops accepting events, drains the queue and waits for the workers.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.events)
	d.mu.Unlock()
	d.wg.Wait()
}
