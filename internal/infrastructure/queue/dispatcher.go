package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/researchnotes/portal-api/internal/api/metrics"
	"github.com/researchnotes/portal-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
	processTimeout = 5 * time.Second
)

// Dispatcher routes audit events to a fixed set of workers using consistent
// hashing on the actor, so each actor's trail is persisted in order.
//
// Workers process each event under their own timeout context rather than the
// caller's, so a shutdown signal does not fail persistence of events that
// were already accepted. Stop closes the worker channels and waits for the
// remaining buffered events to drain.
type Dispatcher struct {
	workers []chan ports.AuditEventInput
	service ports.AuditService
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.AuditEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AuditEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers run until Stop closes their
// channels and drains them.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Stop closes the worker channels and waits for buffered events to drain.
// Events enqueued after Stop are dropped. Returns ctx.Err() when the drain
// outlives ctx.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Enqueue sends an event to the worker responsible for its actor. The call
// is non-blocking up to channelBuffer capacity; when a worker channel is
// full, or the dispatcher is stopped, the event is dropped rather than
// stalling the request path.
func (d *Dispatcher) Enqueue(event ports.AuditEventInput) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn().Str("actor", event.Actor).Str("action", event.Action).Msg("dispatcher stopped, event dropped")
		return
	}

	idx := d.shardIndex(event.Actor)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn().Str("actor", event.Actor).Str("action", event.Action).Msg("audit queue full, event dropped")
	}
}

// shardIndex maps an actor deterministically to a worker index.
func (d *Dispatcher) shardIndex(actor string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actor))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(id int, ch <-chan ports.AuditEventInput) {
	defer d.wg.Done()
	worker := strconv.Itoa(id)
	for event := range ch {
		metrics.AuditQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))

		ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
		err := d.service.Process(ctx, event)
		cancel()
		if err != nil {
			d.log.Error().Err(err).
				Str("actor", event.Actor).
				Int("worker_id", id).
				Msg("audit event processing failed")
		}
	}
}
