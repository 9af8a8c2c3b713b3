// Package audit provides the asynchronous session audit trail. Events are
// recorded off the request path; a recording failure never fails a request.
package audit

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/markaai/booking-gateway/internal/api/metrics"
	"github.com/markaai/booking-gateway/internal/core/domain"
	"github.com/markaai/booking-gateway/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes audit events to a fixed set of workers using consistent
// hashing on the session id, preserving per-session event ordering.
type Dispatcher struct {
	workers  []chan domain.AuditEvent
	recorder ports.AuditRecorder
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, recorder ports.AuditRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.AuditEvent, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an event to the worker responsible for its session. When the
// worker's buffer is full the event is dropped rather than blocking the
// request path.
func (d *Dispatcher) Enqueue(event domain.AuditEvent) {
	idx := d.shardIndex(event.SessionID)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn().
			Str("session_id", event.SessionID).
			Str("action", string(event.Action)).
			Msg("audit queue full, event dropped")
	}
}

// shardIndex maps a session id deterministically to a worker index.
func (d *Dispatcher) shardIndex(sessionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.recorder.Record(ctx, &event); err != nil {
				d.log.Error().Err(err).
					Str("session_id", event.SessionID).
					Str("action", string(event.Action)).
					Int("worker_id", id).
					Msg("audit recording failed")
			}
		}
	}
}
