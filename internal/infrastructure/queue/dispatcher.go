package queue

import (
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/rusafhasan/agencymanagement/internal/api/metrics"
	"github.com/rusafhasan/agencymanagement/internal/core/authz"
	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

var _ authz.Observer = (*Dispatcher)(nil)

// Dispatcher routes audit events to a fixed set of workers using consistent
// hashing on the actor id, so one actor's events are persisted in order.
// Enqueueing never blocks: when a worker's channel is full the event is
// dropped and counted.
type Dispatcher struct {
	workers []chan domain.AuditEvent
	service ports.AuditService
	log     zerolog.Logger

	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	dropped atomic.Int64
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers exit once Stop has closed
// their channel and the backlog is drained.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Stop closes the queue and waits for the workers to drain it. Events
// observed afterwards are dropped.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// Observe keeps every denial and every permitted mutation.
func (d *Dispatcher) Observe(_ context.Context, ev authz.Event) {
	if ev.Result.Allowed() && !ev.Result.Action.Mutates() {
		return
	}
	d.Enqueue(toAuditEvent(ev))
}

// Enqueue hands an event to the worker responsible for its actor. It
// reports false when the event was dropped.
func (d *Dispatcher) Enqueue(ev domain.AuditEvent) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(ev, "queue closed")
		return false
	}
	idx := d.shardIndex(ev.ActorID)
	select {
	case d.workers[idx] <- ev:
		metrics.AuditQueueDepth.WithLabelValues(metrics.WorkerLabel(idx)).Set(float64(len(d.workers[idx])))
		return true
	default:
		d.drop(ev, "queue full")
		return false
	}
}

// Dropped returns how many events were discarded so far.
func (d *Dispatcher) Dropped() int64 { return d.dropped.Load() }

func (d *Dispatcher) drop(ev domain.AuditEvent, why string) {
	d.dropped.Add(1)
	metrics.AuditEventsTotal.WithLabelValues("dropped").Inc()
	d.log.Warn().
		Str("actor_id", ev.ActorID).
		Str("action", ev.Action).
		Str("cause", why).
		Msg("audit event dropped")
}

// shardIndex maps an actor id deterministically to a worker index.
func (d *Dispatcher) shardIndex(actorID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	defer d.wg.Done()
	label := metrics.WorkerLabel(id)

	for ev := range ch {
		metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

		start := time.Now()
		if err := d.service.Record(ctx, ev); err != nil {
			metrics.AuditEventsTotal.WithLabelValues("failed").Inc()
			d.log.Error().Err(err).
				Str("actor_id", ev.ActorID).
				Str("action", ev.Action).
				Int("worker_id", id).
				Msg("audit event persistence failed")
			continue
		}
		metrics.AuditWriteDuration.Observe(time.Since(start).Seconds())
		metrics.AuditEventsTotal.WithLabelValues("recorded").Inc()
	}
}

func toAuditEvent(ev authz.Event) domain.AuditEvent {
	out := domain.AuditEvent{
		ActorID:    ev.Caller.ID,
		ActorRole:  ev.Caller.Role,
		Action:     ev.Result.Action.String(),
		TargetID:   ev.TargetID,
		Decision:   domain.AuditDenied,
		OccurredAt: ev.OccurredAt,
	}
	if ev.Result.Allowed() {
		out.Decision = domain.AuditAuthorized
	}
	if ev.Result.Reason != authz.ReasonNone {
		out.Reason = ev.Result.Reason.String()
	}
	return out
}
