// Package queue moves notification delivery off the request path.
package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/opendev-studio/site-api/internal/api/metrics"
	"github.com/opendev-studio/site-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes notifications to a fixed set of workers, sharded by
// recipient so mail to one address is delivered in submission order.
// Delivery is fire-and-forget: worker errors are logged, never returned.
type Dispatcher struct {
	workers []chan ports.Notification
	service ports.NotificationService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NotificationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Notification, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a notification to the worker responsible for its recipient.
// It never blocks the caller: when the shard's buffer is full the
// notification is dropped, counted, and logged.
func (d *Dispatcher) Enqueue(n ports.Notification) {
	select {
	case d.workers[d.shardIndex(n.CustomerEmail)] <- n:
	default:
		metrics.NotificationsDroppedTotal.Inc()
		d.log.Warn().
			Str("kind", n.Kind).
			Str("recipient", n.CustomerEmail).
			Msg("dispatch queue full, notification dropped")
	}
}

func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, n); err != nil {
				d.log.Error().Err(err).
					Str("kind", n.Kind).
					Int("worker_id", id).
					Msg("notification delivery failed")
			}
		}
	}
}
