package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/contractflow/review-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes workflow notifications to a fixed set of workers using
// consistent hashing on the document id, preserving per-document delivery
// order.
type Dispatcher struct {
	workers  []chan ports.Notification
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, notifier ports.Notifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.Notification, numWorkers),
		notifier: notifier,
		log:      log,
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

// Enqueue sends a notification to the worker responsible for its document.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(n ports.Notification) {
	d.workers[d.shardIndex(n.DocumentID)] <- n
}

// shardIndex maps a document id deterministically to a worker index.
func (d *Dispatcher) shardIndex(documentID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(documentID))
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
			if err := d.notifier.Notify(ctx, n); err != nil {
				d.log.Error().Err(err).
					Str("document_id", n.DocumentID).
					Str("kind", string(n.Kind)).
					Int("worker_id", id).
					Msg("notification delivery failed")
			}
		}
	}
}
