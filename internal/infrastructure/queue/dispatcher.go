package queue

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/aiblog/blog-platform/internal/api/metrics"
	"github.com/aiblog/blog-platform/internal/core/domain"
	"github.com/aiblog/blog-platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes page-view events to a fixed set of workers using
// consistent hashing on the post ID, guaranteeing per-post ordering of
// view-counter updates.
type Dispatcher struct {
	workers []chan domain.ViewEvent
	service ports.ViewService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ViewService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ViewEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ViewEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its post. The event
// is dropped when the worker's buffer is full — a page view is not worth
// blocking the request path for.
func (d *Dispatcher) Enqueue(event domain.ViewEvent) {
	idx := d.shardIndex(event.PostID)
	select {
	case d.workers[idx] <- event:
		metrics.ViewsQueueDepth.WithLabelValues(fmt.Sprint(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ViewsErrorsTotal.WithLabelValues("queue_full").Inc()
		d.log.Warn().Str("post_id", event.PostID).Int("worker_id", idx).Msg("view queue full, event dropped")
	}
}

// shardIndex maps a post ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(postID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(postID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ViewEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.ViewsQueueDepth.WithLabelValues(fmt.Sprint(id)).Set(float64(len(ch)))
			if err := d.service.Process(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("post_id", event.PostID).
					Int("worker_id", id).
					Msg("view processing failed")
			}
		}
	}
}
