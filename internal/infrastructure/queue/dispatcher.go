package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/logicem/callcenter-api/internal/api/metrics"
	"github.com/logicem/callcenter-api/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes ingested call events to a fixed set of workers using
// consistent hashing on the vehicle id, guaranteeing per-vehicle ordering.
type Dispatcher struct {
	workers []chan ports.CallEventInput
	service ports.CallEventService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.CallEventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.CallEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.CallEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its vehicle. The call
// is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.CallEventInput) {
	idx := d.shardIndex(event.VehicleID)
	d.workers[idx] <- event
	metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// EnqueueBatch enqueues multiple events preserving per-vehicle ordering.
func (d *Dispatcher) EnqueueBatch(events []ports.CallEventInput) {
	for _, e := range events {
		d.Enqueue(e)
	}
}

// shardIndex maps a vehicle id deterministically to a worker index.
func (d *Dispatcher) shardIndex(vehicleID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(vehicleID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.CallEventInput) {
	gauge := metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			gauge.Set(float64(len(ch)))
			if err := d.service.Process(ctx, event); err != nil {
				metrics.CallEventsErrorsTotal.WithLabelValues("process_failed").Inc()
				d.log.Error().Err(err).
					Str("vehicle_id", event.VehicleID).
					Int("worker_id", id).
					Msg("call event processing failed")
				continue
			}
			metrics.CallEventsProcessedTotal.WithLabelValues(event.Result, event.Source).Inc()
		}
	}
}
