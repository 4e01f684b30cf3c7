package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/favourami/eventplanner/internal/api/metrics"
	"github.com/favourami/eventplanner/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ErrStopped is returned by Enqueue once the workers have exited.
var ErrStopped = errors.New("queue: dispatcher stopped")

// Dispatcher routes invitations to a fixed set of workers using consistent
// hashing on the event identifier, so the invitations of one event are sent
// in the order they were queued.
type Dispatcher struct {
	workers []chan ports.Invitation
	sender  ports.InvitationSender
	log     zerolog.Logger

	wg      sync.WaitGroup
	stopped chan struct{}
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender ports.InvitationSender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Invitation, numWorkers),
		sender:  sender,
		log:     log,
		stopped: make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Invitation, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
	go func() {
		<-ctx.Done()
		d.wg.Wait()
		close(d.stopped)
	}()
}

// Wait blocks until every worker has exited.
func (d *Dispatcher) Wait() {
	<-d.stopped
}

// Enqueue hands inv to the worker responsible for its event. It blocks while
// that worker's buffer is full, until ctx ends or the dispatcher stops.
func (d *Dispatcher) Enqueue(ctx context.Context, inv ports.Invitation) error {
	idx := d.shardIndex(inv.EventID)
	select {
	case d.workers[idx] <- inv:
		metrics.InvitationsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-d.stopped:
		return ErrStopped
	}
}

// shardIndex maps an event identifier deterministically to a worker index.
func (d *Dispatcher) shardIndex(eventID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(eventID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Invitation) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case inv := <-ch:
			metrics.InvitationsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			start := time.Now()
			err := d.sender.Send(ctx, inv)
			metrics.InvitationSendDuration.Observe(time.Since(start).Seconds())
			metrics.InvitationsSentTotal.WithLabelValues(metrics.Result(err)).Inc()
			if err != nil {
				d.log.Error().Err(err).
					Str("event_id", inv.EventID).
					Str("guest_id", inv.GuestID).
					Int("worker_id", id).
					Msg("invitation delivery failed")
			}
		}
	}
}
