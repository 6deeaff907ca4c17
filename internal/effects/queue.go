package effects

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/fairyhunter13/product-catalog-editor/internal/catalog"
	"github.com/fairyhunter13/product-catalog-editor/internal/obs"
)

// ErrIntakeClosed is returned by Enqueue after CloseIntake.
var ErrIntakeClosed = errors.New("effects: request intake closed")

// Queue hands request actions to workers in dispatch order and tracks every
// accepted request until its completion has been delivered.
//
// Enqueue never blocks: requests wait in an unbounded backlog while the
// broker feeds them to the workers one at a time.
type Queue struct {
	mu            sync.Mutex
	backlog       []catalog.Action
	highWatermark int
	overWatermark bool

	notify chan struct{}
	out    chan catalog.Action
	closed atomic.Bool

	accepted atomic.Uint64
	settled  atomic.Uint64
}

// QueueStats is a point-in-time view of a Queue.
type QueueStats struct {
	Accepted uint64 // requests taken in
	Settled  uint64 // requests whose completion was delivered
	Backlog  int    // requests not yet handed to a worker
}

// NewQueue creates a Queue whose output holds up to outBuffer requests. A
// warning is logged when the backlog grows past highWatermark; 0 disables it.
func NewQueue(outBuffer, highWatermark int) *Queue {
	if outBuffer <= 0 {
		outBuffer = 1
	}
	return &Queue{
		highWatermark: highWatermark,
		notify:        make(chan struct{}, 1),
		out:           make(chan catalog.Action, outBuffer),
	}
}

// Start runs the broker until ctx is done.
func (q *Queue) Start(ctx context.Context) {
	go q.broker(ctx)
}

func (q *Queue) broker(ctx context.Context) {
	for {
		a, ok := q.pop()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-q.notify:
			}
			continue
		}
		select {
		case q.out <- a:
		case <-ctx.Done():
			return
		}
	}
}

func (q *Queue) pop() (catalog.Action, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.backlog) == 0 {
		return nil, false
	}
	a := q.backlog[0]
	q.backlog[0] = nil
	q.backlog = q.backlog[1:]
	q.observeBacklog()
	return a, true
}

// observeBacklog publishes the backlog size and logs once per watermark
// crossing. q.mu must be held.
func (q *Queue) observeBacklog() {
	n := len(q.backlog)
	obs.EffectBacklog.Set(float64(n))
	if q.highWatermark <= 0 {
		return
	}
	switch {
	case n > q.highWatermark && !q.overWatermark:
		q.overWatermark = true
		obs.Logger.Warn("request_backlog_high", "backlog_size", n, "high_watermark", q.highWatermark)
	case n <= q.highWatermark && q.overWatermark:
		q.overWatermark = false
		obs.Logger.Info("request_backlog_recovered", "backlog_size", n, "high_watermark", q.highWatermark)
	}
}

// Enqueue appends a request to the backlog.
func (q *Queue) Enqueue(a catalog.Action) error {
	if q.closed.Load() {
		return ErrIntakeClosed
	}
	q.accepted.Add(1)
	q.mu.Lock()
	q.backlog = append(q.backlog, a)
	q.observeBacklog()
	q.mu.Unlock()
	select {
	case q.notify <- struct{}{}:
	default:
	}
	return nil
}

// Out delivers requests to workers.
func (q *Queue) Out() <-chan catalog.Action { return q.out }

// Settle records that the completion of one request has been delivered.
func (q *Queue) Settle() { q.settled.Add(1) }

// Pending returns the number of accepted requests not yet settled.
func (q *Queue) Pending() int {
	return int(q.accepted.Load() - q.settled.Load())
}

// Stats returns the current counters.
func (q *Queue) Stats() QueueStats {
	q.mu.Lock()
	backlog := len(q.backlog)
	q.mu.Unlock()
	return QueueStats{
		Accepted: q.accepted.Load(),
		Settled:  q.settled.Load(),
		Backlog:  backlog,
	}
}

// CloseIntake makes later Enqueue calls fail with ErrIntakeClosed.
func (q *Queue) CloseIntake() { q.closed.Store(true) }
