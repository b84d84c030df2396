// Package memory implements the tracking job queue on a buffered channel.
// Jobs do not survive a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vadimbarashkov/qrtrack/internal/adapter/queue"
	"github.com/vadimbarashkov/qrtrack/internal/entity"
)

type Queue struct {
	jobs chan entity.TrackJob

	mu     sync.RWMutex
	closed bool

	deadMu sync.Mutex
	dead   []queue.DeadLetter
}

// New returns a queue holding at most capacity pending jobs.
func New(capacity int) *Queue {
	return &Queue{
		jobs: make(chan entity.TrackJob, capacity),
	}
}

// Enqueue never blocks. It fails with entity.ErrQueueFull when the buffer is full.
func (q *Queue) Enqueue(_ context.Context, job entity.TrackJob) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return entity.ErrQueueClosed
	}

	select {
	case q.jobs <- job:
		return nil
	default:
		return entity.ErrQueueFull
	}
}

// Dequeue blocks until a job is available, ctx is done or the queue is closed
// and drained.
func (q *Queue) Dequeue(ctx context.Context) (queue.Delivery, error) {
	select {
	case job, ok := <-q.jobs:
		if !ok {
			return nil, entity.ErrQueueClosed
		}
		return &delivery{queue: q, job: job}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops accepting jobs. Pending jobs can still be dequeued.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
}

func (q *Queue) Len() int {
	return len(q.jobs)
}

func (q *Queue) DeadLetters(_ context.Context) ([]queue.DeadLetter, error) {
	q.deadMu.Lock()
	defer q.deadMu.Unlock()

	return append([]queue.DeadLetter{}, q.dead...), nil
}

type delivery struct {
	queue *Queue
	job   entity.TrackJob
}

func (d *delivery) Job() entity.TrackJob {
	return d.job
}

func (d *delivery) Ack(context.Context) error {
	return nil
}

func (d *delivery) DeadLetter(_ context.Context, reason error) error {
	d.queue.deadMu.Lock()
	defer d.queue.deadMu.Unlock()

	d.queue.dead = append(d.queue.dead, queue.DeadLetter{
		Job:      d.job,
		Reason:   reason.Error(),
		FailedAt: time.Now().UTC(),
	})

	return nil
}
