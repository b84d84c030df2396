// Package redis implements the tracking job queue on Redis lists.
//
// Jobs are pushed to a ready list and moved atomically to a processing list
// when dequeued, so a job taken by a worker that dies before settling it is
// not lost: Recover puts such jobs back on the ready list at startup.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/vadimbarashkov/qrtrack/internal/adapter/queue"
	"github.com/vadimbarashkov/qrtrack/internal/entity"
)

const defaultBlockTimeout = time.Second

// pushBounded pushes ARGV[1] unless ARGV[2] is positive and the list already
// holds that many items. It returns 1 when pushed and 0 when full.
var pushBounded = redis.NewScript(`
local limit = tonumber(ARGV[2])
if limit > 0 and redis.call('LLEN', KEYS[1]) >= limit then
	return 0
end
redis.call('LPUSH', KEYS[1], ARGV[1])
return 1
`)

type Queue struct {
	rdb           *redis.Client
	readyKey      string
	processingKey string
	deadKey       string
	blockTimeout  time.Duration
	maxLen        int64
}

type Option func(*Queue)

// WithBlockTimeout sets how long a single blocking pop waits before Dequeue
// checks its context again.
func WithBlockTimeout(d time.Duration) Option {
	return func(q *Queue) {
		q.blockTimeout = d
	}
}

// WithMaxLen makes Enqueue fail with entity.ErrQueueFull once the ready list
// holds n jobs. The check and the push run as one script, so concurrent
// producers cannot overshoot n. Zero means unbounded.
func WithMaxLen(n int64) Option {
	return func(q *Queue) {
		q.maxLen = n
	}
}

func New(rdb *redis.Client, prefix string, opts ...Option) *Queue {
	q := &Queue{
		rdb:           rdb,
		readyKey:      prefix + ":ready",
		processingKey: prefix + ":processing",
		deadKey:       prefix + ":dead",
		blockTimeout:  defaultBlockTimeout,
	}

	for _, opt := range opts {
		opt(q)
	}

	return q
}

func (q *Queue) Enqueue(ctx context.Context, job entity.TrackJob) error {
	const op = "adapter.queue.redis.Queue.Enqueue"

	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("%s: failed to encode job: %w", op, err)
	}

	if q.maxLen <= 0 {
		if err := q.rdb.LPush(ctx, q.readyKey, payload).Err(); err != nil {
			return fmt.Errorf("%s: failed to push job: %w", op, err)
		}
		return nil
	}

	pushed, err := pushBounded.Run(ctx, q.rdb, []string{q.readyKey}, payload, q.maxLen).Int()
	if err != nil {
		return fmt.Errorf("%s: failed to push job: %w", op, err)
	}
	if pushed == 0 {
		return fmt.Errorf("%s: %w", op, entity.ErrQueueFull)
	}

	return nil
}

// Dequeue blocks until a job is available or ctx is done.
func (q *Queue) Dequeue(ctx context.Context) (queue.Delivery, error) {
	const op = "adapter.queue.redis.Queue.Dequeue"

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		payload, err := q.rdb.BRPopLPush(ctx, q.readyKey, q.processingKey, q.blockTimeout).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%s: failed to pop job: %w", op, err)
		}

		var job entity.TrackJob
		if err := json.Unmarshal([]byte(payload), &job); err != nil {
			d := &delivery{queue: q, payload: payload, malformed: true}
			if err := d.DeadLetter(ctx, fmt.Errorf("malformed payload: %w", err)); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			continue
		}

		return &delivery{queue: q, payload: payload, job: job}, nil
	}
}

// Recover moves jobs left on the processing list back to the head of the
// ready list, oldest first. It must run before any worker starts consuming.
func (q *Queue) Recover(ctx context.Context) (int, error) {
	const op = "adapter.queue.redis.Queue.Recover"

	var n int
	for {
		err := q.rdb.LMove(ctx, q.processingKey, q.readyKey, "LEFT", "RIGHT").Err()
		if errors.Is(err, redis.Nil) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("%s: failed to requeue job: %w", op, err)
		}
		n++
	}
}

func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.rdb.LLen(ctx, q.readyKey).Result()
}

func (q *Queue) DeadLetters(ctx context.Context) ([]queue.DeadLetter, error) {
	const op = "adapter.queue.redis.Queue.DeadLetters"

	payloads, err := q.rdb.LRange(ctx, q.deadKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list dead letters: %w", op, err)
	}

	dead := make([]queue.DeadLetter, 0, len(payloads))
	for _, payload := range payloads {
		var dl queue.DeadLetter
		if err := json.Unmarshal([]byte(payload), &dl); err != nil {
			return nil, fmt.Errorf("%s: failed to decode dead letter: %w", op, err)
		}
		dead = append(dead, dl)
	}

	return dead, nil
}

type delivery struct {
	queue     *Queue
	payload   string
	job       entity.TrackJob
	malformed bool
}

func (d *delivery) Job() entity.TrackJob {
	return d.job
}

func (d *delivery) Ack(ctx context.Context) error {
	const op = "adapter.queue.redis.delivery.Ack"

	if err := d.queue.rdb.LRem(ctx, d.queue.processingKey, 1, d.payload).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (d *delivery) DeadLetter(ctx context.Context, reason error) error {
	const op = "adapter.queue.redis.delivery.DeadLetter"

	dl := queue.DeadLetter{
		Job:      d.job,
		Reason:   reason.Error(),
		FailedAt: time.Now().UTC(),
	}
	if d.malformed {
		dl.Payload = d.payload
	}

	payload, err := json.Marshal(dl)
	if err != nil {
		return fmt.Errorf("%s: failed to encode dead letter: %w", op, err)
	}

	_, err = d.queue.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LRem(ctx, d.queue.processingKey, 1, d.payload)
		pipe.LPush(ctx, d.queue.deadKey, payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
