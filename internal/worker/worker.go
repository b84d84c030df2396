// Package worker drains the tracking job queue and records scan events.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/vadimbarashkov/qrtrack/internal/adapter/queue"
	"github.com/vadimbarashkov/qrtrack/internal/entity"
)

const (
	defaultWorkers        = 4
	defaultMaxAttempts    = 5
	defaultInitialBackoff = 100 * time.Millisecond
	defaultMaxBackoff     = 5 * time.Second
	defaultStoreTimeout   = 5 * time.Second
	settleTimeout         = 5 * time.Second
)

type jobQueue interface {
	Dequeue(ctx context.Context) (queue.Delivery, error)
}

type ingester interface {
	Ingest(ctx context.Context, job entity.TrackJob) (*entity.ScanEvent, error)
}

type Pool struct {
	workers        int
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	storeTimeout   time.Duration
	queue          jobQueue
	ingester       ingester
	logger         *slog.Logger
	wg             sync.WaitGroup
}

type Option func(*Pool)

func WithWorkers(n int) Option {
	return func(p *Pool) {
		p.workers = n
	}
}

// WithMaxAttempts bounds the number of Ingest calls per job, first try included.
func WithMaxAttempts(n int) Option {
	return func(p *Pool) {
		p.maxAttempts = n
	}
}

func WithBackoff(initial, maxInterval time.Duration) Option {
	return func(p *Pool) {
		p.initialBackoff = initial
		p.maxBackoff = maxInterval
	}
}

// WithStoreTimeout bounds a single Ingest call.
func WithStoreTimeout(d time.Duration) Option {
	return func(p *Pool) {
		p.storeTimeout = d
	}
}

func New(jobs jobQueue, ingester ingester, logger *slog.Logger, opts ...Option) *Pool {
	p := &Pool{
		workers:        defaultWorkers,
		maxAttempts:    defaultMaxAttempts,
		initialBackoff: defaultInitialBackoff,
		maxBackoff:     defaultMaxBackoff,
		storeTimeout:   defaultStoreTimeout,
		queue:          jobs,
		ingester:       ingester,
		logger:         logger,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.workers < 1 {
		p.workers = 1
	}
	if p.maxAttempts < 1 {
		p.maxAttempts = 1
	}

	return p
}

// Run starts the workers and blocks until ctx is done or the queue is closed.
// A job being processed when ctx is cancelled is left unsettled.
func (p *Pool) Run(ctx context.Context) error {
	p.logger.Info("starting ingestion workers", slog.Int("workers", p.workers))

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}

	p.wg.Wait()
	p.logger.Info("ingestion workers stopped")

	return nil
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	logger := p.logger.With(slog.Int("worker", id))
	pause := backoff.NewExponentialBackOff()
	pause.MaxElapsedTime = 0

	for {
		d, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, entity.ErrQueueClosed) {
				return
			}

			wait := pause.NextBackOff()
			logger.Error("failed to dequeue job", slog.Any("err", err), slog.Duration("retry_in", wait))

			select {
			case <-time.After(wait):
				continue
			case <-ctx.Done():
				return
			}
		}

		pause.Reset()
		p.process(ctx, logger, d)
	}
}

func (p *Pool) process(ctx context.Context, logger *slog.Logger, d queue.Delivery) {
	job := d.Job()
	logger = logger.With(slog.String("job_id", job.ID), slog.String("qr_code_id", job.QRCodeID))

	attempt := 0
	operation := func() error {
		attempt++

		storeCtx, cancel := context.WithTimeout(ctx, p.storeTimeout)
		defer cancel()

		_, err := p.ingester.Ingest(storeCtx, job)
		if errors.Is(err, entity.ErrQRCodeNotFound) {
			return backoff.Permanent(err)
		}

		return err
	}

	notify := func(err error, wait time.Duration) {
		logger.Warn("failed to ingest job, retrying",
			slog.Any("err", err),
			slog.Int("attempt", attempt),
			slog.Duration("retry_in", wait),
		)
	}

	err := backoff.RetryNotify(operation, p.newBackOff(ctx), notify)

	settleCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), settleTimeout)
	defer cancel()

	switch {
	case err == nil:
		if err := d.Ack(settleCtx); err != nil {
			logger.Error("failed to ack job", slog.Any("err", err))
		}
	case errors.Is(err, entity.ErrQRCodeNotFound):
		logger.Error("discarding job for unknown qr code", slog.Any("err", err))
		if err := d.Ack(settleCtx); err != nil {
			logger.Error("failed to ack job", slog.Any("err", err))
		}
	case ctx.Err() != nil:
		logger.Warn("job left unsettled on shutdown", slog.Any("err", err))
	default:
		logger.Error("job failed permanently", slog.Any("err", err), slog.Int("attempts", attempt))
		if err := d.DeadLetter(settleCtx, fmt.Errorf("after %d attempts: %w", attempt, err)); err != nil {
			logger.Error("failed to dead-letter job", slog.Any("err", err))
		}
	}
}

func (p *Pool) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.initialBackoff
	b.MaxInterval = p.maxBackoff
	b.MaxElapsedTime = 0
	b.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(p.maxAttempts-1)), ctx)
}
