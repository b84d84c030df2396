// Package app wires the service together and runs it until the context is cancelled.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/go-redis/redis/v8"
	"github.com/vadimbarashkov/qrtrack/internal/adapter/queue"
	"github.com/vadimbarashkov/qrtrack/internal/config"
	"github.com/vadimbarashkov/qrtrack/internal/entity"
	"github.com/vadimbarashkov/qrtrack/internal/usecase"
	"github.com/vadimbarashkov/qrtrack/internal/worker"
	"github.com/vadimbarashkov/qrtrack/pkg/auth"
	"github.com/vadimbarashkov/qrtrack/pkg/postgres"
	"golang.org/x/sync/errgroup"

	delivery "github.com/vadimbarashkov/qrtrack/internal/adapter/delivery/http"
	memoryQueue "github.com/vadimbarashkov/qrtrack/internal/adapter/queue/memory"
	redisQueue "github.com/vadimbarashkov/qrtrack/internal/adapter/queue/redis"
	memoryRepo "github.com/vadimbarashkov/qrtrack/internal/adapter/repository/memory"
	pgRepo "github.com/vadimbarashkov/qrtrack/internal/adapter/repository/postgres"
)

const shutdownTimeout = 10 * time.Second

type qrCodeStore interface {
	Save(ctx context.Context, qrCode *entity.QRCode) error
	RetrieveByID(ctx context.Context, id string) (*entity.QRCode, error)
	RetrieveByOwner(ctx context.Context, ownerID string) ([]*entity.QRCode, error)
	UpdateDestination(ctx context.Context, id, url string, changedAt time.Time) (*entity.QRCode, error)
}

type eventStore interface {
	Save(ctx context.Context, event *entity.ScanEvent) error
	RetrieveByQRCode(ctx context.Context, qrCodeID string, filter entity.EventFilter) ([]entity.ScanEvent, error)
}

type jobQueue interface {
	Enqueue(ctx context.Context, job entity.TrackJob) error
	Dequeue(ctx context.Context) (queue.Delivery, error)
}

func Run(ctx context.Context, cfg *config.Config) error {
	const op = "app.Run"

	logger := httplog.NewLogger("qrtrack", httplog.Options{
		JSON:     cfg.Log.JSON,
		LogLevel: cfg.Log.SlogLevel(),
		Concise:  cfg.Env == config.EnvDev,
		Tags: map[string]string{
			"env": cfg.Env,
		},
	})

	qrCodes, events, closeStorage, err := openStorage(ctx, cfg, logger.Logger)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer closeStorage()

	jobs, closeQueue, err := openQueue(ctx, cfg, logger.Logger)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer closeQueue()

	r, pool := newService(cfg, logger, qrCodes, events, jobs)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        r,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		logger.Info("starting http server", slog.String("addr", server.Addr), slog.String("env", cfg.Env))

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		return pool.Run(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		logger.Info("http server stopped")
		return nil
	})

	return g.Wait()
}

// newService builds the HTTP handler and the ingestion worker pool on top of
// the given storage and queue.
func newService(
	cfg *config.Config,
	logger *httplog.Logger,
	qrCodes qrCodeStore,
	events eventStore,
	jobs jobQueue,
) (http.Handler, *worker.Pool) {
	qrCodeUseCase := usecase.NewQRCodeUseCase(cfg.IDLength, qrCodes)
	eventUseCase := usecase.NewEventUseCase(qrCodes, events, jobs)
	analyticsUseCase := usecase.NewAnalyticsUseCase(qrCodes, events)

	pool := worker.New(
		jobs,
		eventUseCase,
		logger.Logger,
		worker.WithWorkers(cfg.Worker.Count),
		worker.WithMaxAttempts(cfg.Worker.MaxAttempts),
		worker.WithBackoff(cfg.Worker.InitialBackoff, cfg.Worker.MaxBackoff),
		worker.WithStoreTimeout(cfg.Worker.StoreTimeout),
	)

	r := delivery.NewRouter(
		logger,
		auth.New(cfg.Auth.Secret, auth.WithLeeway(cfg.Auth.Leeway)),
		cfg.BaseURL,
		qrCodeUseCase,
		eventUseCase,
		analyticsUseCase,
	)

	return r, pool
}

// openStorage returns the repositories selected by cfg.Storage and a func
// releasing their resources.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (qrCodeStore, eventStore, func(), error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("using in-memory storage, data will not survive a restart")
		return memoryRepo.NewQRCodeRepository(), memoryRepo.NewEventRepository(), func() {}, nil
	}

	db, err := postgres.New(
		ctx,
		cfg.Postgres.DSN(),
		postgres.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
		postgres.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
		postgres.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
		postgres.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
		postgres.WithConnectTimeout(cfg.Postgres.ConnectTimeout),
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	version, err := postgres.RunMigrations(cfg.Postgres.MigrationsPath, cfg.Postgres.DSN())
	if err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("database schema is up to date", slog.Uint64("version", uint64(version)))

	return pgRepo.NewQRCodeRepository(db), pgRepo.NewEventRepository(db), func() { db.Close() }, nil
}

// openQueue returns the job queue selected by cfg.Queue.Driver and a func
// releasing it. Jobs stranded by a previous redis consumer are requeued first.
func openQueue(ctx context.Context, cfg *config.Config, logger *slog.Logger) (jobQueue, func(), error) {
	if cfg.Queue.Driver == config.QueueMemory {
		q := memoryQueue.New(cfg.Queue.BufferSize)
		return q, q.Close, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Queue.Redis.Addr,
		Password: cfg.Queue.Redis.Password,
		DB:       cfg.Queue.Redis.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	q := redisQueue.New(
		rdb,
		cfg.Queue.Redis.KeyPrefix,
		redisQueue.WithBlockTimeout(cfg.Queue.Redis.BlockTimeout),
		redisQueue.WithMaxLen(int64(cfg.Queue.BufferSize)),
	)

	n, err := q.Recover(ctx)
	if err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("failed to recover jobs: %w", err)
	}
	if n > 0 {
		logger.Warn("requeued unsettled jobs", slog.Int("count", n))
	}

	return q, func() { rdb.Close() }, nil
}
