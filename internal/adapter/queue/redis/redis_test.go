package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vadimbarashkov/qrtrack/internal/entity"
)

func setupRedis(t testing.TB) *redis.Client {
	t.Helper()

	ctx := context.Background()

	redisCont, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := redisCont.Terminate(ctx); err != nil {
			t.Fatalf("Failed to terminate redis container: %v", err)
		}
	})

	host, err := redisCont.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := redisCont.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() {
		rdb.Close()
	})

	return rdb
}

type QueueTestSuite struct {
	suite.Suite
	rdb *redis.Client
	q   *Queue
}

func (suite *QueueTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("skipping redis integration test in short mode")
	}

	suite.rdb = setupRedis(suite.T())
}

func (suite *QueueTestSuite) SetupSubTest() {
	suite.Require().NoError(suite.rdb.FlushDB(context.Background()).Err())
	suite.q = New(suite.rdb, "qrtrack:test", WithBlockTimeout(100*time.Millisecond))
}

func (suite *QueueTestSuite) TestFIFO() {
	suite.Run("jobs come out in submission order", func() {
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			suite.Require().NoError(suite.q.Enqueue(ctx, entity.TrackJob{ID: fmt.Sprintf("job-%d", i), QRCodeID: "abc123"}))
		}

		for i := 0; i < 3; i++ {
			d, err := suite.q.Dequeue(ctx)
			suite.Require().NoError(err)
			suite.Equal(fmt.Sprintf("job-%d", i), d.Job().ID)
			suite.Equal("abc123", d.Job().QRCodeID)
			suite.NoError(d.Ack(ctx))
		}

		n, err := suite.rdb.LLen(ctx, suite.q.processingKey).Result()
		suite.NoError(err)
		suite.Zero(n)
	})
}

func (suite *QueueTestSuite) TestDequeue() {
	suite.Run("context cancelled while waiting", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
		defer cancel()

		d, err := suite.q.Dequeue(ctx)

		suite.Nil(d)
		suite.ErrorIs(err, context.DeadlineExceeded)
	})

	suite.Run("malformed payload is dead-lettered", func() {
		ctx := context.Background()

		suite.Require().NoError(suite.rdb.LPush(ctx, suite.q.readyKey, "not json").Err())
		suite.Require().NoError(suite.q.Enqueue(ctx, entity.TrackJob{ID: "job-1"}))

		d, err := suite.q.Dequeue(ctx)
		suite.Require().NoError(err)
		suite.Equal("job-1", d.Job().ID)

		dead, err := suite.q.DeadLetters(ctx)
		suite.NoError(err)
		suite.Require().Len(dead, 1)
		suite.Equal("not json", dead[0].Payload)
		suite.Contains(dead[0].Reason, "malformed payload")
	})
}

func (suite *QueueTestSuite) TestMaxLen() {
	suite.Run("queue full", func() {
		ctx := context.Background()
		q := New(suite.rdb, "qrtrack:test", WithMaxLen(1))

		suite.NoError(q.Enqueue(ctx, entity.TrackJob{ID: "job-1"}))
		suite.ErrorIs(q.Enqueue(ctx, entity.TrackJob{ID: "job-2"}), entity.ErrQueueFull)
	})

	suite.Run("concurrent producers do not exceed the limit", func() {
		ctx := context.Background()
		q := New(suite.rdb, "qrtrack:test", WithMaxLen(5))

		var (
			wg       sync.WaitGroup
			accepted atomic.Int32
			rejected atomic.Int32
		)

		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()

				err := q.Enqueue(ctx, entity.TrackJob{ID: fmt.Sprintf("job-%d", i)})
				switch {
				case err == nil:
					accepted.Add(1)
				case errors.Is(err, entity.ErrQueueFull):
					rejected.Add(1)
				default:
					suite.Fail("unexpected enqueue error", err.Error())
				}
			}(i)
		}
		wg.Wait()

		suite.EqualValues(5, accepted.Load())
		suite.EqualValues(15, rejected.Load())

		n, err := q.Len(ctx)
		suite.NoError(err)
		suite.EqualValues(5, n)
	})
}

func (suite *QueueTestSuite) TestDeadLetter() {
	suite.Run("job moves to dead list", func() {
		ctx := context.Background()

		suite.Require().NoError(suite.q.Enqueue(ctx, entity.TrackJob{ID: "job-1"}))

		d, err := suite.q.Dequeue(ctx)
		suite.Require().NoError(err)
		suite.Require().NoError(d.DeadLetter(ctx, errors.New("store unavailable")))

		dead, err := suite.q.DeadLetters(ctx)
		suite.Require().NoError(err)
		suite.Require().Len(dead, 1)
		suite.Equal("job-1", dead[0].Job.ID)
		suite.Equal("store unavailable", dead[0].Reason)

		n, err := suite.rdb.LLen(ctx, suite.q.processingKey).Result()
		suite.NoError(err)
		suite.Zero(n)
	})
}

func (suite *QueueTestSuite) TestRecover() {
	suite.Run("unsettled jobs return to the ready list", func() {
		ctx := context.Background()

		suite.Require().NoError(suite.q.Enqueue(ctx, entity.TrackJob{ID: "job-1"}))
		suite.Require().NoError(suite.q.Enqueue(ctx, entity.TrackJob{ID: "job-2"}))

		_, err := suite.q.Dequeue(ctx)
		suite.Require().NoError(err)

		n, err := suite.q.Recover(ctx)
		suite.NoError(err)
		suite.Equal(1, n)

		length, err := suite.q.Len(ctx)
		suite.NoError(err)
		suite.EqualValues(2, length)

		d, err := suite.q.Dequeue(ctx)
		suite.Require().NoError(err)
		suite.Equal("job-1", d.Job().ID)
	})
}

func TestQueue(t *testing.T) {
	suite.Run(t, new(QueueTestSuite))
}
