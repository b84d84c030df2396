package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vadimbarashkov/qrtrack/internal/entity"

	pg "github.com/vadimbarashkov/qrtrack/pkg/postgres"
)

func setupPostgres(t testing.TB) *sqlx.DB {
	t.Helper()

	ctx := context.Background()

	pgUser := "test"
	pgPassword := "test"
	pgDB := "qrtrack"

	pgCont, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: "postgres:16-alpine",
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDB,
			},
			ExposedPorts: []string{"5432/tcp"},
			WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgCont.Terminate(ctx); err != nil {
			t.Fatalf("Failed to terminate postgres container: %v", err)
		}
	})

	pgHost, err := pgCont.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	pgPort, err := pgCont.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", pgUser, pgPassword, pgHost, pgPort.Int(), pgDB)

	if _, err := pg.RunMigrations("file://../../../../migrations", dsn); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	db, err := pg.New(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestRepositories_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	db := setupPostgres(t)
	qrCodes := NewQRCodeRepository(db)
	events := NewEventRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	qrCode := &entity.QRCode{
		ID:         "abc123",
		OwnerID:    "user-1",
		Kind:       entity.KindDynamic,
		CurrentURL: "https://example.com",
		History:    []entity.HistoryEntry{{URL: "https://example.com", ChangedAt: now}},
		Metadata:   entity.Metadata{"campaign": "spring"},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	t.Run("save", func(t *testing.T) {
		require.NoError(t, qrCodes.Save(ctx, qrCode))
		assert.ErrorIs(t, qrCodes.Save(ctx, qrCode), entity.ErrIDExists)

		got, err := qrCodes.RetrieveByID(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", got.CurrentURL)
		assert.Equal(t, "spring", got.Metadata["campaign"])
		assert.Len(t, got.History, 1)
	})

	t.Run("concurrent updates keep every history entry", func(t *testing.T) {
		const updates = 20

		var wg sync.WaitGroup
		for i := 0; i < updates; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := qrCodes.UpdateDestination(ctx, "abc123", fmt.Sprintf("https://example.com/%d", i), time.Now().UTC())
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		got, err := qrCodes.RetrieveByID(ctx, "abc123")
		require.NoError(t, err)
		require.Len(t, got.History, updates+1)

		last, ok := got.LastChange()
		require.True(t, ok)
		assert.Equal(t, got.CurrentURL, last.URL)
	})

	t.Run("reads during updates see a consistent record", func(t *testing.T) {
		const updates = 20

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		var readers sync.WaitGroup
		for i := 0; i < 4; i++ {
			readers.Add(1)
			go func() {
				defer readers.Done()
				for ctx.Err() == nil {
					got, err := qrCodes.RetrieveByID(ctx, "abc123")
					if ctx.Err() != nil {
						return
					}
					if !assert.NoError(t, err) {
						return
					}
					last, ok := got.LastChange()
					assert.True(t, ok)
					assert.Equal(t, got.CurrentURL, last.URL)

					owned, err := qrCodes.RetrieveByOwner(ctx, "user-1")
					if ctx.Err() != nil {
						return
					}
					assert.NoError(t, err)
					assert.Len(t, owned, 1)
				}
			}()
		}

		var writers sync.WaitGroup
		for i := 0; i < updates; i++ {
			writers.Add(1)
			go func(i int) {
				defer writers.Done()
				_, err := qrCodes.UpdateDestination(context.Background(), "abc123", fmt.Sprintf("https://example.net/%d", i), time.Now().UTC())
				assert.NoError(t, err)
			}(i)
		}

		writers.Wait()
		cancel()
		readers.Wait()
	})

	t.Run("update unknown qr code", func(t *testing.T) {
		_, err := qrCodes.UpdateDestination(ctx, "missing", "https://example.org", now)
		assert.ErrorIs(t, err, entity.ErrQRCodeNotFound)
	})

	t.Run("events", func(t *testing.T) {
		day := time.Date(2024, 10, 1, 10, 0, 0, 0, time.UTC)

		for i, ts := range []time.Time{day.Add(time.Hour), day, day.AddDate(0, 0, 1)} {
			require.NoError(t, events.Save(ctx, &entity.ScanEvent{
				ID:             fmt.Sprintf("00000000-0000-0000-0000-00000000000%d", i),
				QRCodeID:       "abc123",
				Timestamp:      ts,
				IPAddress:      "10.0.0.1",
				URLAtTimestamp: "https://example.com",
			}))
		}

		all, err := events.RetrieveByQRCode(ctx, "abc123", entity.EventFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.True(t, all[0].Timestamp.Equal(day))

		from := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 0, 1)

		bounded, err := events.RetrieveByQRCode(ctx, "abc123", entity.EventFilter{From: &from, To: &to})
		require.NoError(t, err)
		assert.Len(t, bounded, 2)
	})
}
