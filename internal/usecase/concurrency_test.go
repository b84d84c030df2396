package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadimbarashkov/qrtrack/internal/adapter/repository/memory"
	"github.com/vadimbarashkov/qrtrack/internal/entity"
)

func TestUpdateDestination_ConcurrentUpdatesAreAllRecorded(t *testing.T) {
	const updates = 50

	ctx := context.Background()
	uc := NewQRCodeUseCase(8, memory.NewQRCodeRepository())

	qrCode, err := uc.CreateQRCode(ctx, "user-1", entity.KindDynamic, "https://example.com/initial", nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < updates; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.UpdateDestination(ctx, qrCode.ID, fmt.Sprintf("https://example.com/%d", i), "user-1")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := uc.GetQRCode(ctx, qrCode.ID, "user-1")
	require.NoError(t, err)

	require.Len(t, got.History, updates+1)
	assert.Equal(t, "https://example.com/initial", got.History[0].URL)

	last, ok := got.LastChange()
	require.True(t, ok)
	assert.Equal(t, got.CurrentURL, last.URL)

	url, err := uc.Resolve(ctx, qrCode.ID)
	require.NoError(t, err)
	assert.Equal(t, got.CurrentURL, url)

	for i := 1; i < len(got.History); i++ {
		assert.False(t, got.History[i].ChangedAt.Before(got.History[i-1].ChangedAt))
	}

	assert.Zero(t, uc.locks.Len())
}

func TestCreateThenResolve(t *testing.T) {
	ctx := context.Background()
	uc := NewQRCodeUseCase(8, memory.NewQRCodeRepository())

	for _, kind := range []entity.Kind{entity.KindStatic, entity.KindDynamic} {
		qrCode, err := uc.CreateQRCode(ctx, "user-1", kind, "https://example.com", nil)
		require.NoError(t, err)

		url, err := uc.Resolve(ctx, qrCode.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", url)
	}
}
