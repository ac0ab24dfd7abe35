package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/despacho-scan/internal/domain"
	"github.com/jhoicas/despacho-scan/internal/domain/entity"
	"github.com/jhoicas/despacho-scan/internal/infrastructure/memory"
)

func TestLedger_IncrementosConcurrentes(t *testing.T) {
	repo := memory.NewLedgerRepository()
	key := entity.LedgerKey{Date: "2024-05-01", Client: "ClientA", Container: "CNT123"}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.ApplyDelta(context.Background(), key, 1, time.Now())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.Get(context.Background(), key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(100), got.ScannedQuantity)
}

func TestLedger_NegativoNoModificaEstado(t *testing.T) {
	repo := memory.NewLedgerRepository()
	key := entity.LedgerKey{Date: "2024-05-01", Client: "ClientA", Container: "CNT1"}
	_, err := repo.ApplyDelta(context.Background(), key, 3, time.Now())
	require.NoError(t, err)

	_, err = repo.ApplyDelta(context.Background(), key, -4, time.Now())
	assert.ErrorIs(t, err, domain.ErrNegativeScan)

	got, _ := repo.Get(context.Background(), key)
	assert.Equal(t, int64(3), got.ScannedQuantity)
}

func TestLedger_GetInexistenteDevuelveNil(t *testing.T) {
	repo := memory.NewLedgerRepository()
	got, err := repo.Get(context.Background(), entity.LedgerKey{Date: "2024-05-01", Client: "X", Container: "Y"})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLedger_ListByClientFiltraYOrdena(t *testing.T) {
	repo := memory.NewLedgerRepository()
	ctx := context.Background()
	now := time.Now()
	for _, k := range []entity.LedgerKey{
		{Date: "2024-05-01", Client: "A", Container: "C2"},
		{Date: "2024-05-01", Client: "A", Container: "C1"},
		{Date: "2024-05-01", Client: "B", Container: "C1"},
		{Date: "2024-05-02", Client: "A", Container: "C3"},
	} {
		_, err := repo.ApplyDelta(ctx, k, 1, now)
		require.NoError(t, err)
	}

	list, err := repo.ListByClient(ctx, "2024-05-01", "A")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "C1", list[0].Container)
	assert.Equal(t, "C2", list[1].Container)
}

func TestCompletion_MarkFinishedIdempotente(t *testing.T) {
	repo := memory.NewCompletionRepository()
	ctx := context.Background()
	first := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	require.NoError(t, repo.MarkFinished(ctx, "2024-05-01", "ClientA", first))
	require.NoError(t, repo.MarkFinished(ctx, "2024-05-01", "ClientA", second))

	got, err := repo.Get(ctx, "2024-05-01", "ClientA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.FinishedAt.Equal(second))

	none, err := repo.Get(ctx, "2024-05-01", "ClientB")
	require.NoError(t, err)
	assert.Nil(t, none)
}
