package scan_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/despacho-scan/internal/application/scan"
	"github.com/jhoicas/despacho-scan/internal/domain"
)

func TestUndo_RevierteUltimoEscaneo(t *testing.T) {
	uc := newUseCase(planned())
	ctx := context.Background()
	registry := scan.NewUndoRegistry()

	_, err := uc.ApplyDelta(ctx, fecha, "ClientA", "CNT123", 10)
	require.NoError(t, err)
	_, err = uc.ApplyDelta(ctx, fecha, "ClientA", "CNT123", 45)
	require.NoError(t, err)
	registry.Record("est-1", scan.PendingUndo{Date: fecha, Client: "ClientA", Container: "CNT123", Quantity: 45})

	res, undone, err := registry.Session("est-1").Undo(ctx, uc)
	require.NoError(t, err)
	assert.Equal(t, int64(45), undone.Quantity)
	assert.Equal(t, int64(10), res.Scanned)
	assert.Equal(t, int64(40), *res.Remaining)

	_, _, err = registry.Session("est-1").Undo(ctx, uc)
	assert.ErrorIs(t, err, domain.ErrNothingToUndo, "solo un nivel de undo")
}

func TestUndo_SesionesPorEstacionIndependientes(t *testing.T) {
	uc := newUseCase(planned())
	ctx := context.Background()
	registry := scan.NewUndoRegistry()

	_, err := uc.ApplyDelta(ctx, fecha, "ClientA", "CNT123", 5)
	require.NoError(t, err)
	registry.Record("est-1", scan.PendingUndo{Date: fecha, Client: "ClientA", Container: "CNT123", Quantity: 5})

	_, _, err = registry.Session("est-2").Undo(ctx, uc)
	assert.ErrorIs(t, err, domain.ErrNothingToUndo)

	_, ok := registry.Session("est-1").Peek()
	assert.True(t, ok)
}

func TestUndo_FalloConservaPendiente(t *testing.T) {
	uc := newUseCase(planned())
	ctx := context.Background()
	session := &scan.UndoSession{}

	// Nunca se aplicó: revertir dejaría el ledger en negativo.
	session.Remember(scan.PendingUndo{Date: fecha, Client: "ClientA", Container: "CNT123", Quantity: 3})

	_, _, err := session.Undo(ctx, uc)
	assert.ErrorIs(t, err, domain.ErrNegativeScan)

	pending, ok := session.Peek()
	require.True(t, ok)
	assert.Equal(t, int64(3), pending.Quantity)
}
