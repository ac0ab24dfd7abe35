package repository

import (
	"context"
	"time"

	"github.com/jhoicas/despacho-scan/internal/domain/entity"
)

// LedgerRepository puerto de persistencia del ledger de escaneo.
// ApplyDelta debe ser atómico por clave (incremento, no leer-modificar-escribir del caller)
// y durable antes de retornar. Si el resultado quedaría negativo retorna domain.ErrNegativeScan
// sin modificar el estado.
type LedgerRepository interface {
	ApplyDelta(ctx context.Context, key entity.LedgerKey, delta int64, at time.Time) (*entity.LedgerEntry, error)
	Get(ctx context.Context, key entity.LedgerKey) (*entity.LedgerEntry, error)
	ListByClient(ctx context.Context, date, client string) ([]*entity.LedgerEntry, error)
}
