package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/despacho-scan/internal/domain"
	"github.com/jhoicas/despacho-scan/internal/domain/entity"
	"github.com/jhoicas/despacho-scan/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación del puerto LedgerRepository sobre PostgreSQL.
// El incremento es un upsert: la fila queda bloqueada durante la sentencia.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador de persistencia del ledger.
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// ApplyDelta suma delta a la entrada, creándola si no existe.
func (r *LedgerRepo) ApplyDelta(ctx context.Context, key entity.LedgerKey, delta int64, at time.Time) (*entity.LedgerEntry, error) {
	query := `
		INSERT INTO ledger_entries (ship_date, client, container, scanned_quantity, last_modified_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (ship_date, client, container) DO UPDATE SET
			scanned_quantity = ledger_entries.scanned_quantity + EXCLUDED.scanned_quantity,
			last_modified_at = EXCLUDED.last_modified_at
		RETURNING scanned_quantity, last_modified_at`
	e := &entity.LedgerEntry{Date: key.Date, Client: key.Client, Container: key.Container}
	err := r.q.QueryRow(ctx, query, key.Date, key.Client, key.Container, delta, at).
		Scan(&e.ScannedQuantity, &e.LastModifiedAt)
	if err != nil {
		if isCheckViolation(err) {
			return nil, domain.ErrNegativeScan
		}
		return nil, fmt.Errorf("upsert ledger entry: %w", err)
	}
	return e, nil
}

// Get obtiene una entrada; (nil, nil) si no existe.
func (r *LedgerRepo) Get(ctx context.Context, key entity.LedgerKey) (*entity.LedgerEntry, error) {
	query := `
		SELECT scanned_quantity, last_modified_at FROM ledger_entries
		WHERE ship_date = $1 AND client = $2 AND container = $3`
	e := &entity.LedgerEntry{Date: key.Date, Client: key.Client, Container: key.Container}
	err := r.q.QueryRow(ctx, query, key.Date, key.Client, key.Container).
		Scan(&e.ScannedQuantity, &e.LastModifiedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	return e, nil
}

// ListByClient entradas de un cliente en una fecha, ordenadas por contenedor.
func (r *LedgerRepo) ListByClient(ctx context.Context, date, client string) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT container, scanned_quantity, last_modified_at FROM ledger_entries
		WHERE ship_date = $1 AND client = $2
		ORDER BY container`
	rows, err := r.q.Query(ctx, query, date, client)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.LedgerEntry
	for rows.Next() {
		e := &entity.LedgerEntry{Date: date, Client: client}
		if err := rows.Scan(&e.Container, &e.ScannedQuantity, &e.LastModifiedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
