package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/despacho-scan/internal/domain"
	"github.com/jhoicas/despacho-scan/internal/domain/entity"
	"github.com/jhoicas/despacho-scan/internal/domain/repository"
)

// LedgerRepository ledger sobre SQLite. El incremento es una única sentencia
// upsert: la atomicidad por clave la da la base, no el llamador.
type LedgerRepository struct {
	db *sql.DB
}

var _ repository.LedgerRepository = (*LedgerRepository)(nil)

// NewLedgerRepository construye el repositorio.
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// ApplyDelta implementa repository.LedgerRepository.
func (r *LedgerRepository) ApplyDelta(ctx context.Context, key entity.LedgerKey, delta int64, at time.Time) (*entity.LedgerEntry, error) {
	const q = `
		INSERT INTO ledger_entries (ship_date, client, container, scanned_quantity, last_modified_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (ship_date, client, container) DO UPDATE SET
			scanned_quantity = ledger_entries.scanned_quantity + excluded.scanned_quantity,
			last_modified_at = excluded.last_modified_at
		RETURNING scanned_quantity, last_modified_at`

	var scanned, modified int64
	err := r.db.QueryRowContext(ctx, q, key.Date, key.Client, key.Container, delta, at.UnixNano()).
		Scan(&scanned, &modified)
	if err != nil {
		if isCheckViolation(err) {
			return nil, domain.ErrNegativeScan
		}
		return nil, fmt.Errorf("sqlite: aplicar delta: %w", err)
	}
	return &entity.LedgerEntry{
		Date: key.Date, Client: key.Client, Container: key.Container,
		ScannedQuantity: scanned,
		LastModifiedAt:  time.Unix(0, modified).UTC(),
	}, nil
}

// Get implementa repository.LedgerRepository.
func (r *LedgerRepository) Get(ctx context.Context, key entity.LedgerKey) (*entity.LedgerEntry, error) {
	const q = `SELECT scanned_quantity, last_modified_at FROM ledger_entries
		WHERE ship_date = ? AND client = ? AND container = ?`
	var scanned, modified int64
	err := r.db.QueryRowContext(ctx, q, key.Date, key.Client, key.Container).Scan(&scanned, &modified)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: leer entrada: %w", err)
	}
	return &entity.LedgerEntry{
		Date: key.Date, Client: key.Client, Container: key.Container,
		ScannedQuantity: scanned,
		LastModifiedAt:  time.Unix(0, modified).UTC(),
	}, nil
}

// ListByClient implementa repository.LedgerRepository.
func (r *LedgerRepository) ListByClient(ctx context.Context, date, client string) ([]*entity.LedgerEntry, error) {
	const q = `SELECT container, scanned_quantity, last_modified_at FROM ledger_entries
		WHERE ship_date = ? AND client = ? ORDER BY container`
	rows, err := r.db.QueryContext(ctx, q, date, client)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listar entradas: %w", err)
	}
	defer rows.Close()

	var out []*entity.LedgerEntry
	for rows.Next() {
		e := &entity.LedgerEntry{Date: date, Client: client}
		var modified int64
		if err := rows.Scan(&e.Container, &e.ScannedQuantity, &modified); err != nil {
			return nil, fmt.Errorf("sqlite: scan entrada: %w", err)
		}
		e.LastModifiedAt = time.Unix(0, modified).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
