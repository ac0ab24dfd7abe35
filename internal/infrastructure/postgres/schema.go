package postgres

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS ledger_entries (
		ship_date        DATE        NOT NULL,
		client           TEXT        NOT NULL,
		container        TEXT        NOT NULL,
		scanned_quantity BIGINT      NOT NULL CHECK (scanned_quantity >= 0),
		last_modified_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (ship_date, client, container)
	)`,
	`CREATE TABLE IF NOT EXISTS client_completions (
		ship_date   DATE        NOT NULL,
		client      TEXT        NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (ship_date, client)
	)`,
}

// Migrate crea las tablas del ledger si no existen, todo en una transacción.
func Migrate(ctx context.Context, tx *TxRunner) error {
	return tx.Run(ctx, func(q Querier) error {
		for i, stmt := range migrations {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migración %d: %w", i+1, err)
			}
		}
		return nil
	})
}
