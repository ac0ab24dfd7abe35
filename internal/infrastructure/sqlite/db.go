// Package sqlite implementa el ledger durable de una sola máquina sobre SQLite
// (driver puro Go modernc.org/sqlite, sin cgo).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const schema = `
CREATE TABLE IF NOT EXISTS ledger_entries (
	ship_date        TEXT    NOT NULL,
	client           TEXT    NOT NULL,
	container        TEXT    NOT NULL,
	scanned_quantity INTEGER NOT NULL CHECK (scanned_quantity >= 0),
	last_modified_at INTEGER NOT NULL,
	PRIMARY KEY (ship_date, client, container)
);

CREATE TABLE IF NOT EXISTS client_completions (
	ship_date   TEXT    NOT NULL,
	client      TEXT    NOT NULL,
	finished_at INTEGER NOT NULL,
	PRIMARY KEY (ship_date, client)
);
`

// Open abre (o crea) la base en path y aplica el esquema. Una sola conexión de
// escritura: SQLite serializa escrituras y así evitamos SQLITE_BUSY entre conexiones.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: crear directorio: %w", err)
		}
	}
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(FULL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: aplicar esquema: %w", err)
	}
	return db, nil
}

// isCheckViolation verifica si un error es una violación de CHECK (scanned_quantity >= 0).
func isCheckViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_CHECK
	}
	return strings.Contains(err.Error(), "CHECK constraint failed")
}
