package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/despacho-scan/internal/domain/entity"
	"github.com/jhoicas/despacho-scan/internal/domain/repository"
)

// CompletionRepository marcas de finalización sobre SQLite.
type CompletionRepository struct {
	db *sql.DB
}

var _ repository.CompletionRepository = (*CompletionRepository)(nil)

// NewCompletionRepository construye el repositorio.
func NewCompletionRepository(db *sql.DB) *CompletionRepository {
	return &CompletionRepository{db: db}
}

// MarkFinished implementa repository.CompletionRepository.
func (r *CompletionRepository) MarkFinished(ctx context.Context, date, client string, at time.Time) error {
	const q = `
		INSERT INTO client_completions (ship_date, client, finished_at) VALUES (?, ?, ?)
		ON CONFLICT (ship_date, client) DO UPDATE SET finished_at = excluded.finished_at`
	if _, err := r.db.ExecContext(ctx, q, date, client, at.UnixNano()); err != nil {
		return fmt.Errorf("sqlite: marcar finalizado: %w", err)
	}
	return nil
}

// Get implementa repository.CompletionRepository.
func (r *CompletionRepository) Get(ctx context.Context, date, client string) (*entity.ClientCompletion, error) {
	const q = `SELECT finished_at FROM client_completions WHERE ship_date = ? AND client = ?`
	var finished int64
	err := r.db.QueryRowContext(ctx, q, date, client).Scan(&finished)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: leer finalización: %w", err)
	}
	at := time.Unix(0, finished).UTC()
	return &entity.ClientCompletion{Date: date, Client: client, FinishedAt: &at}, nil
}
