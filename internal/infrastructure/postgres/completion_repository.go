package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/despacho-scan/internal/domain/entity"
	"github.com/jhoicas/despacho-scan/internal/domain/repository"
)

var _ repository.CompletionRepository = (*CompletionRepo)(nil)

// CompletionRepo implementación del puerto CompletionRepository sobre PostgreSQL.
type CompletionRepo struct {
	q Querier
}

// NewCompletionRepository construye el adaptador.
func NewCompletionRepository(q Querier) *CompletionRepo {
	return &CompletionRepo{q: q}
}

// MarkFinished upsert de la marca de finalización.
func (r *CompletionRepo) MarkFinished(ctx context.Context, date, client string, at time.Time) error {
	query := `
		INSERT INTO client_completions (ship_date, client, finished_at) VALUES ($1, $2, $3)
		ON CONFLICT (ship_date, client) DO UPDATE SET finished_at = EXCLUDED.finished_at`
	if _, err := r.q.Exec(ctx, query, date, client, at); err != nil {
		return fmt.Errorf("upsert client completion: %w", err)
	}
	return nil
}

// Get obtiene la marca; (nil, nil) si el cliente no fue finalizado.
func (r *CompletionRepo) Get(ctx context.Context, date, client string) (*entity.ClientCompletion, error) {
	query := `SELECT finished_at FROM client_completions WHERE ship_date = $1 AND client = $2`
	var at time.Time
	err := r.q.QueryRow(ctx, query, date, client).Scan(&at)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get client completion: %w", err)
	}
	return &entity.ClientCompletion{Date: date, Client: client, FinishedAt: &at}, nil
}
