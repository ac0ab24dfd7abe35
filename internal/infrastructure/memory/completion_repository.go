package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/despacho-scan/internal/domain/entity"
	"github.com/jhoicas/despacho-scan/internal/domain/repository"
)

type completionKey struct{ date, client string }

// CompletionRepository marcas de finalización en memoria.
type CompletionRepository struct {
	mu   sync.RWMutex
	done map[completionKey]time.Time
}

var _ repository.CompletionRepository = (*CompletionRepository)(nil)

// NewCompletionRepository crea el repositorio vacío.
func NewCompletionRepository() *CompletionRepository {
	return &CompletionRepository{done: make(map[completionKey]time.Time)}
}

// MarkFinished implementa repository.CompletionRepository.
func (r *CompletionRepository) MarkFinished(ctx context.Context, date, client string, at time.Time) error {
	r.mu.Lock()
	r.done[completionKey{date, client}] = at
	r.mu.Unlock()
	return nil
}

// Get implementa repository.CompletionRepository.
func (r *CompletionRepository) Get(ctx context.Context, date, client string) (*entity.ClientCompletion, error) {
	r.mu.RLock()
	at, ok := r.done[completionKey{date, client}]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return &entity.ClientCompletion{Date: date, Client: client, FinishedAt: &at}, nil
}
