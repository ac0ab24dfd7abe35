// Package memory implementa los repositorios en memoria (driver "memory" y tests).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/despacho-scan/internal/domain"
	"github.com/jhoicas/despacho-scan/internal/domain/entity"
	"github.com/jhoicas/despacho-scan/internal/domain/repository"
	"github.com/jhoicas/despacho-scan/pkg/keylock"
)

// LedgerRepository ledger en memoria. El incremento de cada clave se serializa con un
// lock por clave; el mapa se protege aparte para que claves distintas no se esperen.
type LedgerRepository struct {
	locks   *keylock.KeyLock
	mu      sync.RWMutex
	entries map[entity.LedgerKey]*entity.LedgerEntry
}

var _ repository.LedgerRepository = (*LedgerRepository)(nil)

// NewLedgerRepository crea un ledger vacío.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		locks:   keylock.New(),
		entries: make(map[entity.LedgerKey]*entity.LedgerEntry),
	}
}

// ApplyDelta implementa repository.LedgerRepository.
func (r *LedgerRepository) ApplyDelta(ctx context.Context, key entity.LedgerKey, delta int64, at time.Time) (*entity.LedgerEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	unlock := r.locks.Lock(key.String())
	defer unlock()

	r.mu.RLock()
	current, ok := r.entries[key]
	r.mu.RUnlock()

	var scanned int64
	if ok {
		scanned = current.ScannedQuantity
	}
	if scanned+delta < 0 {
		return nil, domain.ErrNegativeScan
	}
	next := &entity.LedgerEntry{
		Date: key.Date, Client: key.Client, Container: key.Container,
		ScannedQuantity: scanned + delta,
		LastModifiedAt:  at,
	}
	r.mu.Lock()
	r.entries[key] = next
	r.mu.Unlock()

	out := *next
	return &out, nil
}

// Get implementa repository.LedgerRepository.
func (r *LedgerRepository) Get(ctx context.Context, key entity.LedgerKey) (*entity.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[key]
	if !ok {
		return nil, nil
	}
	out := *e
	return &out, nil
}

// ListByClient implementa repository.LedgerRepository. Ordenado por contenedor.
func (r *LedgerRepository) ListByClient(ctx context.Context, date, client string) ([]*entity.LedgerEntry, error) {
	r.mu.RLock()
	var out []*entity.LedgerEntry
	for k, e := range r.entries {
		if k.Date == date && k.Client == client {
			cp := *e
			out = append(out, &cp)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Container < out[j].Container })
	return out, nil
}
