package scan

import (
	"context"
	"sync"

	"github.com/jhoicas/despacho-scan/internal/domain"
)

// PendingUndo último escaneo de una estación que todavía puede revertirse.
type PendingUndo struct {
	Date      string `json:"date"`
	Client    string `json:"client"`
	Container string `json:"container"`
	Quantity  int64  `json:"qty"`
}

// DeltaApplier lo que necesita el undo para revertir: aplicar un delta negado.
type DeltaApplier interface {
	ApplyDelta(ctx context.Context, date, client, container string, delta int64) (*Result, error)
}

// UndoSession guarda un único escaneo deshacible (el último). Deshacer es aplicar
// el mismo delta con signo opuesto; no hay borrado de historial.
type UndoSession struct {
	mu      sync.Mutex
	pending *PendingUndo
}

// Remember reemplaza el escaneo pendiente.
func (s *UndoSession) Remember(p PendingUndo) {
	s.mu.Lock()
	s.pending = &p
	s.mu.Unlock()
}

// Peek devuelve el escaneo pendiente sin consumirlo.
func (s *UndoSession) Peek() (PendingUndo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return PendingUndo{}, false
	}
	return *s.pending, true
}

// Undo aplica -qty del último escaneo. El slot se vacía solo si la reversión
// se persistió; ante error queda disponible para reintentar.
func (s *UndoSession) Undo(ctx context.Context, applier DeltaApplier) (*Result, PendingUndo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil, PendingUndo{}, domain.ErrNothingToUndo
	}
	p := *s.pending
	res, err := applier.ApplyDelta(ctx, p.Date, p.Client, p.Container, -p.Quantity)
	if err != nil {
		return nil, p, err
	}
	s.pending = nil
	return res, p, nil
}

// UndoRegistry una sesión de undo por estación de escaneo.
type UndoRegistry struct {
	mu       sync.Mutex
	sessions map[string]*UndoSession
}

// NewUndoRegistry construye un registro vacío.
func NewUndoRegistry() *UndoRegistry {
	return &UndoRegistry{sessions: make(map[string]*UndoSession)}
}

// Session devuelve (creando si hace falta) la sesión de la estación.
func (r *UndoRegistry) Session(stationID string) *UndoSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[stationID]
	if !ok {
		s = &UndoSession{}
		r.sessions[stationID] = s
	}
	return s
}

// Record registra el último escaneo exitoso de la estación.
func (r *UndoRegistry) Record(stationID string, p PendingUndo) {
	r.Session(stationID).Remember(p)
}
