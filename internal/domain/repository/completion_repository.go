package repository

import (
	"context"
	"time"

	"github.com/jhoicas/despacho-scan/internal/domain/entity"
)

// CompletionRepository puerto para las marcas de finalización por (fecha, cliente).
// MarkFinished es un upsert: un solo registro por clave, con el último timestamp.
type CompletionRepository interface {
	MarkFinished(ctx context.Context, date, client string, at time.Time) error
	Get(ctx context.Context, date, client string) (*entity.ClientCompletion, error)
}
