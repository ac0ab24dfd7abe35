package repository

import (
	"context"

	"github.com/jhoicas/despacho-scan/internal/domain/entity"
)

// CatalogRepository artefacto de catálogo por fecha (data.json).
// Rows retorna (nil, nil) si la fecha aún no fue procesada.
// Save reemplaza el catálogo completo de la fecha de forma atómica.
type CatalogRepository interface {
	Rows(ctx context.Context, date string) ([]entity.CatalogRow, error)
	Save(ctx context.Context, date string, rows []entity.CatalogRow) error
}
