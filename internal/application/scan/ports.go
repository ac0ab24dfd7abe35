package scan

import (
	"context"

	"github.com/jhoicas/despacho-scan/internal/domain/catalog"
)

// CatalogReader acceso de solo lectura al catálogo de una fecha.
// Una fecha sin procesar devuelve un catálogo vacío, no un error.
//
//go:generate mockgen -destination=mocks/mock_ports.go -source=ports.go CatalogReader
type CatalogReader interface {
	Load(ctx context.Context, date string) (catalog.Catalog, error)
}
