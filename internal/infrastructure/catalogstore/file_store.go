// Package catalogstore persiste el catálogo de cada fecha como <root>/<date>/data.json.
package catalogstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/despacho-scan/internal/domain/catalog"
	"github.com/jhoicas/despacho-scan/internal/domain/entity"
	"github.com/jhoicas/despacho-scan/internal/domain/ledger"
	"github.com/jhoicas/despacho-scan/internal/domain/repository"
	"github.com/jhoicas/despacho-scan/pkg/fsutil"
)

// FileName nombre del artefacto de catálogo dentro del directorio de la fecha.
const FileName = "data.json"

// FileStore lee y escribe data.json. Save reemplaza el archivo de forma atómica,
// por lo que un escaneo concurrente con una regeneración ve el catálogo viejo o el nuevo.
type FileStore struct {
	root string
}

var _ repository.CatalogRepository = (*FileStore)(nil)

// NewFileStore root es el directorio de salida del pipeline.
func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// Path ruta de data.json para la fecha.
func (s *FileStore) Path(date string) string {
	return filepath.Join(s.root, date, FileName)
}

// Rows implementa repository.CatalogRepository.
func (s *FileStore) Rows(ctx context.Context, date string) ([]entity.CatalogRow, error) {
	if err := ledger.ValidateDate(date); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(date))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("catalogstore: leer %s: %w", date, err)
	}
	var rows []entity.CatalogRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("catalogstore: data.json de %s inválido: %w", date, err)
	}
	return rows, nil
}

// Save implementa repository.CatalogRepository.
func (s *FileStore) Save(ctx context.Context, date string, rows []entity.CatalogRow) error {
	if err := ledger.ValidateDate(date); err != nil {
		return err
	}
	if rows == nil {
		rows = []entity.CatalogRow{}
	}
	return fsutil.WriteJSONAtomic(s.Path(date), rows)
}

// Load construye el catálogo de la fecha. Sin data.json devuelve un catálogo vacío.
func (s *FileStore) Load(ctx context.Context, date string) (catalog.Catalog, error) {
	rows, err := s.Rows(ctx, date)
	if err != nil {
		return catalog.Catalog{Date: date}, err
	}
	return catalog.Build(date, rows), nil
}
