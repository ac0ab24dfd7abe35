// Package pipeline ejecuta las etapas de generación de artefactos de una fecha de
// despacho en orden estricto y reporta una finalización verificable.
package pipeline

import (
	"context"
	"fmt"

	"github.com/jhoicas/despacho-scan/internal/domain"
)

// Etiquetas de las seis etapas, en orden de ejecución.
const (
	StageBaseReports      = "generate base reports"
	StageClientCounters   = "generate client counters"
	StageLoadingTemplate  = "fill loading template"
	StageClientTemplates  = "fill client templates"
	StageShippingCards    = "fill shipping cards"
	StageCleaningTemplate = "fill cleaning template"
)

// StageOrder orden canónico de las etapas.
var StageOrder = []string{
	StageBaseReports,
	StageClientCounters,
	StageLoadingTemplate,
	StageClientTemplates,
	StageShippingCards,
	StageCleaningTemplate,
}

// Batch un procesamiento de la planilla de una fecha.
type Batch struct {
	ID        string
	Date      string
	InputDir  string
	OutputDir string // <output>/<date>
}

// Artifact lo producido por una etapa.
type Artifact struct {
	Stage  string
	Paths  []string
	Output string
}

// Stage unidad de trabajo del pipeline. Run debe sobrescribir los artefactos previos
// de la fecha y no tocar el ledger de escaneo.
//
//go:generate mockgen -destination=mocks/mock_stage.go -source=stage.go Stage
type Stage interface {
	Label() string
	Run(ctx context.Context, batch Batch) (Artifact, error)
}

// StageError falla de una etapa con su salida diagnóstica sin procesar.
// errors.Is(err, domain.ErrStageFailed) es true.
type StageError struct {
	Stage  string
	Output string
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("etapa %q: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Is permite clasificar cualquier StageError como domain.ErrStageFailed.
func (e *StageError) Is(target error) bool { return target == domain.ErrStageFailed }

// Outcome resultado estructurado de un Run. CompletedDate solo se completa cuando
// las seis etapas terminaron.
type Outcome struct {
	BatchID       string
	CompletedDate string
	Artifacts     []Artifact
	Failure       *StageError
	Output        string
}

// Success indica finalización confirmada.
func (o Outcome) Success() bool {
	return o.Failure == nil && o.CompletedDate != ""
}
