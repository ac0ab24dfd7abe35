package report

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/despacho-scan/internal/application/pipeline"
	"github.com/jhoicas/despacho-scan/internal/infrastructure/catalogstore"
	"github.com/jhoicas/despacho-scan/internal/infrastructure/pdf"
	"github.com/jhoicas/despacho-scan/internal/infrastructure/planning"
)

// NewOrchestrator arma el orquestador con las seis etapas sobre outputDir.
// Lo comparten el servidor (modo inprocess) y cmd/pipeline.
func NewOrchestrator(outputDir, planningEncoding string, stageTimeout time.Duration, log zerolog.Logger) (*pipeline.Orchestrator, error) {
	parser, err := planning.NewParser(planningEncoding)
	if err != nil {
		return nil, err
	}
	stages := DefaultStages(Deps{
		Parser:  parser,
		Catalog: catalogstore.NewFileStore(outputDir),
		PDF:     pdf.NewGenerator(),
		Log:     log,
	})
	return pipeline.NewOrchestrator(outputDir, stages, stageTimeout, log), nil
}
