package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/despacho-scan/internal/domain"
	"github.com/jhoicas/despacho-scan/internal/domain/ledger"
	"github.com/jhoicas/despacho-scan/pkg/keylock"
)

// Orchestrator ejecuta las etapas en orden para una fecha:
//
//	base reports → counters → loading → client templates → cards → cleaning
//
// La primera falla corta la secuencia; los artefactos de las etapas previas quedan
// en disco. No limpia el directorio de entrada (responsabilidad del llamador).
// Dos Run de la misma fecha se serializan; fechas distintas corren en paralelo.
type Orchestrator struct {
	outputRoot   string
	stages       []Stage
	stageTimeout time.Duration
	locks        *keylock.KeyLock
	log          zerolog.Logger
}

// NewOrchestrator construye el orquestador. stageTimeout <= 0 desactiva el límite por etapa.
func NewOrchestrator(outputRoot string, stages []Stage, stageTimeout time.Duration, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		outputRoot:   outputRoot,
		stages:       stages,
		stageTimeout: stageTimeout,
		locks:        keylock.New(),
		log:          log,
	}
}

// Labels etiquetas de las etapas configuradas, en orden.
func (o *Orchestrator) Labels() []string {
	out := make([]string, len(o.stages))
	for i, s := range o.stages {
		out[i] = s.Label()
	}
	return out
}

// Run procesa inputDir para date. Un error de retorno indica entrada inválida;
// las fallas de etapa se informan en Outcome.Failure.
func (o *Orchestrator) Run(ctx context.Context, date, inputDir string) (Outcome, error) {
	if err := ledger.ValidateDate(date); err != nil {
		return Outcome{}, err
	}
	info, err := os.Stat(inputDir)
	if err != nil || !info.IsDir() {
		return Outcome{}, domain.NewValidationError("inputDir", "no existe o no es un directorio")
	}

	unlock := o.locks.Lock(date)
	defer unlock()

	batch := Batch{
		ID:        uuid.New().String(),
		Date:      date,
		InputDir:  inputDir,
		OutputDir: filepath.Join(o.outputRoot, date),
	}
	out := Outcome{BatchID: batch.ID}
	log := o.log.With().Str("batch_id", batch.ID).Str("date", date).Logger()

	if err := os.MkdirAll(batch.OutputDir, 0o755); err != nil {
		out.Failure = &StageError{Stage: o.firstLabel(), Err: fmt.Errorf("crear directorio de salida: %w", err)}
		return out, nil
	}

	var combined strings.Builder
	for i, stage := range o.stages {
		label := stage.Label()
		log.Info().Str("stage", label).Int("step", i+1).Int("of", len(o.stages)).Msg("iniciando etapa")

		art, err := o.runStage(ctx, stage, batch)
		if art.Output != "" {
			combined.WriteString(art.Output)
			if !strings.HasSuffix(art.Output, "\n") {
				combined.WriteByte('\n')
			}
		}
		if err != nil {
			se := asStageError(label, art.Output, err)
			log.Error().Err(se.Err).Str("stage", label).Msg("etapa fallida, proceso abortado")
			out.Failure = se
			out.Output = combined.String()
			return out, nil
		}
		if art.Stage == "" {
			art.Stage = label
		}
		out.Artifacts = append(out.Artifacts, art)
		log.Info().Str("stage", label).Int("artifacts", len(art.Paths)).Msg("etapa completada")
	}

	out.CompletedDate = date
	combined.WriteString(CompletionMarker(date))
	combined.WriteByte('\n')
	out.Output = combined.String()
	log.Info().Msg("proceso completado")
	return out, nil
}

func (o *Orchestrator) runStage(ctx context.Context, stage Stage, batch Batch) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	if o.stageTimeout <= 0 {
		return stage.Run(ctx, batch)
	}
	sctx, cancel := context.WithTimeout(ctx, o.stageTimeout)
	defer cancel()
	return stage.Run(sctx, batch)
}

func (o *Orchestrator) firstLabel() string {
	if len(o.stages) == 0 {
		return ""
	}
	return o.stages[0].Label()
}

func asStageError(label, output string, err error) *StageError {
	var se *StageError
	if errors.As(err, &se) {
		if se.Stage == "" {
			se.Stage = label
		}
		return se
	}
	return &StageError{Stage: label, Output: output, Err: err}
}
