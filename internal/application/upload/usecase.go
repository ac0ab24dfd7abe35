// Package upload recibe las planillas de una fecha y dispara el pipeline de despacho.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/despacho-scan/internal/application/dto"
	"github.com/jhoicas/despacho-scan/internal/application/pipeline"
	"github.com/jhoicas/despacho-scan/internal/domain"
	"github.com/jhoicas/despacho-scan/internal/domain/ledger"
	"github.com/jhoicas/despacho-scan/pkg/keylock"
)

// MaxFiles planillas aceptadas por subida.
const MaxFiles = 2

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// BatchRunner ejecuta el pipeline de una fecha (en proceso o como proceso externo).
//
//go:generate mockgen -destination=mocks/mock_runner.go -source=usecase.go BatchRunner
type BatchRunner interface {
	Run(ctx context.Context, date, inputDir string) (pipeline.Outcome, error)
}

// UploadFile una planilla recibida.
type UploadFile struct {
	Name    string
	Content io.Reader
}

// UseCase recibe planillas, las deja en <temp>/<date>, corre el pipeline y limpia.
type UseCase struct {
	runner   BatchRunner
	tempRoot string
	locks    *keylock.KeyLock
	log      zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(runner BatchRunner, tempRoot string, log zerolog.Logger) *UseCase {
	return &UseCase{runner: runner, tempRoot: tempRoot, locks: keylock.New(), log: log}
}

// Process valida, prepara la entrada y espera al pipeline. Ante una falla del pipeline
// devuelve la respuesta (Success=false) junto con el error para que el handler elija el status.
func (uc *UseCase) Process(ctx context.Context, date string, files []UploadFile) (*dto.UploadResponse, error) {
	date = strings.TrimSpace(date)
	if !datePattern.MatchString(date) {
		return nil, domain.NewValidationError("date", "formato esperado YYYY-MM-DD")
	}
	if err := ledger.ValidateDate(date); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.NewValidationError("files", "se requiere al menos una planilla")
	}
	if len(files) > MaxFiles {
		return nil, domain.NewValidationError("files", fmt.Sprintf("máximo %d planillas", MaxFiles))
	}

	unlock := uc.locks.Lock(date)
	defer unlock()

	dir := filepath.Join(uc.tempRoot, date)
	log := uc.log.With().Str("date", date).Logger()
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("no se pudo limpiar el directorio temporal")
		}
	}()
	if err := stage(dir, files); err != nil {
		return nil, err
	}
	log.Info().Int("files", len(files)).Msg("planillas recibidas, iniciando pipeline")

	outcome, err := uc.runner.Run(ctx, date, dir)
	if err != nil {
		return nil, err
	}
	if outcome.Success() && outcome.CompletedDate == date {
		log.Info().Str("batch_id", outcome.BatchID).Msg("pipeline completado")
		return &dto.UploadResponse{
			Success: true,
			Message: "Procesado correctamente",
			Date:    outcome.CompletedDate,
			BatchID: outcome.BatchID,
		}, nil
	}

	failure := outcome.Failure
	if failure == nil {
		failure = &pipeline.StageError{Output: outcome.Output, Err: domain.ErrNoCompletion}
	}
	resp := &dto.UploadResponse{
		Success: false,
		Date:    date,
		BatchID: outcome.BatchID,
		Stage:   failure.Stage,
	}
	switch {
	case errors.Is(failure, domain.ErrNoCompletion) && failure.Stage == "":
		resp.Message = "No se encontró confirmación de finalización"
	default:
		resp.Message = fmt.Sprintf("Falló la etapa %q: %v", failure.Stage, failure.Err)
	}
	log.Error().Err(failure.Err).Str("batch_id", outcome.BatchID).Str("stage", failure.Stage).
		Str("output", failure.Output).Msg("pipeline sin finalización")
	return resp, failure
}

// stage copia las planillas al directorio de entrada del lote, reemplazando restos previos.
func stage(dir string, files []UploadFile) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("%w: limpiar %s: %w", domain.ErrStorage, dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: crear %s: %w", domain.ErrStorage, dir, err)
	}
	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		name := filepath.Base(strings.TrimSpace(f.Name))
		if name == "" || name == "." || name == string(filepath.Separator) {
			return domain.NewValidationError("files", "nombre de archivo vacío")
		}
		if _, dup := seen[name]; dup {
			return domain.NewValidationError("files", "nombre de archivo repetido: "+name)
		}
		seen[name] = struct{}{}

		out, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("%w: crear %s: %w", domain.ErrStorage, name, err)
		}
		_, err = io.Copy(out, f.Content)
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("%w: copiar %s: %w", domain.ErrStorage, name, err)
		}
	}
	return nil
}
