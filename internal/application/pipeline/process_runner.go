package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/despacho-scan/internal/domain"
	"github.com/jhoicas/despacho-scan/internal/domain/ledger"
)

// ProcessRunner ejecuta el pipeline como proceso externo (`pipeline <date> <inputDir>`)
// y decide el resultado por el marcador de finalización en la salida, no por el exit code.
type ProcessRunner struct {
	binary  string
	timeout time.Duration
	log     zerolog.Logger
}

// NewProcessRunner construye el adaptador. timeout <= 0 no limita la ejecución.
func NewProcessRunner(binary string, timeout time.Duration, log zerolog.Logger) *ProcessRunner {
	return &ProcessRunner{binary: binary, timeout: timeout, log: log}
}

// Run lanza el runner y espera a que termine.
func (r *ProcessRunner) Run(ctx context.Context, date, inputDir string) (Outcome, error) {
	if err := ledger.ValidateDate(date); err != nil {
		return Outcome{}, err
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	out := Outcome{BatchID: uuid.New().String()}
	log := r.log.With().Str("batch_id", out.BatchID).Str("date", date).Str("runner", r.binary).Logger()

	// stdout lleva solo los marcadores; logs y salida de etapas van por stderr.
	cmd := exec.CommandContext(ctx, r.binary, date, inputDir)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	log.Info().Msg("ejecutando runner externo")
	runErr := cmd.Run()
	out.Output = stderr.String() + stdout.String()

	if completed, ok := ParseCompletionMarker(stdout.String()); ok && completed == date {
		if runErr != nil {
			log.Warn().Err(runErr).Msg("runner terminó con error pero informó finalización")
		}
		out.CompletedDate = completed
		return out, nil
	}

	stage, _ := ParseFailureMarker(stdout.String())
	cause := runErr
	if cause == nil {
		cause = domain.ErrNoCompletion
	}
	var execErr *exec.Error
	if errors.As(runErr, &execErr) {
		cause = fmt.Errorf("no se pudo iniciar el runner: %w", runErr)
	}
	out.Failure = &StageError{Stage: stage, Output: out.Output, Err: cause}
	log.Error().Err(cause).Str("stage", stage).Msg("runner sin confirmación de finalización")
	return out, nil
}
