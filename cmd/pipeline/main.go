// Command pipeline genera los artefactos de despacho de una fecha:
//
//	pipeline <YYYY-MM-DD> <inputDir>
//
// stdout lleva solo marcadores: @@@DONE:<fecha> como última línea al terminar, o
// @@@FAILED:<etapa> y "PROCESS FAILED" con código 1 ante una falla. Logs y salida
// de las etapas van a stderr. El servidor en modo process decide por el marcador.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/jhoicas/despacho-scan/internal/application/pipeline"
	"github.com/jhoicas/despacho-scan/internal/infrastructure/report"
	"github.com/jhoicas/despacho-scan/pkg/config"
	"github.com/jhoicas/despacho-scan/pkg/logger"
)

func main() {
	outputDir := pflag.String("output", "", "directorio de salida (por defecto OUTPUT_DIR)")
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "uso: pipeline [--output dir] <YYYY-MM-DD> <inputDir>")
		pflag.PrintDefaults()
	}
	pflag.Parse()
	if pflag.NArg() != 2 {
		pflag.Usage()
		os.Exit(2)
	}
	date, inputDir := pflag.Arg(0), pflag.Arg(1)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(2)
	}
	if *outputDir != "" {
		cfg.Storage.OutputDir = *outputDir
	}

	// stdout queda para los marcadores; los logs van a stderr.
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	orch, err := report.NewOrchestrator(cfg.Storage.OutputDir, cfg.Pipeline.PlanningEncoding, cfg.Pipeline.StageTimeout, log.Component("pipeline"))
	if err != nil {
		log.Error().Err(err).Msg("configurar pipeline")
		fail("")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	outcome, err := orch.Run(ctx, date, inputDir)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("entrada inválida")
		fail("")
	}
	// La salida de las etapas puede repetir datos de las planillas: va a stderr.
	// stdout queda reservado a los marcadores.
	marker := pipeline.CompletionMarker(date)
	fmt.Fprint(os.Stderr, strings.TrimSuffix(outcome.Output, marker+"\n"))
	if !outcome.Success() {
		stage := ""
		if outcome.Failure != nil {
			stage = outcome.Failure.Stage
		}
		stop()
		fail(stage)
	}
	fmt.Println(marker)
}

func fail(stage string) {
	if stage != "" {
		fmt.Println(pipeline.FailureMarker(stage))
	}
	fmt.Println("PROCESS FAILED")
	os.Exit(1)
}
