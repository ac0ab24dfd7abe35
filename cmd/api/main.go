package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/despacho-scan/docs"
	"github.com/jhoicas/despacho-scan/internal/application/pipeline"
	"github.com/jhoicas/despacho-scan/internal/application/scan"
	"github.com/jhoicas/despacho-scan/internal/application/upload"
	"github.com/jhoicas/despacho-scan/internal/domain/repository"
	"github.com/jhoicas/despacho-scan/internal/infrastructure/catalogstore"
	"github.com/jhoicas/despacho-scan/internal/infrastructure/memory"
	"github.com/jhoicas/despacho-scan/internal/infrastructure/postgres"
	"github.com/jhoicas/despacho-scan/internal/infrastructure/report"
	"github.com/jhoicas/despacho-scan/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/despacho-scan/internal/interfaces/http"
	"github.com/jhoicas/despacho-scan/pkg/config"
	"github.com/jhoicas/despacho-scan/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title           Despacho Scan API
// @version         1.0
// @description     Conteo de cajas por contenedor y generación de reportes de despacho.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("ledger", cfg.Ledger.Driver).
		Str("pipeline", cfg.Pipeline.Mode).
		Msg("iniciando aplicación")

	ctx := context.Background()
	ledgerRepo, completionRepo, closeStore, err := openLedger(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir ledger de escaneo")
	}
	defer closeStore()

	for _, dir := range []string{cfg.Storage.OutputDir, cfg.Storage.TempDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("crear directorio de trabajo")
		}
	}

	catalogStore := catalogstore.NewFileStore(cfg.Storage.OutputDir)
	scanUC := scan.NewScanUseCase(ledgerRepo, completionRepo, catalogStore, log.Component("scan"))

	var runner upload.BatchRunner
	switch cfg.Pipeline.Mode {
	case config.PipelineModeProcess:
		runner = pipeline.NewProcessRunner(cfg.Pipeline.RunnerPath, cfg.Pipeline.Timeout, log.Component("pipeline"))
	default:
		orch, err := report.NewOrchestrator(cfg.Storage.OutputDir, cfg.Pipeline.PlanningEncoding, cfg.Pipeline.StageTimeout, log.Component("pipeline"))
		if err != nil {
			log.Fatal().Err(err).Msg("configurar pipeline")
		}
		runner = orch
	}
	uploadUC := upload.NewUseCase(runner, cfg.Storage.TempDir, log.Component("upload"))

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: cfg.HTTP.BodyLimit,
		// Subir planillas espera a que el pipeline termine.
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Minute * 5,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Despacho Scan API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ScanUC:       scanUC,
		UndoRegistry: scan.NewUndoRegistry(),
		UploadUC:     uploadUC,
		JWTSecret:    cfg.JWT.Secret,
		PublicDir:    cfg.Storage.PublicDir,
		OutputDir:    cfg.Storage.OutputDir,
		Port:         cfg.HTTP.Port,
		Log:          log.Component("http"),
	})

	go func() {
		addr := cfg.HTTP.Addr()
		log.Info().Str("addr", addr).Str("lan", httpRouter.LocalIPv4()).Msg("servidor HTTP escuchando")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("apagando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

// openLedger abre el almacenamiento del ledger según LEDGER_DRIVER.
func openLedger(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.LedgerRepository, repository.CompletionRepository, func(), error) {
	switch cfg.Ledger.Driver {
	case config.LedgerDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := postgres.Migrate(ctx, postgres.NewTxRunner(pool)); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return postgres.NewLedgerRepository(pool), postgres.NewCompletionRepository(pool), pool.Close, nil
	case config.LedgerDriverMemory:
		log.Warn().Msg("ledger en memoria: los conteos se pierden al reiniciar")
		return memory.NewLedgerRepository(), memory.NewCompletionRepository(), func() {}, nil
	default:
		db, err := sqlite.Open(ctx, cfg.Ledger.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar sqlite")
			}
		}
		return sqlite.NewLedgerRepository(db), sqlite.NewCompletionRepository(db), closeDB, nil
	}
}
