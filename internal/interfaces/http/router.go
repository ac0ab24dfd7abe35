package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"

	"github.com/jhoicas/despacho-scan/internal/application/scan"
	"github.com/jhoicas/despacho-scan/internal/application/upload"
	"github.com/jhoicas/despacho-scan/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ScanUC       *scan.ScanUseCase
	UndoRegistry *scan.UndoRegistry
	UploadUC     *upload.UseCase
	JWTSecret    string // vacío = /upload sin autenticación (uso en LAN)
	PublicDir    string
	OutputDir    string
	Port         int
	Log          zerolog.Logger
}

// Router registra las rutas de la API. Los estáticos van al final para no tapar la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(cors.New())
	app.Use(RequestLogger(deps.Log))

	api := app.Group("/api")

	scanHandler := NewScanHandler(deps.ScanUC, deps.UndoRegistry)
	api.Get("/orders/:date", scanHandler.Orders)
	api.Post("/scan", scanHandler.Scan)
	api.Post("/undo", scanHandler.Undo)
	api.Post("/finish", scanHandler.Finish)
	api.Get("/ledger/:date/:client", scanHandler.Ledger)

	infoHandler := NewServerInfoHandler(deps.Port)
	api.Get("/server-info", infoHandler.Get)

	if deps.UploadUC != nil {
		uploadHandler := NewUploadHandler(deps.UploadUC)
		if deps.JWTSecret != "" {
			app.Post("/upload",
				AuthMiddleware(deps.JWTSecret),
				RequireRole(jwt.RoleAdmin, jwt.RoleOperator),
				uploadHandler.Upload,
			)
		} else {
			app.Post("/upload", uploadHandler.Upload)
		}
	}

	if deps.OutputDir != "" {
		app.Static("/output", deps.OutputDir)
	}
	if deps.PublicDir != "" {
		app.Static("/", deps.PublicDir)
	}
}

// RequestLogger registra cada petición con zerolog.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		ev := log.Debug()
		if status >= fiber.StatusInternalServerError || err != nil {
			ev = log.Warn().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http")
		return err
	}
}
