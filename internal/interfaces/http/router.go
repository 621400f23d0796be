package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/linea-stock-api/internal/application/inventory"
	"github.com/jhoicas/linea-stock-api/internal/application/reports"
	"github.com/jhoicas/linea-stock-api/pkg/logger"
)

// Pinger verifica que el almacén responda (health check).
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Stock          *inventory.StockUseCase
	Reconcile      *inventory.ReconcileReportUseCase
	Reports        *reports.ReportUseCase
	Idempotency    idempotencyStore
	IdempotencyTTL time.Duration
}

// AppConfig opciones de la aplicación Fiber.
type AppConfig struct {
	Name         string
	AllowOrigins string
	Logger       *logger.Logger
	Pinger       Pinger
}

// NewApp crea la aplicación Fiber con middlewares comunes, /health y las rutas de la API.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	if cfg.AllowOrigins != "" {
		app.Use(cors.New(cors.Config{AllowOrigins: cfg.AllowOrigins}))
	}
	if cfg.Logger != nil {
		app.Use(RequestLogger(cfg.Logger))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if cfg.Pinger != nil {
			if err := cfg.Pinger.Ping(c.Context()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": cfg.Name})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Stock y movimientos
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.Stock)
	stock.Get("/", stockHandler.Get)
	stock.Put("/", stockHandler.Replace)
	stock.Get("/movements", stockHandler.ListMovements)
	stock.Get("/movements/export", stockHandler.ExportMovements)
	stock.Post("/movements", Idempotency(deps.Idempotency, deps.IdempotencyTTL), stockHandler.AddMovement)
	stock.Delete("/movements/:date", stockHandler.DeleteMovement)

	// Reportes de turno
	reportsGroup := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports, deps.Reconcile)
	reportsGroup.Get("/", reportHandler.List)
	reportsGroup.Post("/", reportHandler.Create)
	reportsGroup.Get("/:date", reportHandler.Get)
	reportsGroup.Put("/:date", reportHandler.Update)
	reportsGroup.Delete("/:date", reportHandler.Delete)
	reportsGroup.Get("/:date/summary", reportHandler.Summary)
	reportsGroup.Get("/:date/pdf", reportHandler.DownloadPDF)
}
