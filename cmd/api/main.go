package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/linea-stock-api/internal/application/inventory"
	"github.com/jhoicas/linea-stock-api/internal/application/reports"
	domaininv "github.com/jhoicas/linea-stock-api/internal/domain/inventory"
	"github.com/jhoicas/linea-stock-api/internal/domain/repository"
	"github.com/jhoicas/linea-stock-api/internal/infrastructure/cache"
	infraexcel "github.com/jhoicas/linea-stock-api/internal/infrastructure/excel"
	"github.com/jhoicas/linea-stock-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/linea-stock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/linea-stock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/linea-stock-api/internal/interfaces/http"
	"github.com/jhoicas/linea-stock-api/pkg/config"
	"github.com/jhoicas/linea-stock-api/pkg/logger"
)

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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Persistencia: PostgreSQL (documentos JSONB) o memoria de proceso.
	var (
		txRunner   inventory.TxRunner
		stockRepo  repository.StockRecordRepository
		reportRepo repository.ReportRepository
		pinger     httpRouter.Pinger
		closeStore = func() {}
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		store := memory.NewStore()
		txRunner, stockRepo, reportRepo, pinger = store, store.StockRecordRepository(), store.ReportRepository(), store
		log.Warn().Msg("usando almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			log.Fatal().Err(err).Msg("crear esquema")
		}
		txRunner = postgres.NewTxRunner(pool)
		stockRepo = postgres.NewStockRecordRepository(pool)
		reportRepo = postgres.NewReportRepository(pool)
		pinger = pool
		closeStore = pool.Close
	}
	defer closeStore()

	// Claves de idempotencia: Redis si está configurado, si no en memoria.
	var (
		idempotency interface {
			Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
			Release(ctx context.Context, key string) error
		}
		redisClient *redis.Client
	)
	if cfg.Redis.Addr != "" {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		idempotency = cache.NewRedisIdempotencyStore(redisClient)
	} else {
		idempotency = cache.NewInMemoryIdempotencyStore()
	}

	ledger := domaininv.NewLedger(cfg.Stock.ModelV1, cfg.Stock.ModelV9, cfg.Stock.LowStockThreshold)
	stockUC := inventory.NewStockUseCase(txRunner, stockRepo, infraexcel.NewMovementExporter(), ledger, log)
	reconcileUC := inventory.NewReconcileReportUseCase(txRunner, ledger, log)
	reportUC := reports.NewReportUseCase(reportRepo, infrapdf.NewReportPDFGenerator())

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		AllowOrigins: cfg.HTTP.AllowOrigins(),
		Logger:       log,
		Pinger:       pinger,
	}, httpRouter.RouterDeps{
		Stock:          stockUC,
		Reconcile:      reconcileUC,
		Reports:        reportUC,
		Idempotency:    idempotency,
		IdempotencyTTL: cfg.Redis.IdempotencyTTL,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Línea Stock API",
	}))

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar Redis")
		}
	}

	log.Info().Msg("aplicación detenida")
}
