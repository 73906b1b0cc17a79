package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stock-almacenes/internal/application/inventory"
	"github.com/jhoicas/stock-almacenes/internal/application/usecase"
	infracache "github.com/jhoicas/stock-almacenes/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/stock-almacenes/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-almacenes/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stock-almacenes/internal/interfaces/http"
	"github.com/jhoicas/stock-almacenes/pkg/config"
	"github.com/jhoicas/stock-almacenes/pkg/logger"
)

// @title        Stock Almacenes API
// @version      1.0
// @description  Conciliación de stock multi-almacén a partir de archivos CSV.
// @BasePath     /
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("aplicadas", applied).Msg("migraciones al día")
	}

	// Caché de páginas de stock: sólo si hay Redis configurado y responde
	var stockCache inventory.StockCache = inventory.NopStockCache{}
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := infracache.Ping(ctx, rdb); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, sin caché")
		} else {
			stockCache = infracache.NewRedisStockCache(rdb, cfg.Redis.TTL, log)
		}
	}

	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	queryRepo := postgres.NewStockQueryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	reportGen := infrapdf.NewMarotoReportGenerator(cfg.App.Name)

	app := httpRouter.NewApp(httpRouter.AppOptions{
		Name:      cfg.App.Name,
		BodyLimit: cfg.Upload.MaxBytes(),
	}, httpRouter.RouterDeps{
		WarehouseUC:     usecase.NewWarehouseUseCase(warehouseRepo),
		ProductUC:       usecase.NewProductUseCase(productRepo, stockCache),
		IngestUC:        inventory.NewIngestUseCase(txRunner, warehouseRepo, stockCache, log),
		StockQueryUC:    inventory.NewStockQueryUseCase(queryRepo, warehouseRepo, inventoryRepo, stockCache, log),
		ReplenishmentUC: inventory.NewReplenishmentUseCase(queryRepo, reportGen),
		Log:             log,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Stock Almacenes API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

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

	log.Info().Msg("aplicación detenida")
}
