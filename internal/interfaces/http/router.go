package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/stock-almacenes/internal/application/inventory"
	"github.com/jhoicas/stock-almacenes/internal/application/usecase"
	"github.com/jhoicas/stock-almacenes/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC     *usecase.WarehouseUseCase
	ProductUC       *usecase.ProductUseCase
	IngestUC        *inventory.IngestUseCase
	StockQueryUC    *inventory.StockQueryUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	Log             *logger.Logger
}

// AppOptions opciones del servidor fiber.
type AppOptions struct {
	Name      string
	BodyLimit int // bytes; 0 = valor por defecto de fiber
}

// NewApp crea la aplicación fiber con recover, log de peticiones, /health y las rutas de la API.
func NewApp(opts AppOptions, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		BodyLimit:    opts.BodyLimit,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(deps.Log),
	})
	app.Use(RequestLogger(deps.Log))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": opts.Name})
	})

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, deps.Log)
	api.Get("/warehouses", warehouseHandler.List)

	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.IngestUC, deps.StockQueryUC, deps.ReplenishmentUC, deps.Log)
	stock.Post("/upload", stockHandler.Upload)
	stock.Get("/", stockHandler.Page)
	stock.Get("/replenishment", stockHandler.Replenishment)
	stock.Get("/replenishment.pdf", stockHandler.ReplenishmentPDF)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id/limits", productHandler.UpdateLimits)

	// Ruta heredada del cliente web: el id viaja en el cuerpo
	api.Post("/update-stock-limits", productHandler.UpdateLimitsLegacy)
}
