package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-almacenes/internal/application/dto"
	"github.com/jhoicas/stock-almacenes/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y ningún cambio queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
	) error) error
}

// StockCache caché opcional de páginas de la consulta de stock. Una consulta lee la generación
// una sola vez y usa ese valor para leer y para guardar, así una página armada antes de una
// invalidación nunca queda bajo la generación nueva.
type StockCache interface {
	// Generation devuelve la generación vigente; ok=false si la caché no está disponible.
	Generation(ctx context.Context) (gen string, ok bool)
	GetPage(ctx context.Context, gen, key string) (*dto.StockPageResponse, bool)
	SetPage(ctx context.Context, gen, key string, page *dto.StockPageResponse)
	// Invalidate descarta todas las páginas; se llama tras cada escritura.
	Invalidate(ctx context.Context)
}

// NopStockCache caché que nunca guarda nada.
type NopStockCache struct{}

func (NopStockCache) Generation(context.Context) (string, bool) { return "", false }
func (NopStockCache) GetPage(context.Context, string, string) (*dto.StockPageResponse, bool) {
	return nil, false
}
func (NopStockCache) SetPage(context.Context, string, string, *dto.StockPageResponse) {}
func (NopStockCache) Invalidate(context.Context)                                      {}

// ReplenishmentReportGenerator genera el reporte imprimible de resurtido.
type ReplenishmentReportGenerator interface {
	GenerateReplenishmentPDF(ctx context.Context, items []dto.ReplenishmentSuggestionDTO, generatedAt time.Time) ([]byte, error)
}
