package repository

import (
	"context"

	"github.com/jhoicas/stock-almacenes/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetBySKU devuelven (nil, nil) cuando no existe el producto.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)

	// UpsertBySKU inserta el producto con valores por defecto si el SKU no existe; si existe,
	// sólo reemplaza la descripción cuando la entrante no está vacía. Umbrales intactos.
	UpsertBySKU(ctx context.Context, sku, descripcion string) (*entity.Product, error)

	// UpdateLimits persiste StockMinimo, StockMaximo y TiempoDeResurtido.
	UpdateLimits(ctx context.Context, product *entity.Product) error
}
