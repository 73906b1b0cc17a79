package repository

import (
	"context"

	"github.com/jhoicas/stock-almacenes/internal/domain/entity"
)

// StockFilter página y búsqueda libre sobre sku/descripción.
type StockFilter struct {
	Offset int
	Limit  int
	Search string
}

// ReplenishmentItem producto cuyo stock total está en o bajo su mínimo.
type ReplenishmentItem struct {
	Product *entity.Product
	Total   int
}

// StockQueryRepository puerto de lectura para la capa de agregación. Sin efectos secundarios.
type StockQueryRepository interface {
	// PageProducts devuelve los productos de la página (ordenados por id) y el total que
	// cumple el filtro.
	PageProducts(ctx context.Context, filter StockFilter) ([]*entity.Product, int, error)

	// ProductsAtMinimum devuelve los productos con total <= stock_minimo, mayor déficit primero.
	ProductsAtMinimum(ctx context.Context) ([]ReplenishmentItem, error)
}
