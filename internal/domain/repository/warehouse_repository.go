package repository

import (
	"context"

	"github.com/jhoicas/stock-almacenes/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	// List devuelve todos los almacenes ordenados por id (orden de despliegue).
	List(ctx context.Context) ([]*entity.Warehouse, error)
	GetByID(ctx context.Context, id int64) (*entity.Warehouse, error)
	GetByCodigo(ctx context.Context, codigo string) (*entity.Warehouse, error)
	// UpsertByCodigo crea el almacén o actualiza su nombre; usado por el seed.
	UpsertByCodigo(ctx context.Context, warehouse *entity.Warehouse) error
}
