package repository

import (
	"context"

	"github.com/jhoicas/stock-almacenes/internal/domain/entity"
)

// InventoryRepository define el puerto para la cantidad por producto+almacén.
// Usado dentro de transacciones (TxRunner) por el motor de conciliación.
type InventoryRepository interface {
	// LockWarehouse serializa las ingestas concurrentes sobre el mismo almacén
	// hasta el fin de la transacción actual.
	LockWarehouse(ctx context.Context, warehouseID int64) error

	// Upsert inserta la fila o reemplaza Cantidad (nunca suma) y refresca UpdatedAt.
	// changed es true si la fila se insertó o si la cantidad cambió.
	Upsert(ctx context.Context, inv *entity.Inventory) (changed bool, err error)

	ListByProducts(ctx context.Context, productIDs []int64) ([]*entity.Inventory, error)
}
