package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-almacenes/internal/domain/entity"
	"github.com/jhoicas/stock-almacenes/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// LockWarehouse toma un advisory lock de transacción; se libera con Commit/Rollback.
// Sólo tiene efecto dentro de una tx.
func (r *InventoryRepo) LockWarehouse(ctx context.Context, warehouseID int64) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, warehouseID); err != nil {
		return fmt.Errorf("lock almacén %d: %w", warehouseID, err)
	}
	return nil
}

// Upsert reemplaza la cantidad del par (producto, almacén). prev ve la fila anterior al INSERT
// (mismo snapshot), así sabemos si se insertó o si cambió el valor.
func (r *InventoryRepo) Upsert(ctx context.Context, inv *entity.Inventory) (bool, error) {
	query := `
		WITH prev AS (
			SELECT cantidad FROM inventario WHERE producto_id = $1 AND almacen_id = $2
		)
		INSERT INTO inventario (producto_id, almacen_id, cantidad, cantidad_reportada, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (producto_id, almacen_id) DO UPDATE SET
			cantidad = EXCLUDED.cantidad,
			cantidad_reportada = EXCLUDED.cantidad_reportada,
			updated_at = now()
		RETURNING (SELECT cantidad FROM prev)`
	var prev *int
	if err := r.q.QueryRow(ctx, query, inv.ProductID, inv.WarehouseID, inv.Cantidad, inv.Reportada).Scan(&prev); err != nil {
		return false, fmt.Errorf("upsert inventario: %w", err)
	}
	return prev == nil || *prev != inv.Cantidad, nil
}

// ListByProducts devuelve las filas de inventario de los productos dados.
func (r *InventoryRepo) ListByProducts(ctx context.Context, productIDs []int64) ([]*entity.Inventory, error) {
	query := `
		SELECT producto_id, almacen_id, cantidad, cantidad_reportada, created_at, updated_at
		FROM inventario
		WHERE producto_id = ANY($1)
		ORDER BY producto_id, almacen_id`
	rows, err := r.q.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("list inventario: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.ProductID, &inv.WarehouseID, &inv.Cantidad, &inv.Reportada, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventario: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}
