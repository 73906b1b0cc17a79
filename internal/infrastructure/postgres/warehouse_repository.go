package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-almacenes/internal/domain/entity"
	"github.com/jhoicas/stock-almacenes/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación de WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador. Acepta pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

func (r *WarehouseRepo) List(ctx context.Context) ([]*entity.Warehouse, error) {
	rows, err := r.q.Query(ctx, `SELECT id, codigo, nombre, created_at, updated_at FROM almacen ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list almacenes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Codigo, &w.Nombre, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan almacén: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

func (r *WarehouseRepo) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *WarehouseRepo) GetByCodigo(ctx context.Context, codigo string) (*entity.Warehouse, error) {
	return r.getOne(ctx, `WHERE codigo = $1`, codigo)
}

func (r *WarehouseRepo) getOne(ctx context.Context, where string, arg any) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, `SELECT id, codigo, nombre, created_at, updated_at FROM almacen `+where, arg).
		Scan(&w.ID, &w.Codigo, &w.Nombre, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get almacén: %w", err)
	}
	return &w, nil
}

// UpsertByCodigo crea el almacén o actualiza su nombre. Asigna ID.
func (r *WarehouseRepo) UpsertByCodigo(ctx context.Context, w *entity.Warehouse) error {
	query := `
		INSERT INTO almacen (codigo, nombre, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (codigo) DO UPDATE SET nombre = EXCLUDED.nombre, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	if err := r.q.QueryRow(ctx, query, w.Codigo, w.Nombre, w.UpdatedAt).Scan(&w.ID, &w.CreatedAt); err != nil {
		return fmt.Errorf("upsert almacén: %w", err)
	}
	return nil
}
