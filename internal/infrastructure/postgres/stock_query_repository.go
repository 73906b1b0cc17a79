package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-almacenes/internal/domain/entity"
	"github.com/jhoicas/stock-almacenes/internal/domain/repository"
)

var _ repository.StockQueryRepository = (*StockQueryRepo)(nil)

// StockQueryRepo lecturas de la vista de stock. Sin transacción explícita.
type StockQueryRepo struct {
	q Querier
}

// NewStockQueryRepository construye el adaptador de consultas.
func NewStockQueryRepository(q Querier) *StockQueryRepo {
	return &StockQueryRepo{q: q}
}

const searchClause = `($1 = '' OR sku ILIKE $2 ESCAPE '\' OR descripcion ILIKE $2 ESCAPE '\')`

func (r *StockQueryRepo) PageProducts(ctx context.Context, f repository.StockFilter) ([]*entity.Product, int, error) {
	pattern := likePattern(f.Search)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM producto WHERE `+searchClause, f.Search, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count productos: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM producto WHERE ` + searchClause + ` ORDER BY id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, f.Search, pattern, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("page productos: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0, f.Limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ProductsAtMinimum productos con mínimo definido y total <= mínimo, mayor déficit primero.
func (r *StockQueryRepo) ProductsAtMinimum(ctx context.Context) ([]repository.ReplenishmentItem, error) {
	query := `
		SELECT p.id, p.sku, p.nombre, COALESCE(p.descripcion, ''), p.stock_minimo, p.stock_maximo,
		       p.tiempo_de_resurtido, p.created_at, p.updated_at, COALESCE(SUM(i.cantidad), 0) AS total
		FROM producto p
		LEFT JOIN inventario i ON i.producto_id = p.id
		WHERE p.stock_minimo > 0
		GROUP BY p.id
		HAVING COALESCE(SUM(i.cantidad), 0) <= p.stock_minimo
		ORDER BY p.stock_minimo - COALESCE(SUM(i.cantidad), 0) DESC, p.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("productos en mínimo: %w", err)
	}
	defer rows.Close()
	var items []repository.ReplenishmentItem
	for rows.Next() {
		var p entity.Product
		var total int64
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Nombre, &p.Descripcion, &p.StockMinimo, &p.StockMaximo,
			&p.TiempoDeResurtido, &p.CreatedAt, &p.UpdatedAt, &total,
		); err != nil {
			return nil, fmt.Errorf("scan resurtido: %w", err)
		}
		items = append(items, repository.ReplenishmentItem{Product: &p, Total: int(total)})
	}
	return items, rows.Err()
}
