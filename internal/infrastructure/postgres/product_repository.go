package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-almacenes/internal/domain"
	"github.com/jhoicas/stock-almacenes/internal/domain/entity"
	"github.com/jhoicas/stock-almacenes/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, nombre, COALESCE(descripcion, ''), stock_minimo, stock_maximo, tiempo_de_resurtido, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y asigna su ID.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO producto (sku, nombre, descripcion, stock_minimo, stock_maximo, tiempo_de_resurtido, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.SKU, p.Nombre, p.Descripcion, p.StockMinimo, p.StockMaximo, p.TiempoDeResurtido, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM producto WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM producto WHERE sku = $1`, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto por sku: %w", err)
	}
	return p, nil
}

// UpsertBySKU inserta con nombre = sku y umbrales por defecto, o sólo refresca la descripción
// cuando la entrante no está vacía.
func (r *ProductRepo) UpsertBySKU(ctx context.Context, sku, descripcion string) (*entity.Product, error) {
	query := `
		INSERT INTO producto (sku, nombre, descripcion, stock_minimo, stock_maximo, tiempo_de_resurtido, created_at, updated_at)
		VALUES ($1, $1, NULLIF($2, ''), 0, $3, 0, now(), now())
		ON CONFLICT (sku) DO UPDATE SET
			descripcion = COALESCE(NULLIF(EXCLUDED.descripcion, ''), producto.descripcion),
			updated_at = now()
		RETURNING ` + productColumns
	p, err := scanProduct(r.q.QueryRow(ctx, query, sku, descripcion, entity.StockMaximoSentinel))
	if err != nil {
		return nil, fmt.Errorf("upsert producto: %w", err)
	}
	return p, nil
}

// UpdateLimits persiste los umbrales del producto.
func (r *ProductRepo) UpdateLimits(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE producto
		SET stock_minimo = $2, stock_maximo = $3, tiempo_de_resurtido = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.StockMinimo, p.StockMaximo, p.TiempoDeResurtido, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update límites: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Nombre, &p.Descripcion, &p.StockMinimo, &p.StockMaximo,
		&p.TiempoDeResurtido, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
