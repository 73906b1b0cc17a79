package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/stock-almacenes/internal/domain"
	"github.com/jhoicas/stock-almacenes/internal/domain/entity"
	"github.com/jhoicas/stock-almacenes/internal/domain/repository"
)

var (
	_ repository.ProductRepository    = (*ProductRepo)(nil)
	_ repository.WarehouseRepository  = (*WarehouseRepo)(nil)
	_ repository.InventoryRepository  = (*InventoryRepo)(nil)
	_ repository.StockQueryRepository = (*StockQueryRepo)(nil)
)

// ProductRepo productos en memoria. Devuelve copias.
type ProductRepo struct {
	v view
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.bySKU[p.SKU]; ok {
			return domain.ErrDuplicate
		}
		st.nextProductID++
		p.ID = st.nextProductID
		cp := *p
		st.products[p.ID] = &cp
		st.bySKU[p.SKU] = p.ID
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	r.v.read(func(st *state) {
		if p, ok := st.products[id]; ok {
			cp := *p
			out = &cp
		}
	})
	return out, nil
}

func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	r.v.read(func(st *state) {
		if id, ok := st.bySKU[sku]; ok {
			cp := *st.products[id]
			out = &cp
		}
	})
	return out, nil
}

func (r *ProductRepo) UpsertBySKU(ctx context.Context, sku, descripcion string) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *entity.Product
	err := r.v.write(func(st *state) error {
		now := time.Now()
		if id, ok := st.bySKU[sku]; ok {
			p := st.products[id]
			if descripcion != "" {
				p.Descripcion = descripcion
			}
			p.UpdatedAt = now
			cp := *p
			out = &cp
			return nil
		}
		p := entity.NewProduct(sku, descripcion, now)
		st.nextProductID++
		p.ID = st.nextProductID
		st.products[p.ID] = p
		st.bySKU[sku] = p.ID
		cp := *p
		out = &cp
		return nil
	})
	return out, err
}

func (r *ProductRepo) UpdateLimits(ctx context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.StockMinimo = p.StockMinimo
		cur.StockMaximo = p.StockMaximo
		cur.TiempoDeResurtido = p.TiempoDeResurtido
		cur.UpdatedAt = p.UpdatedAt
		return nil
	})
}

// WarehouseRepo almacenes en memoria.
type WarehouseRepo struct {
	v view
}

func (r *WarehouseRepo) List(ctx context.Context) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	r.v.read(func(st *state) {
		for _, w := range st.warehouses {
			cw := *w
			out = append(out, &cw)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *WarehouseRepo) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	r.v.read(func(st *state) {
		if w, ok := st.warehouses[id]; ok {
			cw := *w
			out = &cw
		}
	})
	return out, nil
}

func (r *WarehouseRepo) GetByCodigo(ctx context.Context, codigo string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	r.v.read(func(st *state) {
		if id, ok := st.byCodigo[codigo]; ok {
			cw := *st.warehouses[id]
			out = &cw
		}
	})
	return out, nil
}

func (r *WarehouseRepo) UpsertByCodigo(ctx context.Context, w *entity.Warehouse) error {
	return r.v.write(func(st *state) error {
		if id, ok := st.byCodigo[w.Codigo]; ok {
			cur := st.warehouses[id]
			cur.Nombre = w.Nombre
			cur.UpdatedAt = w.UpdatedAt
			w.ID, w.CreatedAt = cur.ID, cur.CreatedAt
			return nil
		}
		st.nextWarehouseID++
		w.ID = st.nextWarehouseID
		cw := *w
		st.warehouses[w.ID] = &cw
		st.byCodigo[w.Codigo] = w.ID
		return nil
	})
}

// InventoryRepo inventario en memoria.
type InventoryRepo struct {
	v view
}

// LockWarehouse no hace nada: el mutex de escritor ya serializa las transacciones.
func (r *InventoryRepo) LockWarehouse(ctx context.Context, warehouseID int64) error {
	return ctx.Err()
}

func (r *InventoryRepo) Upsert(ctx context.Context, inv *entity.Inventory) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var changed bool
	err := r.v.write(func(st *state) error {
		if _, ok := st.products[inv.ProductID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := st.warehouses[inv.WarehouseID]; !ok {
			return domain.ErrUnknownWarehouse
		}
		now := time.Now()
		k := invKey{inv.ProductID, inv.WarehouseID}
		cur, ok := st.inventory[k]
		if !ok {
			ci := *inv
			ci.CreatedAt, ci.UpdatedAt = now, now
			st.inventory[k] = &ci
			changed = true
			return nil
		}
		changed = cur.Cantidad != inv.Cantidad
		cur.Cantidad = inv.Cantidad
		cur.Reportada = inv.Reportada
		cur.UpdatedAt = now
		return nil
	})
	return changed, err
}

func (r *InventoryRepo) ListByProducts(ctx context.Context, productIDs []int64) ([]*entity.Inventory, error) {
	want := make(map[int64]bool, len(productIDs))
	for _, id := range productIDs {
		want[id] = true
	}
	var out []*entity.Inventory
	r.v.read(func(st *state) {
		for k, inv := range st.inventory {
			if want[k.productID] {
				ci := *inv
				out = append(out, &ci)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].WarehouseID < out[j].WarehouseID
	})
	return out, nil
}

// StockQueryRepo consultas de la vista de stock en memoria.
type StockQueryRepo struct {
	v view
}

func (r *StockQueryRepo) PageProducts(ctx context.Context, f repository.StockFilter) ([]*entity.Product, int, error) {
	q := strings.ToLower(f.Search)
	var matched []*entity.Product
	r.v.read(func(st *state) {
		for _, p := range st.products {
			if q == "" || strings.Contains(strings.ToLower(p.SKU), q) || strings.Contains(strings.ToLower(p.Descripcion), q) {
				cp := *p
				matched = append(matched, &cp)
			}
		}
	})
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	start := clamp(f.Offset, 0, total)
	end := total
	if f.Limit > 0 {
		end = clamp(start+f.Limit, start, total)
	}
	return matched[start:end], total, nil
}

func (r *StockQueryRepo) ProductsAtMinimum(ctx context.Context) ([]repository.ReplenishmentItem, error) {
	var items []repository.ReplenishmentItem
	r.v.read(func(st *state) {
		totals := make(map[int64]int, len(st.products))
		for k, inv := range st.inventory {
			totals[k.productID] += inv.Cantidad
		}
		for id, p := range st.products {
			if p.StockMinimo > 0 && totals[id] <= p.StockMinimo {
				cp := *p
				items = append(items, repository.ReplenishmentItem{Product: &cp, Total: totals[id]})
			}
		}
	})
	sort.Slice(items, func(i, j int) bool {
		di := items[i].Product.StockMinimo - items[i].Total
		dj := items[j].Product.StockMinimo - items[j].Total
		if di != dj {
			return di > dj
		}
		return items[i].Product.ID < items[j].Product.ID
	})
	return items, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
