package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/stock-almacenes/internal/application/dto"
	"github.com/jhoicas/stock-almacenes/internal/domain"
	"github.com/jhoicas/stock-almacenes/internal/domain/entity"
	"github.com/jhoicas/stock-almacenes/internal/domain/repository"
	"github.com/jhoicas/stock-almacenes/pkg/logger"
)

// StockQueryUseCase arma la vista pivoteada de stock: una fila por producto, una columna por almacén.
type StockQueryUseCase struct {
	queryRepo     repository.StockQueryRepository
	warehouseRepo repository.WarehouseRepository
	inventoryRepo repository.InventoryRepository
	cache         StockCache
	log           *logger.Logger
}

func NewStockQueryUseCase(
	queryRepo repository.StockQueryRepository,
	warehouseRepo repository.WarehouseRepository,
	inventoryRepo repository.InventoryRepository,
	cache StockCache,
	log *logger.Logger,
) *StockQueryUseCase {
	if cache == nil {
		cache = NopStockCache{}
	}
	return &StockQueryUseCase{
		queryRepo:     queryRepo,
		warehouseRepo: warehouseRepo,
		inventoryRepo: inventoryRepo,
		cache:         cache,
		log:           log.Component("stock"),
	}
}

// Page devuelve una página de productos con su desglose por almacén, total y alerta.
// Los almacenes sin fila de inventario aparecen con cantidad 0.
func (uc *StockQueryUseCase) Page(ctx context.Context, req dto.StockPageRequest) (*dto.StockPageResponse, error) {
	req.DefaultPage()
	req.Search = strings.TrimSpace(req.Search)

	key := fmt.Sprintf("o=%d:l=%d:q=%s", req.Offset, req.Limit, strings.ToLower(req.Search))
	gen, cacheable := uc.cache.Generation(ctx)
	if cacheable {
		if cached, ok := uc.cache.GetPage(ctx, gen, key); ok {
			return cached, nil
		}
	}

	warehouses, err := uc.warehouseRepo.List(ctx)
	if err != nil {
		return nil, domain.WrapPersistence("listar almacenes", err)
	}
	products, total, err := uc.queryRepo.PageProducts(ctx, repository.StockFilter{
		Offset: req.Offset,
		Limit:  req.Limit,
		Search: req.Search,
	})
	if err != nil {
		return nil, domain.WrapPersistence("paginar productos", err)
	}

	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	var levels []*entity.Inventory
	if len(ids) > 0 {
		levels, err = uc.inventoryRepo.ListByProducts(ctx, ids)
		if err != nil {
			return nil, domain.WrapPersistence("leer inventario", err)
		}
	}

	// producto -> almacén -> cantidad
	qty := make(map[int64]map[int64]int, len(products))
	for _, inv := range levels {
		m, ok := qty[inv.ProductID]
		if !ok {
			m = make(map[int64]int)
			qty[inv.ProductID] = m
		}
		m[inv.WarehouseID] = inv.Cantidad
	}

	cols := make([]dto.WarehouseColumn, 0, len(warehouses))
	for _, w := range warehouses {
		cols = append(cols, dto.WarehouseColumn{AlmacenID: w.ID, Codigo: w.Codigo, Nombre: w.Nombre})
	}

	items := make([]dto.StockItem, 0, len(products))
	for _, p := range products {
		item := dto.StockItem{
			ID:                p.ID,
			SKU:               p.SKU,
			Nombre:            p.Nombre,
			Descripcion:       p.Descripcion,
			StockMinimo:       p.StockMinimo,
			StockMaximo:       p.StockMaximo,
			TiempoDeResurtido: p.TiempoDeResurtido,
			Almacenes:         make([]dto.WarehouseQuantity, 0, len(warehouses)),
		}
		for _, w := range warehouses {
			c := qty[p.ID][w.ID]
			item.Almacenes = append(item.Almacenes, dto.WarehouseQuantity{
				AlmacenID: w.ID,
				Codigo:    w.Codigo,
				Cantidad:  c,
			})
			item.Total += c
		}
		item.Alerta = string(p.Alert(item.Total))
		items = append(items, item)
	}

	resp := &dto.StockPageResponse{
		Items:      items,
		Warehouses: cols,
		HasMore:    req.Offset+req.Limit < total,
		Total:      total,
		Page:       req.PageRequest,
	}
	if cacheable {
		uc.cache.SetPage(ctx, gen, key, resp)
	}
	uc.log.Debug().Int("offset", req.Offset).Int("limit", req.Limit).Int("total", total).Msg("página de stock")
	return resp, nil
}
