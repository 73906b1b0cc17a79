package inventory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-almacenes/internal/application/dto"
	"github.com/jhoicas/stock-almacenes/internal/domain"
	"github.com/jhoicas/stock-almacenes/internal/domain/entity"
	"github.com/jhoicas/stock-almacenes/internal/domain/repository"
	"github.com/jhoicas/stock-almacenes/internal/domain/stockcsv"
	"github.com/jhoicas/stock-almacenes/pkg/logger"
)

// IngestUseCase concilia un archivo de conteo con el stock de un almacén.
// Todo el archivo se aplica en una sola transacción: o entran todas las filas o ninguna.
type IngestUseCase struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
	cache         StockCache
	log           *logger.Logger
	now           func() time.Time
}

// NewIngestUseCase construye el caso de uso. cache puede ser nil.
func NewIngestUseCase(
	txRunner TxRunner,
	warehouseRepo repository.WarehouseRepository,
	cache StockCache,
	log *logger.Logger,
) *IngestUseCase {
	if cache == nil {
		cache = NopStockCache{}
	}
	return &IngestUseCase{
		txRunner:      txRunner,
		warehouseRepo: warehouseRepo,
		cache:         cache,
		log:           log.Component("ingesta"),
		now:           time.Now,
	}
}

// IngestInput archivo a conciliar. Si WarehouseID y WarehouseCode vienen vacíos, el almacén
// se toma del encabezado del reporte de valuación.
type IngestInput struct {
	WarehouseID   int64
	WarehouseCode string
	FileName      string
	Content       []byte
}

// Ingest valida el almacén, detecta el formato y aplica cada registro:
// upsert del producto por SKU y reemplazo de la cantidad del par (producto, almacén).
func (uc *IngestUseCase) Ingest(ctx context.Context, in IngestInput) (*dto.IngestResult, error) {
	var (
		wh  *entity.Warehouse
		err error
	)
	if in.WarehouseID > 0 || strings.TrimSpace(in.WarehouseCode) != "" {
		wh, err = uc.ResolveWarehouse(ctx, in.WarehouseID, in.WarehouseCode)
		if err != nil {
			return nil, err
		}
	}

	text, err := stockcsv.Decode(in.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnparsableFormat, err)
	}
	format, records, err := stockcsv.Parse(text)
	if err != nil {
		return nil, err
	}

	if wh == nil {
		code, ok := stockcsv.DetectWarehouseCode(text)
		if !ok {
			return nil, domain.NewValidationError("Archivo y almacén son requeridos: indique almacenId o codigo")
		}
		wh, err = uc.ResolveWarehouse(ctx, 0, code)
		if err != nil {
			return nil, err
		}
	}

	res := &dto.IngestResult{
		RunID:     uuid.NewString(),
		AlmacenID: wh.ID,
		Codigo:    wh.Codigo,
		Formato:   format.String(),
	}
	log := uc.log.With().
		Str("run_id", res.RunID).
		Int64("almacen_id", wh.ID).
		Str("archivo", in.FileName).
		Str("formato", res.Formato).
		Logger()
	log.Info().Int("bytes", len(in.Content)).Msg("inicio de ingesta")

	start := uc.now()
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
	) error {
		// Reinicia contadores por si la transacción se reintenta
		res.Filas, res.UpdatedProducts, res.UpdatedInventory = 0, 0, 0

		if err := inventoryRepo.LockWarehouse(ctx, wh.ID); err != nil {
			return err
		}
		for rec := range records {
			res.Filas++
			if rec.SKU == "" {
				continue
			}
			product, err := productRepo.UpsertBySKU(ctx, rec.SKU, rec.Description)
			if err != nil {
				return fmt.Errorf("producto %q: %w", rec.SKU, err)
			}
			changed, err := inventoryRepo.Upsert(ctx, &entity.Inventory{
				ProductID:   product.ID,
				WarehouseID: wh.ID,
				Cantidad:    rec.Quantity,
				Reportada:   rec.Reported,
				UpdatedAt:   uc.now(),
			})
			if err != nil {
				return fmt.Errorf("inventario %q: %w", rec.SKU, err)
			}
			if changed {
				res.UpdatedInventory++
			}
			res.UpdatedProducts++
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("ingesta abortada, sin cambios")
		return nil, domain.WrapPersistence("ingesta de stock", err)
	}

	uc.cache.Invalidate(ctx)

	res.Success = true
	res.Message = fmt.Sprintf("Stock actualizado correctamente. Productos: %d, Inventario: %d",
		res.UpdatedProducts, res.UpdatedInventory)
	log.Info().
		Int("filas", res.Filas).
		Int("productos", res.UpdatedProducts).
		Int("inventario", res.UpdatedInventory).
		Dur("duracion", uc.now().Sub(start)).
		Msg("ingesta completada")
	return res, nil
}

// ResolveWarehouse busca el almacén por id (si id > 0) o por código. Si no existe devuelve
// *domain.UnknownWarehouseError con la lista de almacenes válidos.
func (uc *IngestUseCase) ResolveWarehouse(ctx context.Context, id int64, codigo string) (*entity.Warehouse, error) {
	var (
		wh        *entity.Warehouse
		err       error
		requested string
	)
	if id > 0 {
		requested = strconv.FormatInt(id, 10)
		wh, err = uc.warehouseRepo.GetByID(ctx, id)
	} else {
		requested = strings.TrimSpace(codigo)
		wh, err = uc.warehouseRepo.GetByCodigo(ctx, requested)
	}
	if err != nil {
		return nil, domain.WrapPersistence("buscar almacén", err)
	}
	if wh != nil {
		return wh, nil
	}

	all, err := uc.warehouseRepo.List(ctx)
	if err != nil {
		return nil, domain.WrapPersistence("listar almacenes", err)
	}
	refs := make([]domain.WarehouseRef, 0, len(all))
	for _, w := range all {
		refs = append(refs, domain.WarehouseRef{ID: w.ID, Codigo: w.Codigo, Nombre: w.Nombre})
	}
	return nil, &domain.UnknownWarehouseError{Requested: requested, Available: refs}
}
