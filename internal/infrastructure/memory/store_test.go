package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-almacenes/internal/domain/entity"
	"github.com/jhoicas/stock-almacenes/internal/domain/repository"
	"github.com/jhoicas/stock-almacenes/internal/infrastructure/memory"
)

func seedWarehouse(t *testing.T, s *memory.Store, codigo string) *entity.Warehouse {
	t.Helper()
	w := &entity.Warehouse{Codigo: codigo, Nombre: codigo, UpdatedAt: time.Now()}
	require.NoError(t, s.Warehouses().UpsertByCodigo(context.Background(), w))
	return w
}

func TestTxRunner_RollbackDescartaCambios(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	w := seedWarehouse(t, s, "0001-AGV")

	boom := errors.New("boom")
	err := s.TxRunner().Run(ctx, func(p repository.ProductRepository, inv repository.InventoryRepository) error {
		prod, err := p.UpsertBySKU(ctx, "A-1", "uno")
		require.NoError(t, err)
		_, err = inv.Upsert(ctx, &entity.Inventory{ProductID: prod.ID, WarehouseID: w.ID, Cantidad: 5})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Products().GetBySKU(ctx, "A-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTxRunner_CommitPublica(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	w := seedWarehouse(t, s, "0001-AGV")

	err := s.TxRunner().Run(ctx, func(p repository.ProductRepository, inv repository.InventoryRepository) error {
		prod, err := p.UpsertBySKU(ctx, "A-1", "uno")
		if err != nil {
			return err
		}
		changed, err := inv.Upsert(ctx, &entity.Inventory{ProductID: prod.ID, WarehouseID: w.ID, Cantidad: 5})
		assert.True(t, changed)
		return err
	})
	require.NoError(t, err)

	prod, err := s.Products().GetBySKU(ctx, "A-1")
	require.NoError(t, err)
	require.NotNil(t, prod)
	levels, err := s.Inventory().ListByProducts(ctx, []int64{prod.ID})
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, 5, levels[0].Cantidad)
}

func TestInventoryUpsert_ReemplazaYReportaCambio(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	w := seedWarehouse(t, s, "0001-AGV")
	prod, err := s.Products().UpsertBySKU(ctx, "A-1", "")
	require.NoError(t, err)

	inv := s.Inventory()
	changed, err := inv.Upsert(ctx, &entity.Inventory{ProductID: prod.ID, WarehouseID: w.ID, Cantidad: 7})
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = inv.Upsert(ctx, &entity.Inventory{ProductID: prod.ID, WarehouseID: w.ID, Cantidad: 7})
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = inv.Upsert(ctx, &entity.Inventory{ProductID: prod.ID, WarehouseID: w.ID, Cantidad: 3})
	require.NoError(t, err)
	assert.True(t, changed)

	levels, _ := inv.ListByProducts(ctx, []int64{prod.ID})
	assert.Equal(t, 3, levels[0].Cantidad)
}

func TestPageProducts_BusquedaYOrden(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	for _, sku := range []string{"TOR-1", "TUE-2", "tor-3"} {
		_, err := s.Products().UpsertBySKU(ctx, sku, "pieza "+sku)
		require.NoError(t, err)
	}

	page, total, err := s.StockQuery().PageProducts(ctx, repository.StockFilter{Limit: 10, Search: "Tor"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, page, 2)
	assert.Equal(t, "TOR-1", page[0].SKU)
	assert.Equal(t, "tor-3", page[1].SKU)

	page, total, err = s.StockQuery().PageProducts(ctx, repository.StockFilter{Offset: 5, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, page)
}

func TestWarehouseUpsert_Idempotente(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	a := seedWarehouse(t, s, "0001-AGV")
	b := seedWarehouse(t, s, "0001-AGV")
	assert.Equal(t, a.ID, b.ID)

	list, err := s.Warehouses().List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
