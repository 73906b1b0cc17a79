package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-almacenes/internal/application/dto"
	"github.com/jhoicas/stock-almacenes/internal/application/usecase"
	"github.com/jhoicas/stock-almacenes/internal/domain"
	"github.com/jhoicas/stock-almacenes/internal/infrastructure/memory"
)

func TestSeed_IdempotenteYOrdenado(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewWarehouseUseCase(memory.NewStore().Warehouses())

	n, err := uc.Seed(ctx, usecase.DefaultWarehouses)
	require.NoError(t, err)
	assert.Equal(t, len(usecase.DefaultWarehouses), n)
	_, err = uc.Seed(ctx, usecase.DefaultWarehouses)
	require.NoError(t, err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(usecase.DefaultWarehouses))
	assert.Equal(t, dto.WarehouseResponse{ID: 1, Codigo: "0001-AGV", Nombre: "General para Venta"}, list[0])
	assert.Equal(t, "0020-PRES", list[len(list)-1].Codigo)
}

func TestSeed_CodigoVacio(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(memory.NewStore().Warehouses())
	_, err := uc.Seed(context.Background(), []dto.SeedWarehouse{{Codigo: " ", Nombre: "x"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
