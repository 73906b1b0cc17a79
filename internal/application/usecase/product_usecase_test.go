package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-almacenes/internal/application/dto"
	"github.com/jhoicas/stock-almacenes/internal/application/usecase"
	"github.com/jhoicas/stock-almacenes/internal/domain"
	"github.com/jhoicas/stock-almacenes/internal/domain/entity"
	"github.com/jhoicas/stock-almacenes/internal/infrastructure/memory"
)

func newProduct(t *testing.T) (*usecase.ProductUseCase, *memory.Store, *dto.ProductResponse) {
	t.Helper()
	s := memory.NewStore()
	uc := usecase.NewProductUseCase(s.Products(), nil)
	p, err := uc.Create(context.Background(), dto.CreateProductRequest{SKU: "A-1", Descripcion: "Tornillo"})
	require.NoError(t, err)
	return uc, s, p
}

func limits(t *testing.T, body string) dto.UpdateLimitsRequest {
	t.Helper()
	var req dto.UpdateLimitsRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestCreate_ValoresPorDefecto(t *testing.T) {
	_, _, p := newProduct(t)
	assert.Equal(t, "A-1", p.Nombre)
	assert.Equal(t, 0, p.StockMinimo)
	assert.Equal(t, entity.StockMaximoSentinel, p.StockMaximo)
}

func TestCreate_Duplicado(t *testing.T) {
	uc, _, _ := newProduct(t)
	_, err := uc.Create(context.Background(), dto.CreateProductRequest{SKU: "A-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestGetByID_NoExiste(t *testing.T) {
	uc, _, _ := newProduct(t)
	_, err := uc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateLimits_OK(t *testing.T) {
	uc, _, p := newProduct(t)
	req := dto.UpdateLimitsRequest{
		ID:                dto.Num(p.ID),
		StockMinimo:       dto.Num(10),
		StockMaximo:       dto.Num(50),
		TiempoDeResurtido: dto.Num(7),
	}
	out, err := uc.UpdateLimits(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 10, out.StockMinimo)
	assert.Equal(t, 50, out.StockMaximo)
	assert.Equal(t, 7, out.TiempoDeResurtido)
}

func TestUpdateLimits_AceptaCadenasNumericas(t *testing.T) {
	uc, _, p := newProduct(t)
	req := limits(t, `{"id":"1","stockMinimo":"3","stockMaximo":9}`)
	require.Equal(t, int64(1), p.ID)
	out, err := uc.UpdateLimits(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 3, out.StockMinimo)
	assert.Equal(t, 0, out.TiempoDeResurtido)
}

func TestUpdateLimits_Validaciones(t *testing.T) {
	cases := []struct {
		name, body, msg string
	}{
		{"faltan campos", `{"id":1,"stockMinimo":1}`, "Todos los campos son requeridos"},
		{"null cuenta como ausente", `{"id":1,"stockMinimo":null,"stockMaximo":3}`, "Todos los campos son requeridos"},
		{"no numérico", `{"id":1,"stockMinimo":"diez","stockMaximo":3}`, "Los valores deben ser números válidos"},
		{"negativo", `{"id":1,"stockMinimo":-1,"stockMaximo":3}`, "Los límites de stock deben ser números positivos"},
		{"máximo igual al mínimo", `{"id":1,"stockMinimo":5,"stockMaximo":5}`, "El stock máximo debe ser mayor que el mínimo"},
		{"máximo menor", `{"id":1,"stockMinimo":5,"stockMaximo":2}`, "El stock máximo debe ser mayor que el mínimo"},
		{"tiempo negativo", `{"id":1,"stockMinimo":1,"stockMaximo":2,"tiempoDeResurtido":-3}`, "El tiempo de resurtido debe ser un número positivo"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, s, _ := newProduct(t)
			_, err := uc.UpdateLimits(context.Background(), limits(t, tc.body))

			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.EqualError(t, err, tc.msg)

			// el producto no cambia
			p, err := s.Products().GetByID(context.Background(), 1)
			require.NoError(t, err)
			assert.Equal(t, 0, p.StockMinimo)
			assert.Equal(t, entity.StockMaximoSentinel, p.StockMaximo)
		})
	}
}

func TestUpdateLimits_ProductoInexistente(t *testing.T) {
	uc, _, _ := newProduct(t)
	_, err := uc.UpdateLimits(context.Background(), limits(t, `{"id":99,"stockMinimo":1,"stockMaximo":2}`))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
