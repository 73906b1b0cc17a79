package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-almacenes/internal/application/dto"
	"github.com/jhoicas/stock-almacenes/internal/application/inventory"
	"github.com/jhoicas/stock-almacenes/internal/domain/entity"
)

func TestSuggestedQuantity(t *testing.T) {
	assert.Equal(t, 95, inventory.SuggestedQuantity(&entity.Product{StockMinimo: 10, StockMaximo: 100}, 5))
	// sin máximo definido se apunta al doble del mínimo
	assert.Equal(t, 15, inventory.SuggestedQuantity(&entity.Product{StockMinimo: 10, StockMaximo: entity.StockMaximoSentinel}, 5))
	assert.Equal(t, 0, inventory.SuggestedQuantity(&entity.Product{StockMinimo: 10, StockMaximo: 12}, 40))
}

func TestReplenishment_ListaOrdenadaPorDeficit(t *testing.T) {
	f := newFixture(t)
	f.ingest(t, f.agv.ID, "sku,d,c\nA,x,9\nB,y,1\nC,z,50\nD,w,0\n")
	f.setLimits(t, "A", 10, 30)
	f.setLimits(t, "B", 10, 30)
	f.setLimits(t, "C", 10, 60)
	// D sin mínimo: no entra

	uc := inventory.NewReplenishmentUseCase(f.store.StockQuery(), nil)
	list, err := uc.List(context.Background())
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].SKU)
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, 29, list[0].Sugerido)
	assert.Equal(t, "A", list[1].SKU)
	assert.Equal(t, 21, list[1].Sugerido)
}

type fakeReport struct {
	got []dto.ReplenishmentSuggestionDTO
}

func (f *fakeReport) GenerateReplenishmentPDF(_ context.Context, items []dto.ReplenishmentSuggestionDTO, _ time.Time) ([]byte, error) {
	f.got = items
	return []byte("%PDF-1.4"), nil
}

func TestReplenishment_Report(t *testing.T) {
	f := newFixture(t)
	f.ingest(t, f.agv.ID, "sku,d,c\nA,x,1\n")
	f.setLimits(t, "A", 10, 30)

	gen := &fakeReport{}
	out, err := inventory.NewReplenishmentUseCase(f.store.StockQuery(), gen).Report(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(out))
	assert.Len(t, gen.got, 1)
}

func TestReplenishment_ReportSinGenerador(t *testing.T) {
	f := newFixture(t)
	_, err := inventory.NewReplenishmentUseCase(f.store.StockQuery(), nil).Report(context.Background())
	assert.Error(t, err)
}
