package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-almacenes/internal/domain/entity"
)

func TestProductAlert(t *testing.T) {
	p := &entity.Product{StockMinimo: 10, StockMaximo: 100}

	assert.Equal(t, entity.AlertAtMinimum, p.Alert(5))
	assert.Equal(t, entity.AlertAtMinimum, p.Alert(10))
	assert.Equal(t, entity.AlertNone, p.Alert(50))
	assert.Equal(t, entity.AlertAtMaximum, p.Alert(100))
	assert.Equal(t, entity.AlertAtMaximum, p.Alert(150))
}

func TestProductAlert_MinimoTienePrioridad(t *testing.T) {
	// umbrales degenerados: ambos se cumplen, gana el mínimo
	p := &entity.Product{StockMinimo: 10, StockMaximo: 5}
	assert.Equal(t, entity.AlertAtMinimum, p.Alert(7))
}

func TestNewProduct_Defaults(t *testing.T) {
	now := time.Now()
	p := entity.NewProduct("KIT90-079", "", now)

	assert.Equal(t, "KIT90-079", p.Nombre, "el nombre toma el SKU por defecto")
	assert.Equal(t, 0, p.StockMinimo)
	assert.Equal(t, entity.StockMaximoSentinel, p.StockMaximo)
	assert.Equal(t, entity.AlertAtMinimum, p.Alert(0))
}
