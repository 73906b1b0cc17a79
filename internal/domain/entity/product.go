package entity

import "time"

// StockMaximoSentinel valor por defecto de StockMaximo para productos creados por ingesta
// (equivale a "sin máximo definido").
const StockMaximoSentinel = 999999

// AlertState estado de alerta derivado del stock total de un producto.
type AlertState string

const (
	AlertNone      AlertState = ""
	AlertAtMinimum AlertState = "at-minimum"
	AlertAtMaximum AlertState = "at-maximum"
)

// Product representa un producto identificado por su SKU (clave natural única).
// Nombre toma el SKU cuando no se informa; los umbrales sólo cambian por edición explícita.
type Product struct {
	ID                int64
	SKU               string
	Nombre            string
	Descripcion       string
	StockMinimo       int
	StockMaximo       int
	TiempoDeResurtido int // días de resurtido
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewProduct construye un producto con los valores por defecto de la ingesta.
func NewProduct(sku, descripcion string, now time.Time) *Product {
	return &Product{
		SKU:         sku,
		Nombre:      sku,
		Descripcion: descripcion,
		StockMinimo: 0,
		StockMaximo: StockMaximoSentinel,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Alert calcula el estado de alerta para el stock total dado.
// La condición de mínimo tiene prioridad sobre la de máximo.
func (p *Product) Alert(total int) AlertState {
	switch {
	case total <= p.StockMinimo:
		return AlertAtMinimum
	case total >= p.StockMaximo:
		return AlertAtMaximum
	default:
		return AlertNone
	}
}
