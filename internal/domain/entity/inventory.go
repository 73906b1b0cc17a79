package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory cantidad actual de un producto en un almacén. A lo sumo una fila por par
// (ProductID, WarehouseID); Cantidad es siempre el conteo absoluto del último archivo.
type Inventory struct {
	ProductID   int64
	WarehouseID int64
	Cantidad    int
	// Reportada es el valor tal como vino en el archivo (puede traer decimales).
	Reportada decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
