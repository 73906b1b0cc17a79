package entity

import "time"

// Warehouse representa un almacén. Codigo es el identificador externo que aparece en los
// archivos exportados por el proveedor; se crean por seed, nunca por ingesta.
type Warehouse struct {
	ID        int64
	Codigo    string
	Nombre    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
