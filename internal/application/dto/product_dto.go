package dto

import "time"

// CreateProductRequest entrada para crear un producto explícitamente.
type CreateProductRequest struct {
	SKU               string `json:"sku" validate:"required,min=1,max=100"`
	Nombre            string `json:"nombre"`
	Descripcion       string `json:"descripcion"`
	StockMinimo       *int   `json:"stockMinimo"`
	StockMaximo       *int   `json:"stockMaximo"`
	TiempoDeResurtido *int   `json:"tiempoDeResurtido"`
}

// UpdateLimitsRequest body de la actualización de umbrales. ID sólo se usa en la ruta
// heredada POST /api/update-stock-limits; en PUT /api/products/:id viene en la URL.
type UpdateLimitsRequest struct {
	ID                FlexNumber `json:"id"`
	StockMinimo       FlexNumber `json:"stockMinimo"`
	StockMaximo       FlexNumber `json:"stockMaximo"`
	TiempoDeResurtido FlexNumber `json:"tiempoDeResurtido"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                int64     `json:"id"`
	SKU               string    `json:"sku"`
	Nombre            string    `json:"nombre"`
	Descripcion       string    `json:"descripcion"`
	StockMinimo       int       `json:"stockMinimo"`
	StockMaximo       int       `json:"stockMaximo"`
	TiempoDeResurtido int       `json:"tiempoDeResurtido"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
