package dto

// IngestResult resumen de la ingesta de un archivo.
type IngestResult struct {
	RunID            string `json:"runId"`
	AlmacenID        int64  `json:"almacenId"`
	Codigo           string `json:"codigo"`
	Formato          string `json:"formato"`
	Filas            int    `json:"filas"`
	UpdatedProducts  int    `json:"updatedProducts"`
	UpdatedInventory int    `json:"updatedInventory"`
	Message          string `json:"message"`
	Success          bool   `json:"success"`
}

// StockPageRequest página de la consulta de stock.
type StockPageRequest struct {
	PageRequest
	Search string `query:"search"`
}

// WarehouseColumn columna de almacén en la vista pivoteada.
type WarehouseColumn struct {
	AlmacenID int64  `json:"almacenId"`
	Codigo    string `json:"codigo"`
	Nombre    string `json:"nombre"`
}

// WarehouseQuantity cantidad de un producto en un almacén (0 si no hay fila).
type WarehouseQuantity struct {
	AlmacenID int64  `json:"almacenId"`
	Codigo    string `json:"codigo"`
	Cantidad  int    `json:"cantidad"`
}

// StockItem producto con su desglose por almacén en el orden de Warehouses.
type StockItem struct {
	ID                int64               `json:"id"`
	SKU               string              `json:"sku"`
	Nombre            string              `json:"nombre"`
	Descripcion       string              `json:"descripcion"`
	StockMinimo       int                 `json:"stockMinimo"`
	StockMaximo       int                 `json:"stockMaximo"`
	TiempoDeResurtido int                 `json:"tiempoDeResurtido"`
	Almacenes         []WarehouseQuantity `json:"almacenes"`
	Total             int                 `json:"total"`
	Alerta            string              `json:"alerta"`
}

// StockPageResponse respuesta de GET /api/stock. HasMore = offset+limit < TotalCount.
type StockPageResponse struct {
	Items      []StockItem       `json:"items"`
	Warehouses []WarehouseColumn `json:"warehouses"`
	HasMore    bool              `json:"hasMore"`
	Total      int               `json:"total"`
	Page       PageRequest       `json:"page"`
}

// ReplenishmentSuggestionDTO producto en o bajo su mínimo con la cantidad sugerida de pedido.
type ReplenishmentSuggestionDTO struct {
	ProductID         int64  `json:"productId"`
	SKU               string `json:"sku"`
	Descripcion       string `json:"descripcion"`
	Total             int    `json:"total"`
	StockMinimo       int    `json:"stockMinimo"`
	StockMaximo       int    `json:"stockMaximo"`
	Sugerido          int    `json:"sugerido"`          // hasta StockMaximo (o 2×mínimo si no hay máximo)
	TiempoDeResurtido int    `json:"tiempoDeResurtido"` // días
	Priority          int    `json:"priority"`          // 1 = más urgente
}
