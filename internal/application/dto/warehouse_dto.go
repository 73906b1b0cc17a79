package dto

// WarehouseResponse salida de un almacén.
type WarehouseResponse struct {
	ID     int64  `json:"id"`
	Codigo string `json:"codigo"`
	Nombre string `json:"nombre"`
}

// SeedWarehouse almacén a crear por el seed.
type SeedWarehouse struct {
	Codigo string `json:"codigo"`
	Nombre string `json:"nombre"`
}
