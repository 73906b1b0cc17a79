package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/stock-almacenes/internal/application/dto"
	"github.com/jhoicas/stock-almacenes/internal/domain"
	"github.com/jhoicas/stock-almacenes/internal/domain/entity"
	"github.com/jhoicas/stock-almacenes/internal/domain/repository"
)

// DefaultWarehouses almacenes de la operación; el seed los crea en este orden.
var DefaultWarehouses = []dto.SeedWarehouse{
	{Codigo: "0001-AGV", Nombre: "General para Venta"},
	{Codigo: "0002-APROD", Nombre: "Producción"},
	{Codigo: "0003-AMAQU", Nombre: "Maquila"},
	{Codigo: "0004-APRES", Nombre: "Presoldado"},
	{Codigo: "0005-ABCK", Nombre: "Bracket"},
	{Codigo: "0006-AGUD", Nombre: "Guadalajara"},
	{Codigo: "0007-AGOM", Nombre: "Gómez Farías"},
	{Codigo: "0008-AMON", Nombre: "Monterrey"},
	{Codigo: "0009-AEM", Nombre: "Empaque"},
	{Codigo: "0010-ARM", Nombre: "Recepción de Mercancía"},
	{Codigo: "0020-PRES", Nombre: "Préstamos"},
}

// WarehouseUseCase consulta y alta inicial de almacenes.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// List devuelve todos los almacenes ordenados por id.
func (uc *WarehouseUseCase) List(ctx context.Context) ([]dto.WarehouseResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, domain.WrapPersistence("listar almacenes", err)
	}
	out := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		out = append(out, toWarehouseResponse(w))
	}
	return out, nil
}

// Seed crea o renombra los almacenes dados (por código). Ejecutarlo dos veces no duplica nada.
func (uc *WarehouseUseCase) Seed(ctx context.Context, in []dto.SeedWarehouse) (int, error) {
	now := time.Now()
	n := 0
	for _, s := range in {
		codigo := strings.TrimSpace(s.Codigo)
		if codigo == "" {
			return n, domain.NewValidationError("código de almacén vacío")
		}
		w := &entity.Warehouse{Codigo: codigo, Nombre: strings.TrimSpace(s.Nombre), CreatedAt: now, UpdatedAt: now}
		if err := uc.repo.UpsertByCodigo(ctx, w); err != nil {
			return n, domain.WrapPersistence("seed de almacenes", err)
		}
		n++
	}
	return n, nil
}

func toWarehouseResponse(w *entity.Warehouse) dto.WarehouseResponse {
	return dto.WarehouseResponse{ID: w.ID, Codigo: w.Codigo, Nombre: w.Nombre}
}
