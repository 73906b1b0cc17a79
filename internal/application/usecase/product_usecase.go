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

// stockInvalidator lo cumple inventory.StockCache; evita acoplar este paquete a la caché.
type stockInvalidator interface {
	Invalidate(ctx context.Context)
}

// ProductUseCase alta explícita, consulta y edición de umbrales de productos.
// La cantidad en stock no se toca aquí: sólo cambia por ingesta.
type ProductUseCase struct {
	repo  repository.ProductRepository
	cache stockInvalidator
	now   func() time.Time
}

// NewProductUseCase construye el caso de uso. cache puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, cache stockInvalidator) *ProductUseCase {
	return &ProductUseCase{repo: repo, cache: cache, now: time.Now}
}

// Create crea un producto. Sin umbrales explícitos toma los mismos valores que la ingesta.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	if in.SKU == "" {
		return nil, domain.NewValidationError("El SKU es requerido")
	}
	existing, err := uc.repo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, domain.WrapPersistence("buscar producto", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	product := entity.NewProduct(in.SKU, strings.TrimSpace(in.Descripcion), uc.now())
	if n := strings.TrimSpace(in.Nombre); n != "" {
		product.Nombre = n
	}
	if in.StockMinimo != nil {
		product.StockMinimo = *in.StockMinimo
	}
	if in.StockMaximo != nil {
		product.StockMaximo = *in.StockMaximo
	}
	if in.TiempoDeResurtido != nil {
		product.TiempoDeResurtido = *in.TiempoDeResurtido
	}
	if err := validateLimits(product.StockMinimo, product.StockMaximo, product.TiempoDeResurtido); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, domain.WrapPersistence("crear producto", err)
	}
	uc.invalidate(ctx)
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Devuelve domain.ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.WrapPersistence("obtener producto", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// UpdateLimits valida y persiste stockMinimo, stockMaximo y (opcional) tiempoDeResurtido.
// Si la validación falla el producto no se modifica.
func (uc *ProductUseCase) UpdateLimits(ctx context.Context, in dto.UpdateLimitsRequest) (*dto.ProductResponse, error) {
	if !in.ID.Present || !in.StockMinimo.Present || !in.StockMaximo.Present {
		return nil, domain.NewValidationError("Todos los campos son requeridos")
	}
	id, errID := in.ID.Int()
	minStock, errMin := in.StockMinimo.Int()
	maxStock, errMax := in.StockMaximo.Int()
	if errID != nil || errMin != nil || errMax != nil {
		return nil, domain.NewValidationError("Los valores deben ser números válidos")
	}
	tiempo := int64(-1)
	if in.TiempoDeResurtido.Present {
		t, err := in.TiempoDeResurtido.Int()
		if err != nil {
			return nil, domain.NewValidationError("Los valores deben ser números válidos")
		}
		tiempo = t
	}
	if minStock < 0 || maxStock < 0 {
		return nil, domain.NewValidationError("Los límites de stock deben ser números positivos")
	}
	if maxStock <= minStock {
		return nil, domain.NewValidationError("El stock máximo debe ser mayor que el mínimo")
	}
	if in.TiempoDeResurtido.Present && tiempo < 0 {
		return nil, domain.NewValidationError("El tiempo de resurtido debe ser un número positivo")
	}
	if maxStock > maxThreshold || tiempo > maxThreshold {
		return nil, domain.NewValidationError("Los valores deben ser menores a %d", maxThreshold)
	}

	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.WrapPersistence("obtener producto", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	product.StockMinimo = int(minStock)
	product.StockMaximo = int(maxStock)
	if tiempo >= 0 {
		product.TiempoDeResurtido = int(tiempo)
	}
	product.UpdatedAt = uc.now()
	if err := uc.repo.UpdateLimits(ctx, product); err != nil {
		return nil, domain.WrapPersistence("actualizar límites", err)
	}
	uc.invalidate(ctx)
	return toProductResponse(product), nil
}

// maxThreshold cota de los umbrales (columna INTEGER).
const maxThreshold = 1<<31 - 1

func validateLimits(minStock, maxStock, tiempo int) error {
	if minStock < 0 || maxStock < 0 {
		return domain.NewValidationError("Los límites de stock deben ser números positivos")
	}
	if maxStock <= minStock {
		return domain.NewValidationError("El stock máximo debe ser mayor que el mínimo")
	}
	if tiempo < 0 {
		return domain.NewValidationError("El tiempo de resurtido debe ser un número positivo")
	}
	return nil
}

func (uc *ProductUseCase) invalidate(ctx context.Context) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx)
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                p.ID,
		SKU:               p.SKU,
		Nombre:            p.Nombre,
		Descripcion:       p.Descripcion,
		StockMinimo:       p.StockMinimo,
		StockMaximo:       p.StockMaximo,
		TiempoDeResurtido: p.TiempoDeResurtido,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
