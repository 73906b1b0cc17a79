package inventory

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jhoicas/stock-almacenes/internal/application/dto"
	"github.com/jhoicas/stock-almacenes/internal/domain"
	"github.com/jhoicas/stock-almacenes/internal/domain/entity"
	"github.com/jhoicas/stock-almacenes/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de resurtido: productos cuyo stock total está en o bajo su mínimo.
type ReplenishmentUseCase struct {
	queryRepo repository.StockQueryRepository
	reportGen ReplenishmentReportGenerator
	now       func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso. reportGen puede ser nil si no se exporta PDF.
func NewReplenishmentUseCase(
	queryRepo repository.StockQueryRepository,
	reportGen ReplenishmentReportGenerator,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		queryRepo: queryRepo,
		reportGen: reportGen,
		now:       time.Now,
	}
}

// List devuelve la cantidad sugerida de pedido por producto y un ranking de prioridad:
// mayor déficit (mínimo - total) primero, luego mayor tiempo de resurtido.
func (uc *ReplenishmentUseCase) List(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	rawItems, err := uc.queryRepo.ProductsAtMinimum(ctx)
	if err != nil {
		return nil, domain.WrapPersistence("productos en mínimo", err)
	}
	if len(rawItems) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(rawItems))
	for _, item := range rawItems {
		p := item.Product
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:         p.ID,
			SKU:               p.SKU,
			Descripcion:       p.Descripcion,
			Total:             item.Total,
			StockMinimo:       p.StockMinimo,
			StockMaximo:       p.StockMaximo,
			Sugerido:          SuggestedQuantity(p, item.Total),
			TiempoDeResurtido: p.TiempoDeResurtido,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		da, db := a.StockMinimo-a.Total, b.StockMinimo-b.Total
		if da != db {
			return da > db
		}
		if a.TiempoDeResurtido != b.TiempoDeResurtido {
			return a.TiempoDeResurtido > b.TiempoDeResurtido
		}
		return a.ProductID < b.ProductID
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

// Report genera el PDF de la lista de resurtido.
func (uc *ReplenishmentUseCase) Report(ctx context.Context) ([]byte, error) {
	if uc.reportGen == nil {
		return nil, errors.New("generador de reportes no configurado")
	}
	items, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	return uc.reportGen.GenerateReplenishmentPDF(ctx, items, uc.now())
}

// SuggestedQuantity cantidad a pedir para llegar al máximo. Si el máximo no está definido
// (valor centinela) se apunta al doble del mínimo. Nunca negativa.
func SuggestedQuantity(p *entity.Product, total int) int {
	target := p.StockMaximo
	if target >= entity.StockMaximoSentinel {
		target = 2 * p.StockMinimo
	}
	if s := target - total; s > 0 {
		return s
	}
	return 0
}
