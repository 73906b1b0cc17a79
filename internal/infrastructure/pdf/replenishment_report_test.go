package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-almacenes/internal/application/dto"
)

func TestFormatQty(t *testing.T) {
	assert.Equal(t, "0", formatQty(0))
	assert.Equal(t, "999", formatQty(999))
	assert.Equal(t, "25,000", formatQty(25000))
	assert.Equal(t, "1,000,000", formatQty(1000000))
	assert.Equal(t, "-1,500", formatQty(-1500))
}

func TestGenerateReplenishmentPDF(t *testing.T) {
	items := []dto.ReplenishmentSuggestionDTO{
		{ProductID: 1, SKU: "A-1", Descripcion: "Tornillo", Total: 0, StockMinimo: 10, StockMaximo: 999999, Sugerido: 20, Priority: 1},
		{ProductID: 2, SKU: "A-2", Descripcion: "Tuerca", Total: 3, StockMinimo: 5, StockMaximo: 50, Sugerido: 47, Priority: 2},
	}
	out, err := NewMarotoReportGenerator("Stock").GenerateReplenishmentPDF(context.Background(), items, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
