package stockcsv

import (
	"fmt"
	"strings"

	"github.com/jhoicas/stock-almacenes/internal/domain"
)

// Format formato de exportación reconocido.
type Format int

const (
	FormatPlain Format = iota + 1
	FormatValuation
)

func (f Format) String() string {
	switch f {
	case FormatPlain:
		return "plain"
	case FormatValuation:
		return "valuacion"
	default:
		return "desconocido"
	}
}

// valuationToken marca el encabezado "Valuación de Inventarios" con o sin acento.
const valuationToken = "Valuaci"

// Detect clasifica el texto decodificado según su primera línea no vacía.
func Detect(text string) (Format, error) {
	first, ok := firstLine(text)
	if !ok {
		return 0, domain.ErrEmptyFile
	}
	if strings.ContainsRune(text, 0) {
		return 0, fmt.Errorf("%w: contenido binario", domain.ErrUnparsableFormat)
	}
	if strings.Contains(first, valuationToken) {
		return FormatValuation, nil
	}
	if !strings.Contains(first, ",") {
		return 0, fmt.Errorf("%w: el encabezado no está separado por comas", domain.ErrUnparsableFormat)
	}
	return FormatPlain, nil
}

// DetectWarehouseCode extrae el código de almacén del encabezado de un reporte de valuación:
//
//	"Valuación de Inventarios","0001-AGV",...
//
// Devuelve false si el texto no es de ese formato o el código viene vacío.
func DetectWarehouseCode(text string) (string, bool) {
	first, ok := firstLine(text)
	if !ok {
		return "", false
	}
	cols := splitUnquoted(first)
	if len(cols) < 2 || !strings.Contains(cols[0], valuationToken) || cols[1] == "" {
		return "", false
	}
	return cols[1], true
}
