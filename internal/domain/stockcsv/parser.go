package stockcsv

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-almacenes/internal/domain"
)

// Record fila normalizada de un archivo de conteo.
type Record struct {
	SKU         string
	Description string
	Quantity    int
	// Reported es la cantidad tal como venía en el archivo, antes de redondear, acotada a
	// NUMERIC(18,4).
	Reported decimal.Decimal
}

// Parser produce la secuencia de registros de un formato concreto. Los renglones que no son
// datos se descartan en silencio; nunca devuelve error por fila.
type Parser interface {
	Records(text string) iter.Seq[Record]
}

// ParserFor devuelve el parser del formato indicado.
func ParserFor(f Format) (Parser, error) {
	switch f {
	case FormatPlain:
		return PlainParser{}, nil
	case FormatValuation:
		return ValuationParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnparsableFormat, f)
	}
}

// Parse detecta el formato del texto y devuelve sus registros.
func Parse(text string) (Format, iter.Seq[Record], error) {
	f, err := Detect(text)
	if err != nil {
		return 0, nil, err
	}
	p, err := ParserFor(f)
	if err != nil {
		return 0, nil, err
	}
	return f, p.Records(text), nil
}

// PlainParser formato "sku,descripcion,stock" con una línea de encabezado.
type PlainParser struct{}

func (PlainParser) Records(text string) iter.Seq[Record] {
	return records(text, 1, parsePlainLine)
}

func parsePlainLine(line string) (Record, bool) {
	fields := strings.Split(line, ",")
	if len(fields) != 3 {
		return Record{}, false
	}
	sku := strings.TrimSpace(fields[0])
	if sku == "" {
		return Record{}, false
	}
	qty, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		qty = 0
	}
	return Record{
		SKU:         sku,
		Description: strings.TrimSpace(fields[1]),
		Quantity:    clampQuantity(int64(qty)),
		Reported:    boundReported(decimal.NewFromInt(int64(qty)), float64(qty)),
	}, true
}

// ValuationParser reporte "Valuación de Inventarios" con dos líneas de encabezado.
type ValuationParser struct{}

func (ValuationParser) Records(text string) iter.Seq[Record] {
	return records(text, 2, parseValuationLine)
}

var weekdays = []string{
	"Lunes", "Martes", "Miércoles", "Miercoles", "Jueves", "Viernes", "Sábado", "Sabado", "Domingo",
}

// rejectedTokens aparecen en totales y encabezados que el reporte repite a mitad de archivo.
var rejectedTokens = []string{"Total", "Artículo", valuationToken, "Página"}

func parseValuationLine(line string) (Record, bool) {
	if !strings.Contains(line, ",") {
		return Record{}, false
	}
	cols := splitUnquoted(line)
	sku := cols[0]
	if isNoiseSKU(sku) {
		return Record{}, false
	}
	rec := Record{SKU: sku}
	if len(cols) > 1 {
		rec.Description = cols[1]
	}
	// la cantidad viene en la columna 4 para unos renglones y en la 3 para otros
	raw := ""
	if len(cols) > 3 && cols[3] != "" {
		raw = cols[3]
	} else if len(cols) > 2 {
		raw = cols[2]
	}
	rec.Reported, rec.Quantity = parseQuantity(raw)
	return rec, true
}

func isNoiseSKU(sku string) bool {
	if sku == "" {
		return true
	}
	for _, tok := range rejectedTokens {
		if strings.Contains(sku, tok) {
			return true
		}
	}
	for _, day := range weekdays {
		if strings.Contains(sku, day) {
			return true
		}
	}
	return false
}

// reportedScale y maxReported acotan Reported al rango de la columna NUMERIC(18,4).
const reportedScale = 4

var maxReported = decimal.RequireFromString("99999999999999.9999")

// parseQuantity interpreta un valor decimal y lo redondea al entero más cercano
// (mitades hacia arriba). Vacío o ilegible cuenta como 0.
//
// decimal sólo valida la sintaxis; el redondeo se hace sobre float64 porque operar un
// Decimal con exponentes como 1e200000000 materializa enteros gigantes.
func parseQuantity(raw string) (decimal.Decimal, int) {
	if raw == "" {
		return decimal.Zero, 0
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return decimal.Zero, 0
	}
	return boundReported(d, f), roundQuantity(f)
}

func roundQuantity(f float64) int {
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	}
	return clampQuantity(int64(math.Floor(f + 0.5)))
}

func boundReported(d decimal.Decimal, f float64) decimal.Decimal {
	switch {
	case math.IsNaN(f):
		return decimal.Zero
	case f >= 1e14:
		return maxReported
	case f <= -1e14:
		return maxReported.Neg()
	case d.Exponent() >= -reportedScale:
		return d
	}
	return decimal.NewFromFloat(f).Round(reportedScale)
}

// clampQuantity la cantidad en almacén nunca es negativa y cabe en un INTEGER de Postgres.
func clampQuantity(q int64) int {
	if q < 0 {
		return 0
	}
	if q > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(q)
}

// splitUnquoted separa por coma, quita todas las comillas dobles y recorta espacios.
func splitUnquoted(line string) []string {
	cols := strings.Split(line, ",")
	for i, c := range cols {
		cols[i] = strings.TrimSpace(strings.ReplaceAll(c, `"`, ""))
	}
	return cols
}

func records(text string, headerLines int, parse func(string) (Record, bool)) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		n := 0
		for line := range nonEmptyLines(text) {
			n++
			if n <= headerLines {
				continue
			}
			rec, ok := parse(line)
			if !ok {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}
