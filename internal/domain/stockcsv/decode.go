package stockcsv

import (
	"bytes"
	"fmt"
	"iter"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode convierte el contenido crudo del archivo a texto.
// Si los bytes son UTF-8 válido se usan tal cual; si no, se decodifican como Windows-1252
// (lo que los navegadores entienden por "latin1"), así los acentos de los exportadores
// de Windows nunca producen errores de codificación.
func Decode(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("decodificar latin1: %w", err)
	}
	return string(out), nil
}

// nonEmptyLines recorre las líneas sin el salto final (\n o \r\n), omitiendo las vacías.
func nonEmptyLines(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for line := range strings.Lines(text) {
			line = strings.TrimRight(line, "\r\n")
			if strings.TrimSpace(line) == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}

func firstLine(text string) (string, bool) {
	for line := range nonEmptyLines(text) {
		return line, true
	}
	return "", false
}
