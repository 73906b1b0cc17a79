package dto

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=500"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto y cotas a Limit/Offset.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Limit > 500 {
		p.Limit = 500
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP. Error lleva el mensaje para el usuario.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// FlexNumber acepta números JSON o cadenas numéricas ("10"), como los formularios del cliente.
// Present es false si el campo no vino o vino null.
type FlexNumber struct {
	Present bool
	Raw     string
}

// Num construye un FlexNumber presente a partir de un entero.
func Num(v int64) FlexNumber {
	return FlexNumber{Present: true, Raw: strconv.FormatInt(v, 10)}
}

func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = FlexNumber{}
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	*n = FlexNumber{Present: true, Raw: strings.TrimSpace(s)}
	return nil
}

func (n FlexNumber) MarshalJSON() ([]byte, error) {
	if !n.Present {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(n.Raw)), nil
}

// Int interpreta el valor como entero; acepta "10" y "10.0" pero no "10.5".
func (n FlexNumber) Int() (int64, error) {
	f, err := strconv.ParseFloat(n.Raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q no es un número", n.Raw)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%q no es un entero", n.Raw)
	}
	return int64(f), nil
}
