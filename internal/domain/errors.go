package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnknownWarehouse = errors.New("almacén desconocido")
	ErrEmptyFile        = errors.New("el archivo está vacío")
	ErrUnparsableFormat = errors.New("formato de archivo no reconocido")
	ErrPersistence      = errors.New("error de persistencia")
)

// ValidationError error de validación de una petición; el mensaje se devuelve tal cual al cliente.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError construye un ValidationError.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// WarehouseRef par id/código de un almacén, usado para orientar al cliente.
type WarehouseRef struct {
	ID     int64  `json:"id"`
	Codigo string `json:"codigo"`
	Nombre string `json:"nombre"`
}

// UnknownWarehouseError el almacén solicitado no existe. Lleva la lista de almacenes válidos.
type UnknownWarehouseError struct {
	Requested string
	Available []WarehouseRef
}

func (e *UnknownWarehouseError) Error() string {
	parts := make([]string, 0, len(e.Available))
	for _, w := range e.Available {
		parts = append(parts, fmt.Sprintf("%d: %s - %s", w.ID, w.Codigo, w.Nombre))
	}
	return fmt.Sprintf("El almacén %s no existe. Almacenes disponibles: %s", e.Requested, strings.Join(parts, ", "))
}

func (e *UnknownWarehouseError) Is(target error) bool { return target == ErrUnknownWarehouse }

// PersistenceError envuelve cualquier fallo inesperado del almacenamiento.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// WrapPersistence envuelve err como PersistenceError salvo que ya sea un error de dominio conocido.
func WrapPersistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	for _, known := range []error{ErrNotFound, ErrInvalidInput, ErrDuplicate, ErrUnknownWarehouse, ErrEmptyFile, ErrUnparsableFormat} {
		if errors.Is(err, known) {
			return err
		}
	}
	return &PersistenceError{Op: op, Err: err}
}
