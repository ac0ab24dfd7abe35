package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrValidation    = errors.New("entrada inválida")
	ErrNegativeScan  = errors.New("la cantidad escaneada no puede quedar negativa")
	ErrStorage       = errors.New("fallo de persistencia")
	ErrStageFailed   = errors.New("etapa del pipeline fallida")
	ErrNoCompletion  = errors.New("no se encontró confirmación de finalización")
	ErrNothingToUndo = errors.New("no hay escaneo pendiente para deshacer")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")
)

// ValidationError describe qué campo se rechazó. errors.Is(err, ErrValidation) es true.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError construye un ValidationError.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
