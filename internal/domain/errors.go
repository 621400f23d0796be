package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrValidation        = errors.New("entrada inválida")
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrStore             = errors.New("almacenamiento no disponible")
)

// ValidationError describe qué campo de la entrada no es válido.
// errors.Is(err, ErrValidation) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "entrada inválida: " + e.Reason
	}
	return "entrada inválida: " + e.Field + " " + e.Reason
}

// Is permite comparar con ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid construye un ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
