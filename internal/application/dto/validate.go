package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/linea-stock-api/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate aplica las reglas `validate` del struct y traduce el primer error a domain.ValidationError.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.Invalid(fieldPath(fe), describe(fe))
	}
	return domain.Invalid("", err.Error())
}

// fieldPath quita el nombre del struct raíz: "AddMovementRequest.Quantity" -> "Quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "gt":
		return "debe ser mayor que " + fe.Param()
	case "min":
		return "debe ser al menos " + fe.Param()
	case "datetime":
		return "debe tener formato " + fe.Param()
	default:
		return "no cumple " + fe.Tag()
	}
}
