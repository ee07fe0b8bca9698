// Package validation valida DTOs de entrada con go-playground/validator y traduce cada
// error de campo al formato "El campo '<json>' <mensaje>".
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Get devuelve el validador compartido. Los nombres de campo son los del tag json.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Struct valida s y devuelve un mensaje por cada campo inválido, o nil si es válido.
func Struct(s interface{}) []string {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldMessage(fe.Field(), fe.Tag(), fe.Param()))
	}
	return out
}

// FieldMessage arma el mensaje de un campo a partir de la regla que falló.
func FieldMessage(field, tag, param string) string {
	return fmt.Sprintf("El campo '%s' %s", field, describe(tag, param))
}

func describe(tag, param string) string {
	switch tag {
	case "required":
		return "no puede estar vacío"
	case "email":
		return "no es una dirección de correo bien formada"
	case "min":
		return fmt.Sprintf("debe tener al menos %s caracteres", param)
	case "max":
		return fmt.Sprintf("debe tener como máximo %s caracteres", param)
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual que %s", param)
	case "lte":
		return fmt.Sprintf("debe ser menor o igual que %s", param)
	case "datetime":
		return fmt.Sprintf("debe tener el formato %s", param)
	default:
		return fmt.Sprintf("no cumple la regla '%s'", tag)
	}
}
