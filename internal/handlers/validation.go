package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("bcryptmax", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	})
	return v
}

// ValidationError reports the first invalid field of a request body.
type ValidationError struct {
	Field string
	Rule  string
	Param string
}

func (e ValidationError) Error() string {
	switch e.Rule {
	case "required":
		return fmt.Sprintf("campo '%s' é obrigatório", e.Field)
	case "email":
		return fmt.Sprintf("campo '%s' deve ser um e-mail válido", e.Field)
	case "url":
		return fmt.Sprintf("campo '%s' deve ser uma URL válida", e.Field)
	case "min":
		return fmt.Sprintf("campo '%s' deve ter no mínimo %s caracteres", e.Field, e.Param)
	case "max":
		return fmt.Sprintf("campo '%s' deve ter no máximo %s caracteres", e.Field, e.Param)
	case "bcryptmax":
		return fmt.Sprintf("campo '%s' deve ter no máximo %d bytes", e.Field, maxPasswordBytes)
	case "oneof":
		return fmt.Sprintf("campo '%s' deve ser um de: %s", e.Field, e.Param)
	case "gt", "gte":
		return fmt.Sprintf("campo '%s' inválido", e.Field)
	default:
		return fmt.Sprintf("campo '%s' inválido (%s)", e.Field, e.Rule)
	}
}

// validateRequest runs struct validation and converts the first failure into
// a ValidationError.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := strings.SplitN(fe.Namespace(), ".", 2)
		name := fe.Field()
		if len(field) == 2 {
			name = field[1]
		}
		return ValidationError{Field: name, Rule: fe.Tag(), Param: fe.Param()}
	}
	return err
}
