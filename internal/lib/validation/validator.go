package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"registro-os/internal/lib/apperr"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Struct valida req e devolve um *apperr.Error de validação com os campos inválidos.
func Struct(req interface{}) error {
	err := instance().Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Internal(err)
	}

	fields := make([]map[string]interface{}, 0, len(verrs))
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := message(fe)
		fields = append(fields, map[string]interface{}{
			"field":   fe.Field(),
			"tag":     fe.Tag(),
			"message": msg,
		})
		messages = append(messages, fmt.Sprintf("%s: %s", fe.Field(), msg))
	}

	return apperr.Validation(strings.Join(messages, "; "), map[string]interface{}{"fields": fields})
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "max":
		return "deve ser no máximo " + fe.Param()
	case "min":
		return "deve ser no mínimo " + fe.Param()
	case "gte":
		return "deve ser maior ou igual a " + fe.Param()
	case "lte":
		return "deve ser menor ou igual a " + fe.Param()
	case "email":
		return "e-mail inválido"
	case "oneof":
		return "deve ser um de: " + fe.Param()
	case "gtefield":
		return "deve ser posterior a " + fe.Param()
	default:
		return "valor inválido"
	}
}
