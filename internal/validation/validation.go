package validation

import (
	"errors"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/matheusmosca/store-backend/internal/apperr"
)

var alnumSpace = regexp.MustCompile(`^[a-zA-Z0-9\s]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("alnumspace", func(fl validator.FieldLevel) bool {
		return alnumSpace.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("money", isMoney)
	// decimal.Decimal é validado como número (gte, lte, gt...)
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// MoneyPlaces é a escala das colunas de valores monetários
const MoneyPlaces = 2

// isMoney aceita valores com no máximo MoneyPlaces casas decimais.
// decimal.Decimal chega aqui já convertido para float64 pela custom type func.
func isMoney(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		d := decimal.NewFromFloat(field.Float())
		return d.Equal(d.Round(MoneyPlaces))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.Equal(d.Round(MoneyPlaces))
	}
	return false
}

// Messages associa "Campo.tag" à mensagem exibida ao cliente.
// Para campos de slices aninhados usa-se o nome da struct interna, ex: "Quantity.gt".
type Messages map[string]string

// Struct valida v contra as tags `validate` e devolve um erro de validação
// com uma mensagem por regra violada. Regras sem mensagem cadastrada usam
// uma mensagem genérica com o nome do campo.
func Struct(v any, messages Messages) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return apperr.Validation(err.Error())
	}

	out := make([]string, 0, len(fieldErrors))
	seen := make(map[string]bool, len(fieldErrors))
	for _, fe := range fieldErrors {
		msg, ok := messages[fe.StructField()+"."+fe.Tag()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		if seen[msg] {
			continue
		}
		seen[msg] = true
		out = append(out, msg)
	}

	return apperr.Validation(out...)
}
