package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EchoValidator plugs struct-tag validation into echo.Context.Validate.
type EchoValidator struct {
	v *validator.Validate
}

func NewEchoValidator() *EchoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &EchoValidator{v: v}
}

func (ev *EchoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		return fromValidator(err)
	}
	return nil
}
