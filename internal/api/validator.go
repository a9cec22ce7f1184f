package api

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type appValidator struct {
	validate *validator.Validate
}

func newValidator() *appValidator {
	v := validator.New()
	// В ошибках используем имена полей из json
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &appValidator{validate: v}
}

func (v *appValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
