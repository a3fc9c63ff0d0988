package validator

import (
	"fmt"
	"reflect"

	"go-inventory-dashboard/internal/model"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("field '%s' failed on tag '%s'", e.FailedField, e.Tag)
}

var validate = validator.New()

func init() {
	// series_key accepts the wire name of one of the four status series
	validate.RegisterValidation("series_key", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		_, ok := model.ParseSeriesKey(fl.Field().String())
		return ok
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return []*ErrorResponse{{FailedField: "", Tag: err.Error()}}
		}
		for _, err := range validationErrors {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}

// ValidateSlice validates every element and prefixes failures with the
// element index, e.g. "[2].CategoryRecord.InStock".
func ValidateSlice[T any](items []T) []*ErrorResponse {
	var errors []*ErrorResponse
	for i := range items {
		for _, e := range ValidateStruct(&items[i]) {
			e.FailedField = fmt.Sprintf("[%d].%s", i, e.FailedField)
			errors = append(errors, e)
		}
	}
	return errors
}
