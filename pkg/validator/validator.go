package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/shopspring/decimal"
)

// enumValue is implemented by the closed enumerations in internal/domain/enum
type enumValue interface {
	IsValid() bool
}

var validate = validator.New()

func init() {
	// Report json field names so errors match the stored document shape
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Decimals are compared as numbers by gte/lte/gt
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	validate.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		if e, ok := fl.Field().Interface().(enumValue); ok {
			return e.IsValid()
		}
		return false
	})
}

// ValidateStruct returns one FieldError per failed rule
func ValidateStruct(data interface{}) []apperror.FieldError {
	var errs []apperror.FieldError
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []apperror.FieldError{{Field: "", Message: err.Error()}}
	}
	for _, fe := range validationErrs {
		msg := fmt.Sprintf("failed on '%s'", fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("failed on '%s=%s'", fe.Tag(), fe.Param())
		}
		errs = append(errs, apperror.FieldError{
			Field:   fe.Namespace(),
			Message: msg,
		})
	}
	return errs
}

// Validate wraps ValidateStruct into a single validation AppError
func Validate(data interface{}) error {
	if errs := ValidateStruct(data); len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}
