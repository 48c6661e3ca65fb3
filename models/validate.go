package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

/*
RegisterWithValidator register with the validator this custom validation support

	@param v *validator.Validate - the validator to register against
	@return whether successful
*/
func RegisterWithValidator(v *validator.Validate) error {
	if err := v.RegisterValidation("herb_id", validateHerbID); err != nil {
		return err
	}

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return nil
}

/*
NewValidator define a validator with the custom validation support installed

	@return the validator
*/
func NewValidator() (*validator.Validate, error) {
	v := validator.New()
	if err := RegisterWithValidator(v); err != nil {
		return nil, fmt.Errorf("failed to install custom validation macros [%w]", err)
	}
	return v, nil
}

func validateHerbID(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return IsHerbID(fl.Field().String())
}

/*
ValidateStruct validate a request structure, converting the first failure into a
ValidationError.

	@param v *validator.Validate - the validator to use
	@param s interface{} - the structure to validate
	@return ValidationError if invalid
*/
func ValidateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	first := fieldErrs[0]
	switch first.Tag() {
	case "required", "min":
		return &ValidationError{
			Field: first.Field(), Message: fmt.Sprintf("%s is required", first.Field()),
		}
	case "max":
		return &ValidationError{
			Field:   first.Field(),
			Message: fmt.Sprintf("%s too long (max %s)", first.Field(), first.Param()),
		}
	default:
		return &ValidationError{
			Field: first.Field(), Message: fmt.Sprintf("invalid %s", first.Field()),
		}
	}
}
