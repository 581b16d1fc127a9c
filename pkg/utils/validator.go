package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate      = newValidator()
	cardExpiryExp = regexp.MustCompile(`^\d{2}/\d{2}$`)
)

func newValidator() *validator.Validate {
	v := validator.New()

	// report fields by their json names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("cardnumber", func(fl validator.FieldLevel) bool {
		return IsCardNumber(fl.Field().String())
	})
	v.RegisterValidation("cardexpiry", func(fl validator.FieldLevel) bool {
		return IsCardExpiry(fl.Field().String())
	})
	v.RegisterValidation("showdate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("showtime", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("15:04", fl.Field().String())
		return err == nil
	})

	return v
}

// IsCardNumber accepts exactly 16 digits once spaces and dashes are removed.
func IsCardNumber(value string) bool {
	digits := DigitsOnly(value)
	if len(digits) != 16 {
		return false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// IsCardExpiry accepts MM/YY with a month between 01 and 12.
func IsCardExpiry(value string) bool {
	if !cardExpiryExp.MatchString(value) {
		return false
	}
	month, err := strconv.Atoi(value[:2])
	if err != nil {
		return false
	}
	return month >= 1 && month <= 12
}

func ValidateStruct(data any) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fe := range validationErrors {
			errs[fe.Field()] = getErrorMessage(fe)
		}
	}

	return errs
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Minimum is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum is %s", err.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("Must be at least %s", err.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", err.Param())
	case "numeric":
		return "Must be numeric"
	case "number":
		return "Must contain digits only"
	case "eqfield":
		return "Does not match"
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	case "uuid":
		return "Must be a valid UUID"
	case "cardnumber":
		return "Card number must be 16 digits"
	case "cardexpiry":
		return "Expiry must be MM/YY"
	case "showdate":
		return "Date must be YYYY-MM-DD"
	case "showtime":
		return "Time must be HH:mm"
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

// formats validation errors map into single string
func FormatValidationErrors(errs map[string]string) string {
	var msgs []string
	for field, msg := range errs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// DigitsOnly strips the spaces and dashes people type into card fields.
func DigitsOnly(value string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(value)
}
