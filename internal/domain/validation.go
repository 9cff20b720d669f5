package domain

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("luhn", func(fl validator.FieldLevel) bool {
			return LuhnValid(fl.Field().String())
		})
		_ = v.RegisterValidation("csc", func(fl validator.FieldLevel) bool {
			return ValidCSC(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// validateStruct runs tag validation and converts the first failure into a DomainError.
func validateStruct(s any) error {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return NewInvalidFieldError("request", err)
	}
	fe := fieldErrs[0]
	if fe.Tag() == "required" {
		return NewMissingRequiredFieldError(fe.Field())
	}
	switch fe.Field() {
	case "number":
		return NewInvalidCardNumberError()
	case "csc":
		return NewInvalidCSCError()
	case "expiry_year", "expiry_month":
		return NewInvalidExpiryError("malformed date")
	case "phone_number":
		return NewInvalidPhoneError()
	}
	return NewInvalidFieldError(fe.Field(), err)
}

// LuhnValid reports whether number passes the mod-10 checksum.
func LuhnValid(number string) bool {
	if number == "" {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// ValidCSC accepts three or four digits.
func ValidCSC(csc string) bool {
	if len(csc) < 3 || len(csc) > 4 {
		return false
	}
	for i := 0; i < len(csc); i++ {
		if csc[i] < '0' || csc[i] > '9' {
			return false
		}
	}
	return true
}

// validateExpiry accepts a card valid through the end of its expiry month.
func validateExpiry(year, month string, now time.Time) error {
	y, err := strconv.Atoi(year)
	if err != nil {
		return NewInvalidExpiryError("year must be digits")
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return NewInvalidExpiryError("month must be 01..12")
	}
	now = now.UTC()
	firstOfNext := time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	if !now.Before(firstOfNext) {
		return NewInvalidExpiryError("card has expired")
	}
	if y > now.Year()+20 {
		return NewInvalidExpiryError("year is too far in the future")
	}
	return nil
}
