package security

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("hex6", func(fl validator.FieldLevel) bool {
			return IsHex6(fl.Field().String())
		})

		_ = v.RegisterValidation("pathcomponent", func(fl validator.FieldLevel) bool {
			return ValidatePathComponent(fl.Field().String()) == nil
		})

		validateInst = v
	})

	return validateInst
}

// ValidateStruct runs tag-based validation on s. The returned error names
// the first failing field in lower case.
func ValidateStruct(s any) error {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		return fmt.Errorf("%s failed validation for tag '%s'", strings.ToLower(ve.StructNamespace()), ve.Tag())
	}
	return fmt.Errorf("validation failed: %w", err)
}

// IsHex6 reports whether s is exactly six hex digits with no prefix.
func IsHex6(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
