package config

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// A single directory or file name: no separators, not "." or "..".
		_ = v.RegisterValidation("path_segment", func(fl validator.FieldLevel) bool {
			name := fl.Field().String()
			if name == "" || name == "." || name == ".." {
				return false
			}
			return !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "\x00")
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}
