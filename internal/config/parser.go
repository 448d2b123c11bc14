package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	gterrors "github.com/alexisbeaulieu97/gittemplate/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Load reads settings from path on top of Default() and validates the result.
func Load(path string) (Settings, error) {
	settings := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, gterrors.NewConfigError(path, "", err.Error(), err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		field := ""
		if line := extractLine(err); line > 0 {
			field = fmt.Sprintf("line %d", line)
		}
		return settings, gterrors.NewConfigError(path, field, err.Error(), err)
	}

	if err := Validate(settings); err != nil {
		var cfgErr *gterrors.ConfigError
		if errors.As(err, &cfgErr) {
			cfgErr.Path = path
		}
		return settings, err
	}

	return settings, nil
}

// LoadOptional behaves like Load but returns Default() when path does not exist.
func LoadOptional(path string) (Settings, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks struct tags on the supplied settings.
func Validate(settings Settings) error {
	if err := validatorInstance().Struct(settings); err != nil {
		return convertValidationError(err)
	}
	return nil
}

func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return gterrors.NewConfigError("", field, msg, err)
	}

	return gterrors.NewConfigError("", "", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	lowered := make([]string, 0, len(parts))
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}

	return line
}
