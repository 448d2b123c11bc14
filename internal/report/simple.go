package report

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alexisbeaulieu97/gittemplate/internal/config"
	gterrors "github.com/alexisbeaulieu97/gittemplate/pkg/errors"
)

// SuccessResult is a plain confirmation with optional key/value details.
type SuccessResult struct {
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (*SuccessResult) sealed() {}

// Succeeded is always true.
func (r *SuccessResult) Succeeded() bool { return true }

// Render formats the confirmation.
func (r *SuccessResult) Render(format string) (string, error) {
	if err := checkFormat(format); err != nil {
		return "", err
	}
	if format == config.FormatJSON {
		return renderJSON(struct {
			Success bool `json:"success"`
			*SuccessResult
		}{true, r})
	}

	p := &page{}
	p.add("%s %s", indicator(true), r.Message)
	if format == config.FormatDetailed {
		for _, key := range sortedKeys(r.Details) {
			p.add("  %s: %v", key, r.Details[key])
		}
	}
	return p.String(), nil
}

// ErrorResult describes a failed command.
type ErrorResult struct {
	Message string   `json:"error"`
	Kind    string   `json:"error_type"`
	Details []string `json:"details,omitempty"`
}

// NewError classifies err into an ErrorResult.
func NewError(err error) *ErrorResult {
	if err == nil {
		return &ErrorResult{Message: "unknown error", Kind: string(gterrors.KindUnknown)}
	}
	r := &ErrorResult{Message: err.Error(), Kind: string(gterrors.KindOf(err))}

	var validation *gterrors.TemplateValidationError
	if errors.As(err, &validation) {
		r.Details = append(r.Details, validation.Issues...)
	}
	return r
}

func (*ErrorResult) sealed() {}

// Succeeded is always false.
func (r *ErrorResult) Succeeded() bool { return false }

// Render formats the error.
func (r *ErrorResult) Render(format string) (string, error) {
	if err := checkFormat(format); err != nil {
		return "", err
	}
	if format == config.FormatJSON {
		return renderJSON(struct {
			Success bool `json:"success"`
			*ErrorResult
		}{false, r})
	}

	p := &page{}
	p.add("%s Error: %s", indicator(false), r.Message)
	if format == config.FormatDetailed {
		if r.Kind != "" {
			p.add("  %s", mutedStyle.Render(fmt.Sprintf("type: %s", r.Kind)))
		}
		for _, d := range r.Details {
			p.add("  - %s", d)
		}
	}
	return p.String(), nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
