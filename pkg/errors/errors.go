package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"
)

// Kind classifies an error for reporting without exposing its concrete type.
type Kind string

const (
	KindInvalidPath        Kind = "invalid_path"
	KindTemplateValidation Kind = "template_validation"
	KindFolderAnalysis     Kind = "folder_analysis"
	KindTemplateProcessing Kind = "template_processing"
	KindConfiguration      Kind = "configuration"
	KindUnknown            Kind = "unknown"
)

// InvalidPathError reports a missing path or a path of the wrong type.
type InvalidPathError struct {
	Path   string
	Reason string
}

// NewInvalidPathError constructs an InvalidPathError.
func NewInvalidPathError(path, reason string) error {
	return &InvalidPathError{Path: path, Reason: reason}
}

func (e *InvalidPathError) Error() string {
	if e == nil {
		return ""
	}
	if e.Reason != "" {
		return fmt.Sprintf("invalid or inaccessible path: %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("invalid or inaccessible path: %s", e.Path)
}

// Kind reports KindInvalidPath.
func (e *InvalidPathError) Kind() Kind { return KindInvalidPath }

// TemplateValidationError lists the problems found in a template configuration bundle.
type TemplateValidationError struct {
	Path   string
	Issues []string
}

// NewTemplateValidationError constructs a TemplateValidationError.
func NewTemplateValidationError(path string, issues []string) error {
	return &TemplateValidationError{Path: path, Issues: append([]string(nil), issues...)}
}

func (e *TemplateValidationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("template validation failed for %s: %s", e.Path, strings.Join(e.Issues, ", "))
}

// Kind reports KindTemplateValidation.
func (e *TemplateValidationError) Kind() Kind { return KindTemplateValidation }

// FolderAnalysisError represents an I/O failure while snapshotting a folder.
// A folder that simply does not exist is not an error.
type FolderAnalysisError struct {
	Path   string
	Reason string
	Err    error
}

// NewFolderAnalysisError constructs a FolderAnalysisError.
func NewFolderAnalysisError(path, reason string, err error) error {
	if reason == "" && err != nil {
		reason = err.Error()
	}
	return &FolderAnalysisError{Path: path, Reason: reason, Err: err}
}

func (e *FolderAnalysisError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("failed to analyze folder %s: %s", e.Path, e.Reason)
}

// Unwrap exposes the underlying error.
func (e *FolderAnalysisError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Kind reports KindFolderAnalysis.
func (e *FolderAnalysisError) Kind() Kind { return KindFolderAnalysis }

// TemplateProcessingError wraps a failure during apply, compare or cleanup update.
type TemplateProcessingError struct {
	Operation string
	Err       error
}

// NewTemplateProcessingError constructs a TemplateProcessingError for the named operation.
func NewTemplateProcessingError(operation string, err error) error {
	return &TemplateProcessingError{Operation: operation, Err: err}
}

func (e *TemplateProcessingError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("template processing error during %s: %v", e.Operation, e.Err)
}

// Unwrap exposes the root error.
func (e *TemplateProcessingError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Kind reports KindTemplateProcessing.
func (e *TemplateProcessingError) Kind() Kind { return KindTemplateProcessing }

// ConfigError reports an unreadable or invalid settings file.
type ConfigError struct {
	Path    string
	Field   string
	Message string
	Err     error
}

// NewConfigError constructs a ConfigError.
func NewConfigError(path, field, message string, err error) error {
	return &ConfigError{Path: path, Field: field, Message: message, Err: err}
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	location := e.Path
	if e.Field != "" {
		if location != "" {
			location += ": "
		}
		location += e.Field
	}
	if location == "" {
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
	return fmt.Sprintf("configuration error: %s: %s", location, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Kind reports KindConfiguration.
func (e *ConfigError) Kind() Kind { return KindConfiguration }

type kinded interface {
	Kind() Kind
}

// KindOf returns the kind of the outermost classified error in err's chain.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var k kinded
	if stdErrors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}
