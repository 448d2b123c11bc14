package model

// TemplateConfiguration describes one template configuration directory on disk.
type TemplateConfiguration struct {
	Path               string `json:"path"`
	HasEntryScript     bool   `json:"has_entry_script"`
	HasModuleDirectory bool   `json:"has_module_directory"`
	HasFilesDirectory  bool   `json:"has_files_directory"`

	// LifecyclePhases are the module subdirectory names, sorted, dot-directories excluded.
	LifecyclePhases []string `json:"lifecycle_phases"`

	// CleanupContent is nil when no cleanup script exists.
	CleanupContent *string `json:"cleanup_content,omitempty"`

	ValidationErrors []string `json:"validation_errors"`
}

// Valid reports whether no validation errors were recorded.
func (c *TemplateConfiguration) Valid() bool {
	return c != nil && len(c.ValidationErrors) == 0
}
