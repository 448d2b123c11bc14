package model

// CompletenessResult reports whether applying a template configuration from scratch
// reproduces a reference application.
type CompletenessResult struct {
	ConfigPath string `json:"config_path"`
	Reference  string `json:"reference"`
	Complete   bool   `json:"complete"`

	DifferencesCount int                `json:"differences_count"`
	Summary          *ComparisonSummary `json:"comparison_summary,omitempty"`
	Differences      []Difference       `json:"differences,omitempty"`

	ApplyOutput string `json:"apply_output,omitempty"`
	// Error is set when the template could not be applied; nothing was compared.
	Error string `json:"error,omitempty"`
}
