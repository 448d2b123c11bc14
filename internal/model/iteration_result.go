package model

import "time"

// IterationResult records one clean, apply, compare and converge cycle.
type IterationResult struct {
	RunID             string    `json:"run_id"`
	Success           bool      `json:"success"`
	ApplicationFolder string    `json:"application_folder"`
	GeneratedFolder   string    `json:"generated_folder"`
	TemplateApplied   bool      `json:"template_applied"`
	DifferencesFound  bool      `json:"differences_found"`
	DifferencesCount  int       `json:"differences_count"`
	CleanupUpdated    bool      `json:"cleanup_updated"`
	Timestamp         time.Time `json:"timestamp"`

	// Comparison is kept only when a detailed comparison was requested.
	Comparison *ComparisonResult `json:"comparison,omitempty"`
	// ApplyOutput is the captured output of the template application collaborator.
	ApplyOutput string `json:"apply_output,omitempty"`

	ErrorMessage string `json:"error_message,omitempty"`
	ErrorKind    string `json:"error_type,omitempty"`
}

// Complete reports a successful iteration that left nothing to refine.
func (r *IterationResult) Complete() bool {
	return r.Success && !r.DifferencesFound
}

// NeedsRefinement reports a successful iteration that still found differences.
func (r *IterationResult) NeedsRefinement() bool {
	return r.Success && r.DifferencesFound
}
