package model

import "time"

// FolderAnalysis is a snapshot of the facts about one folder that drive iteration decisions.
// It is rebuilt on every analysis and never mutated afterwards.
type FolderAnalysis struct {
	// Path is the absolute path of the analyzed folder.
	Path string `json:"path"`

	Exists                   bool `json:"exists"`
	IsVersionControlled      bool `json:"is_version_controlled"`
	HasTemplateConfiguration bool `json:"has_template_configuration"`

	// GeneratedCounterpartPath is the first existing generated folder found for Path,
	// or empty when none of the naming conventions matched.
	GeneratedCounterpartPath             string `json:"generated_counterpart_path,omitempty"`
	GeneratedCounterpartExists           bool   `json:"generated_counterpart_exists"`
	GeneratedCounterpartHasConfiguration bool   `json:"generated_counterpart_has_configuration"`

	AnalyzedAt time.Time `json:"analyzed_at"`
}

// HasCounterpart reports whether a generated folder was resolved.
func (a FolderAnalysis) HasCounterpart() bool {
	return a.GeneratedCounterpartPath != ""
}

// ValidApplicationFolder reports whether the folder can act as an application folder at all.
func (a FolderAnalysis) ValidApplicationFolder() bool {
	return a.Exists && (a.IsVersionControlled || a.HasTemplateConfiguration)
}

// ReadyForIteration holds when both sides of an iteration carry template configuration.
func (a FolderAnalysis) ReadyForIteration() bool {
	return a.Exists && a.HasTemplateConfiguration &&
		a.GeneratedCounterpartExists && a.GeneratedCounterpartHasConfiguration
}
