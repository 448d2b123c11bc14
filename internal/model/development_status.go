package model

// DevelopmentStatus classifies where a folder is in the template development lifecycle.
type DevelopmentStatus string

const (
	StatusFolderNotFound                        DevelopmentStatus = "folder_not_found"
	StatusNotTemplateProject                    DevelopmentStatus = "not_template_project"
	StatusApplicationFolderReadyForTemplating   DevelopmentStatus = "application_folder_ready_for_templating"
	StatusTemplateFolderWithoutGeneratedVersion DevelopmentStatus = "template_folder_without_generated_version"
	StatusGeneratedFolderMissingConfiguration   DevelopmentStatus = "generated_folder_missing_configuration"
	StatusReadyForTemplateIteration             DevelopmentStatus = "ready_for_template_iteration"
)

// AllDevelopmentStatuses lists every classification in precedence order.
var AllDevelopmentStatuses = []DevelopmentStatus{
	StatusFolderNotFound,
	StatusNotTemplateProject,
	StatusApplicationFolderReadyForTemplating,
	StatusTemplateFolderWithoutGeneratedVersion,
	StatusGeneratedFolderMissingConfiguration,
	StatusReadyForTemplateIteration,
}

// Description returns the fixed human-readable explanation of the status.
func (s DevelopmentStatus) Description() string {
	switch s {
	case StatusFolderNotFound:
		return "The specified folder does not exist"
	case StatusNotTemplateProject:
		return "Folder exists but is not set up for template development"
	case StatusApplicationFolderReadyForTemplating:
		return "Application folder is ready to have templates created"
	case StatusTemplateFolderWithoutGeneratedVersion:
		return "Has template configuration but no generated version for testing"
	case StatusGeneratedFolderMissingConfiguration:
		return "Generated folder exists but lacks template configuration"
	case StatusReadyForTemplateIteration:
		return "Ready for template iteration and refinement"
	default:
		return "Status requires manual review"
	}
}

// DevelopmentReport combines the analysis of a folder and of its generated counterpart.
type DevelopmentReport struct {
	Analysis        FolderAnalysis    `json:"folder_analysis"`
	Status          DevelopmentStatus `json:"development_status"`
	Description     string            `json:"description"`
	Recommendations []string          `json:"recommendations"`

	// TemplateConfiguration is nil unless the folder has a configuration directory.
	TemplateConfiguration *TemplateConfiguration `json:"template_configuration,omitempty"`
	// CounterpartConfiguration is nil unless the generated folder has a configuration directory.
	CounterpartConfiguration *TemplateConfiguration `json:"generated_template_configuration,omitempty"`

	// ProposedCounterpartPath is where a generated folder would be created under the primary convention.
	ProposedCounterpartPath string `json:"proposed_counterpart_path,omitempty"`
}
