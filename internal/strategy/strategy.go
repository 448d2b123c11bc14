// Package strategy maps a development status onto the next iteration action.
package strategy

import (
	"fmt"

	"github.com/alexisbeaulieu97/gittemplate/internal/model"
)

// Options carries the inputs of Determine that are not part of the status.
type Options struct {
	FolderPath string
	// ConfigDir and EntryScript name the bundle in the setup hint for unconfigured folders.
	ConfigDir   string
	EntryScript string
}

func (o Options) configDir() string {
	if o.ConfigDir == "" {
		return ".git_template"
	}
	return o.ConfigDir
}

func (o Options) entryScript() string {
	if o.EntryScript == "" {
		return "template.rb"
	}
	return o.EntryScript
}

// Determine is a pure function of status: it performs no I/O and never consults force.
func Determine(status model.DevelopmentStatus, opts Options) model.StrategyResult {
	result := model.StrategyResult{
		Status:              status,
		FolderPath:          opts.FolderPath,
		MissingRequirements: []string{},
	}

	switch status {
	case model.StatusReadyForTemplateIteration:
		result.Type = model.StrategyRepoIteration
		result.Reason = "Folder is ready for template iteration"
		result.RecommendedAction = "Execute full template iteration process"
		result.CanProceed = true
		result.PrerequisitesMet = true
	case model.StatusTemplateFolderWithoutGeneratedVersion:
		result.Type = model.StrategyCreateGeneratedFolder
		result.Reason = "Template configuration exists but no generated version found"
		result.RecommendedAction = "Create generated folder and copy template configuration"
		result.CanProceed = true
		result.MissingRequirements = []string{"generated folder"}
	case model.StatusGeneratedFolderMissingConfiguration:
		result.Type = model.StrategySyncConfiguration
		result.Reason = "Generated folder exists but lacks template configuration"
		result.RecommendedAction = "Copy template configuration to generated folder"
		result.CanProceed = true
		result.MissingRequirements = []string{"template configuration in generated folder"}
	case model.StatusApplicationFolderReadyForTemplating:
		result.Type = model.StrategyCannotIterate
		result.Reason = "Application folder needs template configuration first"
		result.RecommendedAction = fmt.Sprintf("Create template configuration: mkdir -p %s && touch %s/%s",
			opts.configDir(), opts.configDir(), opts.entryScript())
		result.MissingRequirements = []string{"template configuration", "generated folder"}
	case model.StatusFolderNotFound:
		result.Type = model.StrategyCannotIterate
		result.Reason = "Folder does not exist"
		result.RecommendedAction = "Create the folder first: mkdir -p " + opts.FolderPath
		result.MissingRequirements = []string{"folder existence"}
	case model.StatusNotTemplateProject:
		result.Type = model.StrategyCannotIterate
		result.Reason = "Folder is not set up for template development"
		result.RecommendedAction = "Initialize as template project or add template configuration"
		result.MissingRequirements = []string{"git repository", "template configuration"}
	default:
		result.Type = model.StrategyUnknown
		result.Reason = "Cannot determine appropriate iteration strategy"
		result.RecommendedAction = "Review folder structure and run status command for detailed analysis"
		result.MissingRequirements = []string{"manual review required"}
	}

	result.Recommendations = Recommendations(result)
	return result
}

// Recommendations lists the ordered next steps for a strategy.
func Recommendations(result model.StrategyResult) []string {
	path := result.FolderPath
	switch result.Type {
	case model.StrategyRepoIteration:
		return []string{
			"Run: git-template iterate " + path,
			"Review changes with: git-template iterate " + path + " --detailed-comparison",
		}
	case model.StrategyCreateGeneratedFolder:
		return []string{
			"Create generated folder: git-template iterate " + path,
			"Then run iteration: git-template iterate " + path,
		}
	case model.StrategySyncConfiguration:
		return []string{
			"Copy template configuration to generated folder: git-template iterate " + path,
			"Then run iteration: git-template iterate " + path,
		}
	case model.StrategyCannotIterate:
		return []string{
			result.RecommendedAction,
			"Then run: git-template status " + path + " to verify setup",
		}
	default:
		return []string{
			"Run: git-template status " + path + " --format=json for detailed analysis",
			"Review folder structure and template configuration",
		}
	}
}

// ValidatePrerequisites restates the repo-iteration prerequisites as errors and warnings.
// Valid holds exactly when Determine would select repo_iteration for a report whose
// configurations are valid.
func ValidatePrerequisites(report *model.DevelopmentReport) model.PrerequisiteValidation {
	v := model.PrerequisiteValidation{Errors: []string{}, Warnings: []string{}}
	if report == nil {
		v.Errors = append(v.Errors, "No analysis available")
		return v
	}

	a := report.Analysis
	if !a.Exists {
		v.Errors = append(v.Errors, "Folder does not exist: "+a.Path)
		return v
	}

	if !a.IsVersionControlled {
		v.Warnings = append(v.Warnings, "Folder is not a git repository")
	}
	if !a.HasTemplateConfiguration {
		v.Errors = append(v.Errors, "No template configuration found")
	}
	if !a.GeneratedCounterpartExists {
		v.Errors = append(v.Errors, "No generated folder found")
	}
	if !a.GeneratedCounterpartHasConfiguration {
		v.Errors = append(v.Errors, "Generated folder lacks template configuration")
	}

	if cfg := report.TemplateConfiguration; cfg != nil && !cfg.Valid() {
		v.Errors = append(v.Errors, "Main template configuration is invalid")
		v.Errors = append(v.Errors, cfg.ValidationErrors...)
	}
	if cfg := report.CounterpartConfiguration; cfg != nil && !cfg.Valid() {
		v.Errors = append(v.Errors, "Generated template configuration is invalid")
		v.Errors = append(v.Errors, cfg.ValidationErrors...)
	}

	v.Valid = len(v.Errors) == 0
	return v
}
