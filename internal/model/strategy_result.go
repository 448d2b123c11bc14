package model

// StrategyType is the next action recommended for a folder.
type StrategyType string

const (
	StrategyRepoIteration         StrategyType = "repo_iteration"
	StrategyCreateGeneratedFolder StrategyType = "create_generated_folder"
	StrategySyncConfiguration     StrategyType = "sync_configuration"
	StrategyCannotIterate         StrategyType = "cannot_iterate"
	StrategyUnknown               StrategyType = "unknown"
)

// StrategyResult is the outcome of mapping a development status to an action.
type StrategyResult struct {
	Type                StrategyType      `json:"strategy_type"`
	Status              DevelopmentStatus `json:"development_status"`
	FolderPath          string            `json:"folder_path"`
	Reason              string            `json:"reason"`
	RecommendedAction   string            `json:"recommended_action"`
	CanProceed          bool              `json:"can_proceed"`
	PrerequisitesMet    bool              `json:"prerequisites_met"`
	MissingRequirements []string          `json:"missing_requirements"`
	Recommendations     []string          `json:"recommendations"`
}

// PrerequisiteValidation restates the iteration prerequisites as errors and warnings.
type PrerequisiteValidation struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}
