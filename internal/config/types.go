package config

// DefaultFileName is looked up in the working directory when no --config flag is given.
const DefaultFileName = ".git-template.yaml"

// Output formats understood by the report renderers.
const (
	FormatDetailed = "detailed"
	FormatSummary  = "summary"
	FormatJSON     = "json"
)

// Template application modes.
const (
	ApplyModeFiles   = "files"
	ApplyModeCommand = "command"
)

// Settings is the explicit configuration handed to the iteration engine.
// Nothing in the engine reads process-wide state; the CLI builds one of these and passes it down.
type Settings struct {
	Verbose            bool    `yaml:"verbose,omitempty"`
	Debug              bool    `yaml:"debug,omitempty"`
	Format             string  `yaml:"format,omitempty" validate:"required,oneof=detailed summary json"`
	DetailedComparison bool    `yaml:"detailed_comparison,omitempty"`
	Force              bool    `yaml:"force,omitempty"`
	Layout             Layout  `yaml:"layout,omitempty"`
	Compare            Compare `yaml:"compare,omitempty"`
	Apply              Apply   `yaml:"apply,omitempty"`
}

// Layout names the pieces of a template configuration bundle and the generated-folder conventions.
type Layout struct {
	ConfigDir      string   `yaml:"config_dir,omitempty" validate:"required,path_segment"`
	EntryScript    string   `yaml:"entry_script,omitempty" validate:"required,path_segment"`
	CleanupScript  string   `yaml:"cleanup_script,omitempty" validate:"required,path_segment,nefield=EntryScript"`
	ModulesDir     string   `yaml:"modules_dir,omitempty" validate:"required,path_segment"`
	FilesDir       string   `yaml:"files_dir,omitempty" validate:"required,path_segment,nefield=ModulesDir"`
	GeneratedRoot  string   `yaml:"generated_root,omitempty" validate:"required,path_segment"`
	LegacySuffixes []string `yaml:"legacy_suffixes,omitempty" validate:"dive,required"`
}

// Compare configures the comparison engine.
type Compare struct {
	// Ignore holds extra gitignore-style patterns excluded from every comparison.
	Ignore []string `yaml:"ignore,omitempty" validate:"dive,required"`
}

// Apply selects the template application collaborator.
type Apply struct {
	Mode    string   `yaml:"mode,omitempty" validate:"required,oneof=files command"`
	Command []string `yaml:"command,omitempty" validate:"required_if=Mode command,dive,required"`
}

// DefaultLayout mirrors the on-disk conventions of existing template projects.
func DefaultLayout() Layout {
	return Layout{
		ConfigDir:      ".git_template",
		EntryScript:    "template.rb",
		CleanupScript:  "cleanup.rb",
		ModulesDir:     "modules",
		FilesDir:       "files",
		GeneratedRoot:  "templated",
		LegacySuffixes: []string{"-templated", "-templatd"},
	}
}

// Default returns settings with every field populated.
func Default() Settings {
	return Settings{
		Format:             FormatDetailed,
		DetailedComparison: true,
		Layout:             DefaultLayout(),
		Apply:              Apply{Mode: ApplyModeFiles},
	}
}

// LogLevel maps the verbosity toggles onto a logger level.
func (s Settings) LogLevel() string {
	if s.Verbose || s.Debug {
		return "debug"
	}
	return "warn"
}
