package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/gittemplate/internal/analysis"
	"github.com/alexisbeaulieu97/gittemplate/internal/apply"
	"github.com/alexisbeaulieu97/gittemplate/internal/compare"
	"github.com/alexisbeaulieu97/gittemplate/internal/config"
	"github.com/alexisbeaulieu97/gittemplate/internal/iteration"
	"github.com/alexisbeaulieu97/gittemplate/internal/logger"
	"github.com/alexisbeaulieu97/gittemplate/internal/report"
)

// errCommandFailed signals a failure whose report has already been written.
var errCommandFailed = errors.New("command failed")

type rootFlags struct {
	verbose    bool
	debug      bool
	format     string
	configPath string
	workDir    string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "git-template",
		Short:         "git-template iteratively refines a template against a reference application",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable debug logging with caller information")
	cmd.PersistentFlags().StringVarP(&flags.format, "format", "f", config.FormatDetailed, "Output format: detailed, summary or json")
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Settings file (defaults to "+config.DefaultFileName+" when present)")
	cmd.PersistentFlags().StringVar(&flags.workDir, "workdir", "", "Directory the generated folder convention is anchored at (defaults to the current directory)")

	cmd.AddCommand(newStatusCmd(flags))
	cmd.AddCommand(newStrategyCmd(flags))
	cmd.AddCommand(newIterateCmd(flags))
	cmd.AddCommand(newCompareCmd(flags))
	cmd.AddCommand(newCheckCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// appContext bundles the services one command invocation needs.
type appContext struct {
	settings config.Settings
	log      *logger.Logger
	workDir  string
	analyzer *analysis.Analyzer
	engine   *compare.Engine
	service  *iteration.Service
}

func newAppContext(cmd *cobra.Command, flags *rootFlags) (*appContext, error) {
	settings, err := loadSettings(cmd, flags)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Options{
		Level:   settings.LogLevel(),
		Console: term.IsTerminal(int(os.Stderr.Fd())),
		Writer:  cmd.ErrOrStderr(),
		Caller:  settings.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	workDir := flags.workDir
	if workDir == "" {
		workDir = "."
	}
	if workDir, err = filepath.Abs(workDir); err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	applier, err := apply.New(settings.Apply, settings.Layout, log)
	if err != nil {
		return nil, err
	}

	engine := compare.NewEngine(compare.WithIgnore(settings.Compare.Ignore...), compare.WithLogger(log))

	return &appContext{
		settings: settings,
		log:      log,
		workDir:  workDir,
		analyzer: analysis.New(settings.Layout, workDir, log),
		engine:   engine,
		service:  iteration.New(settings.Layout, applier, engine, log),
	}, nil
}

// loadSettings reads the settings file and lets explicitly set flags override it.
func loadSettings(cmd *cobra.Command, flags *rootFlags) (config.Settings, error) {
	var (
		settings config.Settings
		err      error
	)
	if flags.configPath != "" {
		settings, err = config.Load(flags.configPath)
	} else {
		settings, err = config.LoadOptional(config.DefaultFileName)
	}
	if err != nil {
		return settings, err
	}

	pf := cmd.Flags()
	if pf.Changed("format") {
		settings.Format = flags.format
	}
	if pf.Changed("verbose") {
		settings.Verbose = flags.verbose
	}
	if pf.Changed("debug") {
		settings.Debug = flags.debug
	}

	return settings, config.Validate(settings)
}

// emit writes the rendered result and turns a failed result into errCommandFailed.
func emit(cmd *cobra.Command, result report.Result, format string) error {
	out, err := result.Render(format)
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	if !result.Succeeded() {
		return errCommandFailed
	}
	return nil
}

// resolve anchors a relative command-line path at the working directory.
func (a *appContext) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(a.workDir, path)
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
