package apply

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"text/template"

	"github.com/alexisbeaulieu97/gittemplate/internal/config"
	"github.com/alexisbeaulieu97/gittemplate/internal/logger"
)

// CommandData is the value each argument template is executed against.
type CommandData struct {
	ConfigPath  string
	EntryScript string
	Target      string
}

// CommandApplier runs an external generator inside the target folder.
// It has no timeout of its own; cancel ctx to stop it.
type CommandApplier struct {
	args   []*template.Template
	layout config.Layout
	log    *logger.Logger

	// Stdout and Stderr, when set, receive the command output as it is produced.
	Stdout io.Writer
	Stderr io.Writer
}

// NewCommandApplier parses argv, where every element is a text/template.
func NewCommandApplier(argv []string, layout config.Layout, log *logger.Logger) (*CommandApplier, error) {
	if len(argv) == 0 {
		return nil, errors.New("apply command is empty")
	}

	args := make([]*template.Template, 0, len(argv))
	for i, raw := range argv {
		tmpl, err := template.New(fmt.Sprintf("arg%d", i)).Option("missingkey=error").Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse apply command argument %d: %w", i, err)
		}
		args = append(args, tmpl)
	}
	return &CommandApplier{args: args, layout: layout, log: log.WithFields(map[string]any{"component": "apply", "mode": config.ApplyModeCommand})}, nil
}

// Apply renders the argument templates and runs the command with targetPath as working directory.
func (c *CommandApplier) Apply(ctx context.Context, configPath, targetPath string) (Output, error) {
	data := CommandData{
		ConfigPath:  configPath,
		EntryScript: filepath.Join(configPath, c.layout.EntryScript),
		Target:      targetPath,
	}

	argv := make([]string, 0, len(c.args))
	for _, tmpl := range c.args {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return Output{}, fmt.Errorf("render apply command: %w", err)
		}
		argv = append(argv, buf.String())
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = targetPath
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	c.log.WithFields(map[string]any{"argv": argv, "dir": targetPath}).Debug("running apply command")

	res, err := runCaptured(cmd)
	if err != nil {
		if out := primaryOutput(res); out != "" {
			err = fmt.Errorf("%w: %s", err, out)
		}
		return Output{Success: false, Output: combinedOutput(res)}, err
	}

	return Output{Success: true, Output: combinedOutput(res)}, nil
}
