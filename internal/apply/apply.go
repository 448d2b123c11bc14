// Package apply holds the collaborators that materialize a template configuration into a folder.
package apply

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/gittemplate/internal/config"
	"github.com/alexisbeaulieu97/gittemplate/internal/logger"
)

// Output is what an Applier reports back about one application.
type Output struct {
	Success bool   `json:"success"`
	Output  string `json:"output"`
}

// Applier applies the configuration bundle at configPath to targetPath.
// A returned error and Output.Success == false are both treated as failure.
type Applier interface {
	Apply(ctx context.Context, configPath, targetPath string) (Output, error)
}

// New picks the applier selected by settings.
func New(settings config.Apply, layout config.Layout, log *logger.Logger) (Applier, error) {
	switch settings.Mode {
	case "", config.ApplyModeFiles:
		return NewFilesApplier(layout, log), nil
	case config.ApplyModeCommand:
		return NewCommandApplier(settings.Command, layout, log)
	default:
		return nil, fmt.Errorf("unknown apply mode %q", settings.Mode)
	}
}

// Func adapts a plain function to the Applier interface.
type Func func(ctx context.Context, configPath, targetPath string) (Output, error)

// Apply calls f.
func (f Func) Apply(ctx context.Context, configPath, targetPath string) (Output, error) {
	return f(ctx, configPath, targetPath)
}
