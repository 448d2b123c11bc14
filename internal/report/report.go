// Package report renders engine outcomes for the CLI.
//
// Result is a closed set: only the variants in this package implement it.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/gittemplate/internal/config"
)

// Result is one renderable command outcome.
type Result interface {
	// Render formats the result as detailed, summary or json.
	Render(format string) (string, error)
	// Succeeded reports whether the command should exit with status zero.
	Succeeded() bool

	sealed()
}

// FileDiff is the unified diff of one modified file.
type FileDiff struct {
	File string `json:"file"`
	Diff string `json:"diff"`
}

const ruleWidth = 80

func renderJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(data), nil
}

func checkFormat(format string) error {
	switch format {
	case config.FormatDetailed, config.FormatSummary, config.FormatJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// page collects report lines.
type page struct {
	lines []string
}

func (p *page) add(format string, args ...any) {
	p.lines = append(p.lines, fmt.Sprintf(format, args...))
}

func (p *page) blank() {
	p.lines = append(p.lines, "")
}

func (p *page) banner(title string) {
	p.lines = append(p.lines,
		strings.Repeat("=", ruleWidth),
		titleStyle.Render(center(title, ruleWidth)),
		strings.Repeat("=", ruleWidth),
		"",
	)
}

func (p *page) section(name string) {
	p.lines = append(p.lines, sectionStyle.Render(name), strings.Repeat("-", 40))
}

func (p *page) numbered(items []string) {
	for i, item := range items {
		p.add("  %d. %s", i+1, item)
	}
}

func (p *page) String() string {
	return strings.Join(p.lines, "\n")
}

func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
