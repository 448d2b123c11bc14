package report

import (
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/gittemplate/internal/config"
	"github.com/alexisbeaulieu97/gittemplate/internal/model"
)

// IterationReport renders the outcome of one repo iteration.
type IterationReport struct {
	Result *model.IterationResult `json:"result"`
	Diffs  []FileDiff             `json:"file_diffs,omitempty"`
}

func (*IterationReport) sealed() {}

// Succeeded mirrors the iteration outcome.
func (r *IterationReport) Succeeded() bool { return r.Result != nil && r.Result.Success }

// Render formats the iteration outcome.
func (r *IterationReport) Render(format string) (string, error) {
	if err := checkFormat(format); err != nil {
		return "", err
	}
	if format == config.FormatJSON {
		return renderJSON(r)
	}

	res := r.Result
	if res == nil {
		return "", nil
	}
	if format == config.FormatSummary {
		return r.summary(), nil
	}

	p := &page{}
	p.banner("Template Iteration Report")
	p.add("Application Folder: %s", res.ApplicationFolder)
	p.add("Generated Folder: %s", res.GeneratedFolder)
	p.add("Iteration Time: %s", res.Timestamp.Format("2006-01-02 15:04:05"))
	if res.RunID != "" {
		p.add("Run: %s", mutedStyle.Render(res.RunID))
	}
	p.blank()

	p.section("ITERATION RESULTS")
	p.add("  Success: %s", indicator(res.Success))
	p.add("  Template Applied: %s", indicator(res.TemplateApplied))
	p.add("  Differences Found: %s", indicator(res.DifferencesFound))
	p.add("  Differences Count: %d", res.DifferencesCount)
	p.add("  Cleanup Updated: %s", indicator(res.CleanupUpdated))
	if res.ErrorMessage != "" {
		p.add("  Error: %s", failureStyle.Render(res.ErrorMessage))
	}
	p.blank()

	if res.Comparison != nil {
		writeComparison(p, res.Comparison, listedPerKind)
	}
	writeDiffs(p, r.Diffs)

	p.section("NEXT STEPS")
	switch {
	case res.NeedsRefinement():
		p.numbered([]string{
			"Review the differences between application and generated folders",
			"Run: git-template iterate " + res.ApplicationFolder + " --detailed-comparison",
			"Adjust template configuration if needed",
			"Run iteration again to refine the template",
		})
	case res.Complete():
		p.numbered([]string{
			"Template iteration completed successfully",
			"No differences found - template is complete",
			"Consider running template validation tests",
		})
	default:
		p.numbered([]string{
			"Review error messages above",
			"Fix template configuration issues",
			"Run: git-template status " + res.ApplicationFolder + " for analysis",
		})
	}
	p.blank()
	p.add("%s", strings.Repeat("=", ruleWidth))

	return p.String(), nil
}

func (r *IterationReport) summary() string {
	res := r.Result
	p := &page{}
	p.add("Template Iteration Summary")
	p.add("========================================")
	p.add("Folder: %s", filepath.Base(res.ApplicationFolder))
	if res.Success {
		p.add("Status: Success")
	} else {
		p.add("Status: Failed")
	}
	p.add("Differences: %d", res.DifferencesCount)
	p.add("Cleanup Updated: %s", yesNo(res.CleanupUpdated))

	switch {
	case res.NeedsRefinement():
		p.blank()
		p.add("Next: Review differences with --detailed-comparison")
	case res.Complete():
		p.blank()
		p.add("Template iteration completed successfully")
	default:
		p.blank()
		p.add("Error: %s", res.ErrorMessage)
	}
	return p.String()
}
