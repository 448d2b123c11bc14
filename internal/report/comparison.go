package report

import (
	"github.com/alexisbeaulieu97/gittemplate/internal/config"
	"github.com/alexisbeaulieu97/gittemplate/internal/model"
)

const listedPerKind = 5

// ComparisonReport renders a standalone comparison.
type ComparisonReport struct {
	Comparison *model.ComparisonResult `json:"comparison"`
	Script     string                  `json:"diff_script,omitempty"`
	Diffs      []FileDiff              `json:"file_diffs,omitempty"`
}

func (*ComparisonReport) sealed() {}

// Succeeded is true once the comparison ran; differences are not a failure.
func (r *ComparisonReport) Succeeded() bool { return r.Comparison != nil }

// Render formats the comparison.
func (r *ComparisonReport) Render(format string) (string, error) {
	if err := checkFormat(format); err != nil {
		return "", err
	}
	c := r.Comparison
	if c == nil {
		if format == config.FormatJSON {
			return renderJSON(r)
		}
		return "", nil
	}
	if format == config.FormatJSON {
		return renderJSON(struct {
			Summary model.ComparisonSummary `json:"summary"`
			*ComparisonReport
		}{c.Summary(), r})
	}

	p := &page{}
	if format == config.FormatSummary {
		p.add("Added: %d  Modified: %d  Deleted: %d  Total: %d",
			len(c.AddedFiles), len(c.ModifiedFiles), len(c.DeletedFiles), c.TotalDifferences())
		return p.String(), nil
	}

	p.banner("Folder Comparison")
	p.add("Source: %s", c.SourcePath)
	p.add("Target: %s", c.TargetPath)
	p.blank()
	writeComparison(p, c, len(c.AddedFiles)+len(c.ModifiedFiles)+len(c.DeletedFiles))

	if r.Script != "" {
		p.section("DIFF SCRIPT")
		p.add("%s", r.Script)
		p.blank()
	}
	writeDiffs(p, r.Diffs)

	return p.String(), nil
}

// writeComparison lists up to limit files of each kind.
func writeComparison(p *page, c *model.ComparisonResult, limit int) {
	p.section("COMPARISON DETAILS")
	p.add("  Added Files: %d", len(c.AddedFiles))
	p.add("  Modified Files: %d", len(c.ModifiedFiles))
	p.add("  Deleted Files: %d", len(c.DeletedFiles))
	p.add("  Total Differences: %d", c.TotalDifferences())
	p.blank()

	if !c.HasDifferences() {
		return
	}

	p.section("DIFFERENCES SUMMARY")
	shown := 0
	for _, f := range head(c.AddedFiles, limit) {
		p.add("  %s %s", successStyle.Render("+"), f)
		shown++
	}
	for _, f := range head(c.ModifiedFiles, limit) {
		p.add("  %s %s", warningStyle.Render("~"), f)
		shown++
	}
	for _, f := range head(c.DeletedFiles, limit) {
		p.add("  %s %s", failureStyle.Render("-"), f)
		shown++
	}
	if rest := c.TotalDifferences() - shown; rest > 0 {
		p.add("  ... and %d more differences", rest)
	}
	p.blank()
}

func writeDiffs(p *page, diffs []FileDiff) {
	if len(diffs) == 0 {
		return
	}
	p.section("FILE DIFFS")
	for _, d := range diffs {
		p.add("%s", mutedStyle.Render("=== "+d.File+" ==="))
		p.add("%s", d.Diff)
	}
	p.blank()
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
