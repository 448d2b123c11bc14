package report

import (
	"github.com/alexisbeaulieu97/gittemplate/internal/config"
	"github.com/alexisbeaulieu97/gittemplate/internal/model"
)

// CompletenessReport renders a from-scratch application checked against its reference.
type CompletenessReport struct {
	Result *model.CompletenessResult `json:"result"`
}

func (*CompletenessReport) sealed() {}

// Succeeded is true when the template reproduces the reference exactly.
func (r *CompletenessReport) Succeeded() bool { return r.Result != nil && r.Result.Complete }

// Render formats the check.
func (r *CompletenessReport) Render(format string) (string, error) {
	if err := checkFormat(format); err != nil {
		return "", err
	}
	if format == config.FormatJSON {
		return renderJSON(r.Result)
	}

	c := r.Result
	if c == nil {
		return "", nil
	}
	p := &page{}

	if format == config.FormatSummary {
		switch {
		case c.Error != "":
			p.add("%s %s: %s", indicator(false), c.Reference, c.Error)
		case c.Complete:
			p.add("%s %s: template is complete", indicator(true), c.Reference)
		default:
			p.add("%s %s: %d differences remain", indicator(false), c.Reference, c.DifferencesCount)
		}
		return p.String(), nil
	}

	p.banner("Template Completeness")
	p.add("Template: %s", c.ConfigPath)
	p.add("Reference: %s", c.Reference)
	p.add("Complete: %s", indicator(c.Complete))
	p.blank()

	if c.Error != "" {
		p.section("ERROR")
		p.add("  %s", c.Error)
		if c.ApplyOutput != "" {
			p.add("%s", c.ApplyOutput)
		}
		p.blank()
		return p.String(), nil
	}

	if c.Summary != nil {
		p.section("COMPARISON DETAILS")
		p.add("  Added Files: %d", c.Summary.AddedFiles)
		p.add("  Modified Files: %d", c.Summary.ModifiedFiles)
		p.add("  Deleted Files: %d", c.Summary.DeletedFiles)
		p.add("  Total Differences: %d", c.Summary.TotalDifferences)
		p.blank()
	}

	if len(c.Differences) > 0 {
		p.section("DIFFERENCES")
		for _, d := range c.Differences {
			p.add("  - %s", d.Description)
		}
		p.blank()
	}

	return p.String(), nil
}
