package report

import (
	"github.com/alexisbeaulieu97/gittemplate/internal/config"
	"github.com/alexisbeaulieu97/gittemplate/internal/model"
)

// StatusReport renders a development status analysis.
type StatusReport struct {
	Report *model.DevelopmentReport
}

func (*StatusReport) sealed() {}

// Succeeded is true: a status report is produced even for missing folders.
func (r *StatusReport) Succeeded() bool { return r.Report != nil }

// Render formats the analysis.
func (r *StatusReport) Render(format string) (string, error) {
	if err := checkFormat(format); err != nil {
		return "", err
	}
	if format == config.FormatJSON {
		return renderJSON(r.Report)
	}

	rep := r.Report
	if rep == nil {
		return "", nil
	}
	a := rep.Analysis

	p := &page{}
	if format == config.FormatSummary {
		p.add("%s: %s", a.Path, formatStatusName(string(rep.Status)))
		p.add("  %s", rep.Description)
		return p.String(), nil
	}

	p.banner("Git Template Status Report")
	p.add("Folder: %s", a.Path)
	p.add("Analyzed: %s", a.AnalyzedAt.Format("2006-01-02 15:04:05"))
	p.blank()

	p.section("FOLDER STATUS")
	p.add("  Exists: %s", indicator(a.Exists))
	p.add("  Git Repository: %s", indicator(a.IsVersionControlled))
	p.add("  Template Configuration: %s", indicator(a.HasTemplateConfiguration))
	p.add("  Generated Folder: %s", indicator(a.GeneratedCounterpartExists))
	if a.GeneratedCounterpartPath != "" {
		p.add("  Generated Folder Path: %s", a.GeneratedCounterpartPath)
		p.add("  Generated Folder Configuration: %s", indicator(a.GeneratedCounterpartHasConfiguration))
	}
	p.blank()

	if rep.TemplateConfiguration != nil || rep.CounterpartConfiguration != nil {
		p.section("TEMPLATE STATUS")
		writeConfiguration(p, "Main Template", rep.TemplateConfiguration)
		writeConfiguration(p, "Generated Template", rep.CounterpartConfiguration)
		p.blank()
	}

	p.section("DEVELOPMENT STATUS")
	p.add("  Status: %s", formatStatusName(string(rep.Status)))
	p.add("  Description: %s", rep.Description)
	p.blank()

	if len(rep.Recommendations) > 0 {
		p.section("RECOMMENDATIONS")
		p.numbered(rep.Recommendations)
		p.blank()
	}

	return p.String(), nil
}

func writeConfiguration(p *page, label string, cfg *model.TemplateConfiguration) {
	if cfg == nil {
		return
	}
	p.add("  %s:", label)
	p.add("    Valid: %s", indicator(cfg.Valid()))
	p.add("    Lifecycle Phases: %d", len(cfg.LifecyclePhases))
	p.add("    Has Cleanup Phase: %s", indicator(cfg.CleanupContent != nil))
	for _, e := range cfg.ValidationErrors {
		p.add("    %s %s", failureStyle.Render("!"), e)
	}
}
