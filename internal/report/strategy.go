package report

import (
	"github.com/alexisbeaulieu97/gittemplate/internal/config"
	"github.com/alexisbeaulieu97/gittemplate/internal/model"
)

// StrategyReport renders a strategy decision with its prerequisite validation.
type StrategyReport struct {
	Strategy   model.StrategyResult         `json:"strategy"`
	Validation model.PrerequisiteValidation `json:"validation"`
}

func (*StrategyReport) sealed() {}

// Succeeded is true: the decision itself is the outcome.
func (r *StrategyReport) Succeeded() bool { return true }

// Render formats the decision.
func (r *StrategyReport) Render(format string) (string, error) {
	if err := checkFormat(format); err != nil {
		return "", err
	}
	if format == config.FormatJSON {
		return renderJSON(r)
	}

	s := r.Strategy
	p := &page{}
	if format == config.FormatSummary {
		p.add("%s: %s (%s)", s.FolderPath, formatStatusName(string(s.Type)), proceedLabel(s.CanProceed))
		p.add("  %s", s.RecommendedAction)
		return p.String(), nil
	}

	p.banner("Template Iteration Strategy")
	p.add("Folder: %s", s.FolderPath)
	p.add("Development Status: %s", formatStatusName(string(s.Status)))
	p.blank()

	p.section("STRATEGY")
	p.add("  Type: %s", formatStatusName(string(s.Type)))
	p.add("  Reason: %s", s.Reason)
	p.add("  Can Proceed: %s", indicator(s.CanProceed))
	p.add("  Prerequisites Met: %s", indicator(s.PrerequisitesMet))
	p.add("  Recommended Action: %s", s.RecommendedAction)
	if len(s.MissingRequirements) > 0 {
		p.add("  Missing Requirements:")
		for _, m := range s.MissingRequirements {
			p.add("    - %s", m)
		}
	}
	p.blank()

	p.section("VALIDATION")
	p.add("  Valid: %s", indicator(r.Validation.Valid))
	for _, e := range r.Validation.Errors {
		p.add("  %s %s", failureStyle.Render("✗"), e)
	}
	for _, w := range r.Validation.Warnings {
		p.add("  %s %s", warningStyle.Render("⚠"), w)
	}
	p.blank()

	if len(s.Recommendations) > 0 {
		p.section("NEXT STEPS")
		p.numbered(s.Recommendations)
		p.blank()
	}

	return p.String(), nil
}

func proceedLabel(ok bool) string {
	if ok {
		return "can proceed"
	}
	return "cannot proceed"
}
