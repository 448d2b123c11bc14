package iteration

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/gittemplate/internal/compare"
	"github.com/alexisbeaulieu97/gittemplate/internal/model"
	"github.com/alexisbeaulieu97/gittemplate/internal/report"
)

// Dispatch executes the chosen strategy. Strategies that cannot proceed are refused unless
// opts.Force is set, and even then only the three executable strategies run.
func (s *Service) Dispatch(ctx context.Context, rep *model.DevelopmentReport, strat model.StrategyResult, opts Options) report.Result {
	if !strat.CanProceed && !opts.Force {
		return &report.ErrorResult{
			Message: strat.Reason,
			Kind:    "strategy",
			Details: strat.Recommendations,
		}
	}

	switch strat.Type {
	case model.StrategyRepoIteration:
		result := s.ExecuteRepoIteration(ctx, rep, opts)
		out := &report.IterationReport{Result: result}
		if opts.DetailedComparison && result.Comparison != nil {
			out.Diffs = s.FileDiffs(result.Comparison)
		}
		return out

	case model.StrategyCreateGeneratedFolder:
		target, err := s.CreateGeneratedFolder(ctx, rep)
		if err != nil {
			r := report.NewError(err)
			r.Message = "Generated folder creation failed: " + r.Message
			return r
		}
		return &report.SuccessResult{
			Message: "Generated folder created",
			Details: map[string]any{"folder_path": rep.Analysis.Path, "generated_folder": target, "iteration_type": string(strat.Type)},
		}

	case model.StrategySyncConfiguration:
		target, err := s.SyncConfiguration(ctx, rep)
		if err != nil {
			r := report.NewError(err)
			r.Message = "Template configuration sync failed: " + r.Message
			return r
		}
		return &report.SuccessResult{
			Message: "Template configuration copied to generated folder",
			Details: map[string]any{"folder_path": rep.Analysis.Path, "generated_folder": target, "iteration_type": string(strat.Type)},
		}

	default:
		return &report.ErrorResult{
			Message: fmt.Sprintf("Cannot iterate: %s", strat.Reason),
			Kind:    "strategy",
			Details: strat.Recommendations,
		}
	}
}

// FileDiffs renders a unified diff for every modified file of comparison.
func (s *Service) FileDiffs(comparison *model.ComparisonResult) []report.FileDiff {
	diffs := make([]report.FileDiff, 0, len(comparison.ModifiedFiles))
	for _, rel := range comparison.ModifiedFiles {
		d, err := compare.FileDiff(comparison, rel)
		if err != nil {
			s.log.Warn(fmt.Sprintf("diff of %s unavailable: %v", rel, err))
			continue
		}
		diffs = append(diffs, report.FileDiff{File: rel, Diff: d})
	}
	return diffs
}
