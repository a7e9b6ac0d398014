package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/aprendemos/internal/model"
	"github.com/verte-zerg/aprendemos/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions         []model.SessionAggregate
	WindowSessionIDs []string
	RulesAll         []model.RuleAggregate
	RulesWindow      []model.RuleAggregate
	Runs             []model.RunAggregate
	Facts            []model.FactAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list sessions: %w", err)
	}
	allIDs := sessionIDs(sessions)
	windowIDs := lastSessionIDs(sessions, cfg.CurveWindow)
	rulesAll, err := st.ListRuleAggregates(ctx, allIDs)
	if err != nil {
		return Report{}, fmt.Errorf("failed to aggregate rules: %w", err)
	}
	rulesWindow, err := st.ListRuleAggregates(ctx, windowIDs)
	if err != nil {
		return Report{}, fmt.Errorf("failed to aggregate rules: %w", err)
	}

	runCfg := cfg
	runCfg.LessonID = ""
	runs, err := st.ListRuns(ctx, runCfg)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list runs: %w", err)
	}
	runIDs := make([]string, len(runs))
	for i, r := range runs {
		runIDs[i] = r.RunID
	}
	facts, err := st.ListFactAggregates(ctx, runIDs)
	if err != nil {
		return Report{}, fmt.Errorf("failed to aggregate facts: %w", err)
	}

	return Report{
		Sessions:         sessions,
		WindowSessionIDs: windowIDs,
		RulesAll:         rulesAll,
		RulesWindow:      rulesWindow,
		Runs:             runs,
		Facts:            facts,
	}, nil
}

// RenderOptions sizes the text report.
type RenderOptions struct {
	Width       int
	CurveWindow int
	TopFacts    int
	Color       bool
}

// Render prints the full report.
func (r Report) Render(w io.Writer, opts RenderOptions) error {
	if err := RenderSummary(w, r.Sessions); err != nil {
		return err
	}
	if len(r.Sessions) > 1 {
		if err := RenderCurvesWithSize(w, r.Sessions, opts.CurveWindow, opts.Width, 10, opts.Color); err != nil {
			return err
		}
	}
	if len(r.RulesAll) > 0 {
		if err := RenderRuleTable(w, "Per-Rule (All)", r.RulesAll); err != nil {
			return err
		}
		if len(r.WindowSessionIDs) < len(r.Sessions) {
			if err := RenderRuleTable(w, "Per-Rule (Windowed)", r.RulesWindow); err != nil {
				return err
			}
		}
		if weak := WeakRules(r.RulesWindow, 3); len(weak) > 0 {
			if err := writeLines(w, fmt.Sprintf("Focus next on: %v", weak), ""); err != nil {
				return err
			}
		}
	}
	if err := RenderRunSummary(w, r.Runs); err != nil {
		return err
	}
	if len(r.Facts) > 0 {
		return RenderFactTable(w, r.Facts, opts.TopFacts)
	}
	return nil
}

func sessionIDs(sessions []model.SessionAggregate) []string {
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	return ids
}

func lastSessionIDs(sessions []model.SessionAggregate, window int) []string {
	if window <= 0 || len(sessions) <= window {
		return sessionIDs(sessions)
	}
	return sessionIDs(sessions[len(sessions)-window:])
}
