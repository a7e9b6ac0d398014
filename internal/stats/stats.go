// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/verte-zerg/aprendemos/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Accuracy returns correct/total as a percentage, 0 when total is 0.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := lo.Min(values), lo.Max(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func writeLines(w io.Writer, lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderSummary prints a summary of dictation sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		return writeLines(w, "No dictée sessions found.", "")
	}
	words := lo.SumBy(sessions, func(s model.SessionAggregate) int { return s.Total })
	correct := lo.SumBy(sessions, func(s model.SessionAggregate) int { return s.Correct })
	points := lo.Map(sessions, func(s model.SessionAggregate, _ int) float64 { return float64(s.TotalPoints) })
	best := lo.MaxBy(sessions, func(a, b model.SessionAggregate) bool { return a.TotalPoints > b.TotalPoints })

	return writeLines(w,
		"Dictée",
		fmt.Sprintf("Sessions: %d", len(sessions)),
		fmt.Sprintf("Words: %d", words),
		fmt.Sprintf("Accuracy: %.2f%%", Accuracy(correct, words)),
		fmt.Sprintf("Avg points: %.1f", lo.Sum(points)/float64(len(points))),
		fmt.Sprintf("Best points: %d (%s)", best.TotalPoints, best.LessonID),
		fmt.Sprintf("Points: %s", Sparkline(points)),
		"",
	)
}

// RenderRunSummary prints a summary of multiplication runs. Cancelled runs
// are listed but do not count toward the best score.
func RenderRunSummary(w io.Writer, runs []model.RunAggregate) error {
	if len(runs) == 0 {
		return writeLines(w, "No multiplica runs found.", "")
	}
	finished := lo.Filter(runs, func(r model.RunAggregate, _ int) bool { return !r.Cancelled })
	answered := lo.SumBy(runs, func(r model.RunAggregate) int { return r.Answered })
	correct := lo.SumBy(runs, func(r model.RunAggregate) int { return r.Score })
	best := 0
	if len(finished) > 0 {
		best = lo.MaxBy(finished, func(a, b model.RunAggregate) bool { return a.Score > b.Score }).Score
	}
	scores := lo.Map(finished, func(r model.RunAggregate, _ int) float64 { return float64(r.Score) })

	return writeLines(w,
		"Multiplica",
		fmt.Sprintf("Runs: %d (%d cancelled)", len(runs), len(runs)-len(finished)),
		fmt.Sprintf("Answers: %d", answered),
		fmt.Sprintf("Accuracy: %.2f%%", Accuracy(correct, answered)),
		fmt.Sprintf("Best score: %d", best),
		fmt.Sprintf("Scores: %s", Sparkline(scores)),
		"",
	)
}

// RenderCurves prints learning curves for points and accuracy.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window int) error {
	return RenderCurvesWithSize(w, sessions, window, 0, 10, false)
}

// RenderCurvesWithSize prints learning curves sized to a given total width.
func RenderCurvesWithSize(w io.Writer, sessions []model.SessionAggregate, window, totalWidth, height int, useColor bool) error {
	if len(sessions) == 0 {
		return nil
	}
	points := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		points[i] = float64(s.TotalPoints)
		accs[i] = Accuracy(s.Correct, s.Total)
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, "Learning Curves", []Series{
		{Name: "Points", Values: MovingAverage(points, window)},
		{Name: "Accuracy", Values: MovingAverage(accs, window)},
	}, width, height, useColor)
}

// RenderRuleTable prints per-rule aggregates, weakest first.
func RenderRuleTable(w io.Writer, title string, aggs []model.RuleAggregate) error {
	if len(aggs) == 0 {
		return writeLines(w, "No word stats found.", "")
	}
	rows := make([]model.RuleAggregate, len(aggs))
	copy(rows, aggs)
	sort.Slice(rows, func(i, j int) bool {
		ai, aj := ruleAccuracy(rows[i]), ruleAccuracy(rows[j])
		if ai == aj {
			return rows[i].Rule < rows[j].Rule
		}
		return ai < aj
	})

	cols := []column{
		{title: "Rule"},
		{title: "Spelled", right: true},
		{title: "Words", right: true},
		{title: "Wrong", right: true},
		{title: "Near", right: true},
		{title: "Meaning", right: true},
	}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.Rule,
			fmt.Sprintf("%.2f%%", Accuracy(r.Completed, r.Words)),
			fmt.Sprintf("%d", r.Words),
			fmt.Sprintf("%d", r.WrongCount),
			fmt.Sprintf("%d", r.HalfCount),
			fmt.Sprintf("%.2f%%", Accuracy(r.Meaning, r.Words)),
		})
	}
	lines := append([]string{title}, textTable(cols, tableRows)...)
	return writeLines(w, append(lines, "")...)
}

// RenderFactTable prints the hardest multiplication facts.
func RenderFactTable(w io.Writer, aggs []model.FactAggregate, top int) error {
	facts := HardestFacts(aggs, top)
	if len(facts) == 0 {
		return writeLines(w, "No multiplication answers found.", "")
	}
	cols := []column{
		{title: "Fact"},
		{title: "Accuracy", right: true},
		{title: "Correct", right: true},
		{title: "Answered", right: true},
	}
	tableRows := make([][]string, 0, len(facts))
	for _, f := range facts {
		tableRows = append(tableRows, []string{
			fmt.Sprintf("%d × %d", f.A, f.B),
			fmt.Sprintf("%.2f%%", Accuracy(f.Correct, f.Total)),
			fmt.Sprintf("%d", f.Correct),
			fmt.Sprintf("%d", f.Total),
		})
	}
	lines := append([]string{"Hardest Facts"}, textTable(cols, tableRows)...)
	return writeLines(w, append(lines, "")...)
}
