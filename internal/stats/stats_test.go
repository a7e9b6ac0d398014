package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/aprendemos/internal/model"
)

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSparklineFlat(t *testing.T) {
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{0, 10}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
}

func TestWeakRules(t *testing.T) {
	aggs := []model.RuleAggregate{
		{Rule: "ss", Words: 4, Completed: 4},
		{Rule: "c", Words: 4, Completed: 2, WrongCount: 3},
		{Rule: "ç", Words: 4, Completed: 2, WrongCount: 1},
		{Rule: "sc", Words: 2, Completed: 2, HalfCount: 1},
	}
	got := WeakRules(aggs, 2)
	if len(got) != 2 || got[0] != "c" || got[1] != "ç" {
		t.Fatalf("unexpected weak rules: %v", got)
	}
	if all := WeakRules(aggs, 0); len(all) != 3 {
		t.Fatalf("expected 3 weak rules, got %v", all)
	}
}

func TestHardestFacts(t *testing.T) {
	aggs := []model.FactAggregate{
		{A: 2, B: 3, Correct: 3, Total: 3},
		{A: 7, B: 8, Correct: 1, Total: 4},
		{A: 6, B: 7, Correct: 1, Total: 2},
		{A: 6, B: 9, Correct: 2, Total: 8},
	}
	top := HardestFacts(aggs, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 facts, got %d", len(top))
	}
	if top[0].B != 9 || top[1].A != 7 || top[2].B != 7 {
		t.Fatalf("unexpected order: %+v", top)
	}
	if HardestFacts(aggs, 0) != nil {
		t.Fatalf("expected nil for n=0")
	}
}

func TestRenderRunSummaryIgnoresCancelledForBest(t *testing.T) {
	var buf bytes.Buffer
	runs := []model.RunAggregate{
		{RunID: "a", Score: 9, Answered: 10, Cancelled: true},
		{RunID: "b", Score: 4, Answered: 5},
	}
	if err := RenderRunSummary(&buf, runs); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Runs: 2 (1 cancelled)") || !strings.Contains(out, "Best score: 4") {
		t.Fatalf("unexpected summary:\n%s", out)
	}
}
