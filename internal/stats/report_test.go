package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/aprendemos/internal/model"
	"github.com/verte-zerg/aprendemos/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "aprendemos.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	yes := true
	var ids []string
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		session := model.DicteeSession{
			LessonID:    "le-son-s",
			Level:       1,
			StartedAt:   start,
			EndedAt:     start.Add(30 * time.Second),
			Correct:     1,
			Total:       2,
			TotalPoints: 150 + i,
			Words: []model.DicteeWordResult{
				{Position: 0, Word: "sac", Rule: "s", Completed: true, MeaningCorrect: &yes, Points: 150 + i},
				{Position: 1, Word: "garçon", Rule: "ç", WrongCount: 6},
			},
		}
		id, err := st.InsertDicteeSession(ctx, session)
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}
	run := model.MultiplicaRun{
		StartedAt:    time.Unix(0, 0),
		EndedAt:      time.Unix(60, 0),
		Tables:       []int{7},
		TotalSeconds: 60,
		Score:        1,
		Answered:     2,
		History: []model.QuestionRecord{
			{A: 7, B: 8, UserAnswer: 54, CorrectAnswer: 56},
			{A: 2, B: 7, UserAnswer: 14, CorrectAnswer: 14, IsCorrect: true},
		},
	}
	if _, err := st.InsertMultiplicaRun(ctx, run); err != nil {
		t.Fatalf("insert run: %v", err)
	}

	cfg := model.StatsConfig{LessonID: "le-son-s", Last: 2, CurveWindow: 1}
	report, err := BuildReport(ctx, st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(report.Sessions))
	}
	if report.Sessions[0].SessionID != ids[1] || report.Sessions[1].SessionID != ids[2] {
		t.Fatalf("unexpected session ids: %+v", report.Sessions)
	}
	if len(report.WindowSessionIDs) != 1 || report.WindowSessionIDs[0] != ids[2] {
		t.Fatalf("unexpected window session ids: %v", report.WindowSessionIDs)
	}
	if len(report.RulesAll) != 2 {
		t.Fatalf("expected rule aggregates for all sessions, got %+v", report.RulesAll)
	}
	if len(report.RulesWindow) == 0 {
		t.Fatalf("expected rule aggregates for window sessions")
	}
	if len(report.Runs) != 1 || len(report.Facts) != 2 {
		t.Fatalf("unexpected runs %+v facts %+v", report.Runs, report.Facts)
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, RenderOptions{Width: 60, CurveWindow: 1, TopFacts: 5}); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sessions: 2", "Per-Rule (All)", "Per-Rule (Windowed)", "Focus next on: [ç]", "Best score: 1", "7 × 8"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
}

func TestBuildReportEmpty(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "aprendemos.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	report, err := BuildReport(context.Background(), st, model.StatsConfig{})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	var buf bytes.Buffer
	if err := report.Render(&buf, RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No dictée sessions found.") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
