package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/aprendemos/internal/dictee"
)

const resultsHeight = 12

type dicteeResultsScreen struct {
	lesson  dictee.Lesson
	level   dictee.Level
	proMode bool
	results []dictee.RoundResult
	best    int
	record  bool
	words   viewport.Model
}

func newDicteeResults(a *App, lesson dictee.Lesson, level dictee.Level, proMode bool, results []dictee.RoundResult, best int, record bool) *dicteeResultsScreen {
	s := &dicteeResultsScreen{
		lesson:  lesson,
		level:   level,
		proMode: proMode,
		results: results,
		best:    best,
		record:  record,
		words:   viewport.New(boardWidth, min(resultsHeight, max(1, len(results)))),
	}
	s.words.SetContent(strings.Join(wordLines(results), "\n"))
	return s
}

func wordLines(results []dictee.RoundResult) []string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		mark := goodStyle.Render("✓")
		if !r.Completed {
			mark = badStyle.Render("✗")
		}
		meaning := pendingStyle.Render("·")
		if r.MeaningCorrect != nil {
			meaning = badStyle.Render("✗")
			if *r.MeaningCorrect {
				meaning = goodStyle.Render("✓")
			}
		}
		extra := ""
		if r.UsedFlash {
			extra = nearStyle.Render(" ⚡")
		}
		lines = append(lines, fmt.Sprintf("%s %-22s %s %-20s %4d pts%s",
			mark, r.Word.Display(), meaning, r.Word.Translation, r.Points, extra))
	}
	return lines
}

func (s *dicteeResultsScreen) update(a *App, msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(km, keys.Confirm), km.String() == "r":
		play := newDicteePlay(a, s.lesson, s.level, s.proMode)
		return a.show(play, play.beginWord(a))
	case key.Matches(km, keys.Back):
		return a.show(newLessonSelect(a, s.lesson.ID))
	}
	var cmd tea.Cmd
	s.words, cmd = s.words.Update(msg)
	return cmd
}

func (s *dicteeResultsScreen) view(a *App) string {
	correct := dictee.CorrectCount(s.results)
	total := len(s.results)
	pct := dictee.Percentage(correct, total)
	points := dictee.TotalPoints(s.results)

	lines := []string{
		titleStyle.Render(dictee.ResultMessage(pct)),
		subtleStyle.Render(fmt.Sprintf("%s %s · %s", s.lesson.Emoji, s.lesson.Title, s.level.Config().Label)),
		"",
		accentStyle.Render(fmt.Sprintf("%d pts", points)),
	}
	switch {
	case s.record:
		lines = append(lines, goodStyle.Render("¡Nuevo récord!"))
	case s.best > 0:
		lines = append(lines, subtleStyle.Render(fmt.Sprintf("Mejor: %d pts", s.best)))
	}
	lines = append(lines,
		fmt.Sprintf("%d / %d palabras correctas (%d%%)", correct, total, pct),
		fmt.Sprintf("%d / %d significados", dictee.MeaningCount(s.results), total),
		"",
		s.words.View(),
		"",
		a.help.ShortHelpView([]key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "jugar otra vez")),
			keys.Up, keys.Down, keys.Back,
		}),
	)
	return panelStyle.Render(strings.Join(lines, "\n"))
}
