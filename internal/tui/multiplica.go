package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/aprendemos/internal/model"
	"github.com/verte-zerg/aprendemos/internal/multiplica"
	"github.com/verte-zerg/aprendemos/internal/sound"
)

const tablesPerRow = 4

type multiplicaConfigScreen struct {
	cursor int
	tables map[int]bool
	time   int
}

func newMultiplicaConfig(a *App) *multiplicaConfigScreen {
	s := &multiplicaConfigScreen{tables: map[int]bool{}, time: a.multi.SelectedTime}
	for _, t := range a.multi.SelectedTables {
		s.tables[t] = true
	}
	return s
}

func (s *multiplicaConfigScreen) selected() []int {
	var out []int
	for _, t := range model.AllTables {
		if s.tables[t] {
			out = append(out, t)
		}
	}
	return out
}

func (s *multiplicaConfigScreen) update(a *App, msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	n := len(model.AllTables)
	switch {
	case key.Matches(km, keys.Left):
		s.cursor = (s.cursor - 1 + n) % n
	case key.Matches(km, keys.Right):
		s.cursor = (s.cursor + 1) % n
	case key.Matches(km, keys.Up):
		s.cursor = (s.cursor - tablesPerRow + n) % n
	case key.Matches(km, keys.Down):
		s.cursor = (s.cursor + tablesPerRow) % n
	case key.Matches(km, keys.Toggle):
		t := model.AllTables[s.cursor]
		// At least one table stays selected.
		if s.tables[t] && len(s.selected()) == 1 {
			return nil
		}
		s.tables[t] = !s.tables[t]
	case key.Matches(km, keys.All):
		for _, t := range model.AllTables {
			s.tables[t] = true
		}
	case key.Matches(km, keys.Time):
		idx := slices.Index(model.AllowedTimes, s.time)
		s.time = model.AllowedTimes[(idx+1)%len(model.AllowedTimes)]
	case key.Matches(km, keys.Sound):
		a.toggleSound()
	case key.Matches(km, keys.Reset):
		if err := a.deps.Store.ResetMultiplica(a.ctx); err != nil {
			a.deps.Log.WithError(err).Error("failed to reset multiplica settings")
		}
		a.multi = a.deps.Store.LoadMultiplica(a.ctx)
		*s = *newMultiplicaConfig(a)
	case key.Matches(km, keys.Confirm):
		a.multi.SelectedTables = s.selected()
		a.multi.SelectedTime = s.time
		if err := a.deps.Store.SaveMultiplica(a.ctx, a.multi); err != nil {
			a.deps.Log.WithError(err).Error("failed to save multiplica settings")
		}
		play := newMultiplicaPlay(a)
		return a.show(play, play.init(a))
	case key.Matches(km, keys.Back):
		return a.show(a.home())
	}
	return nil
}

func (s *multiplicaConfigScreen) view(a *App) string {
	lines := []string{
		titleStyle.Render("✖️  Multiplica rápido"),
		subtleStyle.Render(fmt.Sprintf("Récord: %d", a.multi.HighScore)),
		"",
		"Tablas",
	}
	var row []string
	for i, t := range model.AllTables {
		label := fmt.Sprintf("%2d", t)
		if s.tables[t] {
			label = "[" + label + "]"
		} else {
			label = " " + label + " "
		}
		switch {
		case i == s.cursor:
			label = accentStyle.Render(label)
		case s.tables[t]:
			label = selectedStyle.Render(label)
		default:
			label = pendingStyle.Render(label)
		}
		row = append(row, label)
		if len(row) == tablesPerRow {
			lines = append(lines, strings.Join(row, " "))
			row = nil
		}
	}
	lines = append(lines, "", fmt.Sprintf("Tiempo: %s", accentStyle.Render(fmt.Sprintf("%d s", s.time))), "",
		a.help.ShortHelpView([]key.Binding{keys.Toggle, keys.All, keys.Time, keys.Reset, keys.Confirm, keys.Back}))
	return panelStyle.Render(strings.Join(lines, "\n"))
}

type runTickMsg struct{ runID uint64 }

func runTick(id uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return runTickMsg{runID: id} })
}

type multiplicaPlayScreen struct {
	run       *multiplica.Run
	input     textinput.Model
	last      *model.QuestionRecord
	startedAt time.Time
	bar       progress.Model
}

func newMultiplicaPlay(a *App) *multiplicaPlayScreen {
	input := textinput.New()
	input.Placeholder = "?"
	input.CharLimit = 4
	input.Width = 6
	return &multiplicaPlayScreen{
		run:       multiplica.NewRun(a.deps.Gen, a.multi.SelectedTables, a.multi.SelectedTime),
		input:     input,
		startedAt: a.now(),
		bar:       progress.New(progress.WithSolidFill("#C89A3A"), progress.WithoutPercentage(), progress.WithWidth(boardWidth)),
	}
}

func (s *multiplicaPlayScreen) init(a *App) tea.Cmd {
	a.play(sound.CueTick)
	return runTick(s.run.ID())
}

func (s *multiplicaPlayScreen) update(a *App, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case runTickMsg:
		if msg.runID != s.run.ID() || s.run.Phase() == multiplica.PhaseOver {
			return nil
		}
		switch s.run.Tick() {
		case multiplica.EventTick:
			a.play(sound.CueTick)
		case multiplica.EventGo:
			a.play(sound.CueGo)
			return tea.Batch(s.input.Focus(), runTick(msg.runID))
		case multiplica.EventTimeUp:
			a.play(sound.CueTimeUp)
			return a.show(s.finish(a))
		}
		return runTick(msg.runID)
	case tea.KeyMsg:
		if key.Matches(msg, keys.Back) {
			s.run.Cancel()
			return a.show(s.finish(a))
		}
		if s.run.Phase() != multiplica.PhasePlaying {
			return nil
		}
		if key.Matches(msg, keys.Confirm) {
			rec, ok := s.run.Submit(s.input.Value())
			if !ok {
				return nil
			}
			s.last = &rec
			if rec.IsCorrect {
				a.play(sound.CueCorrect)
			} else {
				a.play(sound.CueIncorrect)
			}
			s.input.Reset()
			s.run.Next()
			return nil
		}
		if msg.Type == tea.KeyRunes && !onlyDigits(msg.Runes) {
			return nil
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func onlyDigits(runes []rune) bool {
	for _, r := range runes {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// finish stores the run, updates the record when it counts, and builds the
// results screen.
func (s *multiplicaPlayScreen) finish(a *App) *multiplicaResultsScreen {
	res := s.run.Result(a.multi.HighScore)
	if !res.Cancelled {
		if _, err := a.deps.Store.UpdateHighScore(a.ctx, res.Score); err != nil {
			a.deps.Log.WithError(err).Error("failed to update high score")
		}
		a.multi = a.deps.Store.LoadMultiplica(a.ctx)
	}
	if res.NewRecord {
		a.play(sound.CueRecord)
	}
	run := model.MultiplicaRun{
		ID:           uuid.NewString(),
		StartedAt:    s.startedAt,
		EndedAt:      a.now(),
		Tables:       s.run.Tables(),
		TotalSeconds: s.run.TotalSeconds(),
		Score:        res.Score,
		Answered:     res.Total,
		Cancelled:    res.Cancelled,
		History:      res.History,
	}
	if _, err := a.deps.Store.InsertMultiplicaRun(a.ctx, run); err != nil {
		a.deps.Log.WithError(err).Error("failed to save multiplica run")
	}
	a.deps.Log.WithFields(logrus.Fields{"score": res.Score, "answered": res.Total, "cancelled": res.Cancelled}).Info("multiplica run finished")
	return &multiplicaResultsScreen{result: res}
}

func (s *multiplicaPlayScreen) view(a *App) string {
	if s.run.Phase() == multiplica.PhaseCountdown {
		return panelStyle.Render(strings.Join([]string{
			subtleStyle.Render("Prepárate..."),
			"",
			accentStyle.Render(fmt.Sprintf("%d", s.run.Countdown())),
		}, "\n"))
	}
	q := s.run.Question()
	lines := []string{
		fmt.Sprintf("%s   %s",
			footerStyle.Render(fmt.Sprintf("%2ds", s.run.TimeLeft())),
			accentStyle.Render(fmt.Sprintf("%d aciertos", s.run.Score()))),
		s.bar.ViewAs(float64(s.run.TimeLeft()) / float64(s.run.TotalSeconds())),
		"",
		titleStyle.Render(fmt.Sprintf("%d × %d =", q.A, q.B)) + " " + s.input.View(),
		"",
	}
	if s.last != nil {
		if s.last.IsCorrect {
			lines = append(lines, goodStyle.Render("¡Correcto!"))
		} else {
			lines = append(lines, badStyle.Render(fmt.Sprintf("%d × %d = %d", s.last.A, s.last.B, s.last.CorrectAnswer)))
		}
	}
	lines = append(lines, "", a.help.ShortHelpView([]key.Binding{keys.Confirm, keys.Back}))
	return panelStyle.Render(strings.Join(lines, "\n"))
}

type multiplicaResultsScreen struct {
	result multiplica.Result
}

func (s *multiplicaResultsScreen) update(a *App, msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(km, keys.Confirm), km.String() == "r":
		play := newMultiplicaPlay(a)
		return a.show(play, play.init(a))
	case key.Matches(km, keys.Back):
		return a.show(newMultiplicaConfig(a))
	}
	return nil
}

func (s *multiplicaResultsScreen) view(a *App) string {
	res := s.result
	lines := []string{titleStyle.Render(res.Message())}
	if res.Cancelled {
		lines = append(lines, subtleStyle.Render("Partida parcial: no cuenta para el récord."))
	}
	lines = append(lines, "",
		accentStyle.Render(fmt.Sprintf("%d aciertos", res.Score)),
		fmt.Sprintf("%d respuestas · %d%% de precisión", res.Total, res.Accuracy()),
	)
	if res.NewRecord {
		lines = append(lines, goodStyle.Render("¡Nuevo récord!"))
	} else {
		lines = append(lines, subtleStyle.Render(fmt.Sprintf("Récord: %d", a.multi.HighScore)))
	}
	if mistakes := res.Mistakes(); len(mistakes) > 0 {
		lines = append(lines, "", "Para repasar")
		for _, m := range mistakes {
			lines = append(lines, fmt.Sprintf("  %d × %d = %s  %s",
				m.A, m.B, goodStyle.Render(fmt.Sprintf("%d", m.CorrectAnswer)),
				strikeStyle.Render(fmt.Sprintf("%d", m.UserAnswer))))
		}
	}
	lines = append(lines, "", a.help.ShortHelpView([]key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "jugar otra vez")),
		keys.Back,
	}))
	return panelStyle.Render(strings.Join(lines, "\n"))
}
