package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/aprendemos/internal/dictee"
)

type lessonSelectScreen struct {
	lessons []dictee.Lesson
	cursor  int
}

func newLessonSelect(a *App, preselect string) *lessonSelectScreen {
	s := &lessonSelectScreen{lessons: a.deps.Catalog.All()}
	for i, l := range s.lessons {
		if l.ID == preselect {
			s.cursor = i
		}
	}
	return s
}

func (s *lessonSelectScreen) update(a *App, msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok || len(s.lessons) == 0 {
		if ok && key.Matches(km, keys.Back) {
			return a.show(a.home())
		}
		return nil
	}
	switch {
	case key.Matches(km, keys.Up):
		s.cursor = (s.cursor - 1 + len(s.lessons)) % len(s.lessons)
	case key.Matches(km, keys.Down):
		s.cursor = (s.cursor + 1) % len(s.lessons)
	case key.Matches(km, keys.Sound):
		a.toggleSound()
	case key.Matches(km, keys.Confirm):
		return a.show(newConfigure(a, s.lessons[s.cursor]))
	case key.Matches(km, keys.Back):
		return a.show(a.home())
	}
	return nil
}

func (s *lessonSelectScreen) view(a *App) string {
	lines := []string{titleStyle.Render("Dictée"), subtleStyle.Render("Elige una lección"), ""}
	if len(s.lessons) == 0 {
		lines = append(lines, subtleStyle.Render("No hay lecciones."))
	}
	for i, l := range s.lessons {
		label := fmt.Sprintf("%s %s · %d palabras", l.Emoji, l.Title, l.TotalWords())
		lines = append(lines, choice(label, i == s.cursor))
		if score, ok := a.dictee.LessonScores[l.ID]; ok {
			lines = append(lines, "    "+subtleStyle.Render(fmt.Sprintf("Mejor: %d pts · último %d/%d", score.BestPoints, score.Correct, score.Total)))
		}
		if i == s.cursor && l.Description != "" {
			lines = append(lines, "    "+footerStyle.Render(l.Description))
		}
	}
	soundLabel := "sonido: no"
	if a.platform.SoundEnabled {
		soundLabel = "sonido: sí"
	}
	lines = append(lines, "", footerStyle.Render(soundLabel),
		a.help.ShortHelpView([]key.Binding{keys.Up, keys.Down, keys.Confirm, keys.Sound, keys.Back}))
	return panelStyle.Render(strings.Join(lines, "\n"))
}

type configureScreen struct {
	lesson  dictee.Lesson
	level   dictee.Level
	proMode bool
}

func newConfigure(a *App, lesson dictee.Lesson) *configureScreen {
	return &configureScreen{lesson: lesson, level: dictee.Level(a.dictee.Level), proMode: a.dictee.ProMode}
}

func (s *configureScreen) update(a *App, msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	levels := dictee.Levels()
	idx := max(0, int(s.level)-1)
	switch {
	case key.Matches(km, keys.Up), key.Matches(km, keys.Left):
		s.level = levels[(idx-1+len(levels))%len(levels)]
	case key.Matches(km, keys.Down), key.Matches(km, keys.Right):
		s.level = levels[(idx+1)%len(levels)]
	case key.Matches(km, keys.Pro):
		s.proMode = !s.proMode
	case key.Matches(km, keys.Sound):
		a.toggleSound()
	case key.Matches(km, keys.Confirm):
		a.dictee.Level = int(s.level)
		a.dictee.ProMode = s.proMode
		if err := a.deps.Store.SaveDictee(a.ctx, a.dictee); err != nil {
			a.deps.Log.WithError(err).Error("failed to save dictée settings")
		}
		play := newDicteePlay(a, s.lesson, s.level, s.proMode)
		return a.show(play, play.beginWord(a))
	case key.Matches(km, keys.Back):
		return a.show(newLessonSelect(a, s.lesson.ID))
	}
	return nil
}

func (s *configureScreen) view(a *App) string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s %s", s.lesson.Emoji, s.lesson.Title)),
		subtleStyle.Render("Nivel de dificultad"),
		"",
	}
	for _, lvl := range dictee.Levels() {
		cfg := lvl.Config()
		label := fmt.Sprintf("%-14s %2d s/palabra · %2d s/quiz · ×%.1f", cfg.Label, cfg.TimePerWord, cfg.TimePerQuiz, cfg.Multiplier)
		lines = append(lines, choice(label, lvl == s.level))
	}
	pro := "no"
	if s.proMode {
		pro = "sí"
	}
	lines = append(lines, "",
		fmt.Sprintf("Modo pro: %s", accentStyle.Render(pro)),
		footerStyle.Render("Oculta las casillas de las letras."),
		"",
		a.help.ShortHelpView([]key.Binding{keys.Up, keys.Down, keys.Pro, keys.Sound, keys.Confirm, keys.Back}))
	return panelStyle.Render(strings.Join(lines, "\n"))
}
