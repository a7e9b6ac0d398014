package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const maxNameLength = 20

type menuItem int

const (
	itemDictee menuItem = iota
	itemMultiplica
	itemHistory
	itemSound
	itemName
	itemQuit
)

type menuScreen struct {
	cursor int
	items  []menuItem
}

func newMenu(a *App) *menuScreen {
	return &menuScreen{items: []menuItem{itemDictee, itemMultiplica, itemHistory, itemSound, itemName, itemQuit}}
}

func (s *menuScreen) label(a *App, item menuItem) string {
	switch item {
	case itemDictee:
		return "📝 Dictée"
	case itemMultiplica:
		return "✖️  Multiplica rápido"
	case itemHistory:
		return "📈 Historial"
	case itemSound:
		if a.platform.SoundEnabled {
			return "🔊 Sonido: sí"
		}
		return "🔇 Sonido: no"
	case itemName:
		return "✏️  Cambiar nombre"
	default:
		return "Salir"
	}
}

func (s *menuScreen) update(a *App, msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(km, keys.Up):
		s.cursor = (s.cursor - 1 + len(s.items)) % len(s.items)
	case key.Matches(km, keys.Down):
		s.cursor = (s.cursor + 1) % len(s.items)
	case key.Matches(km, keys.Sound):
		a.toggleSound()
	case key.Matches(km, keys.Back), km.String() == "q":
		return tea.Quit
	case key.Matches(km, keys.Confirm):
		switch s.items[s.cursor] {
		case itemDictee:
			return a.show(newLessonSelect(a, a.dictee.LastLessonID))
		case itemMultiplica:
			return a.show(newMultiplicaConfig(a))
		case itemHistory:
			return a.show(newHistory(a))
		case itemSound:
			a.toggleSound()
		case itemName:
			return a.show(newNameEntry(a))
		case itemQuit:
			return tea.Quit
		}
	}
	return nil
}

func (s *menuScreen) view(a *App) string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("¡Hola, %s!", a.platform.PlayerName)),
		subtleStyle.Render("¿Qué quieres practicar hoy?"),
		"",
	}
	for i, item := range s.items {
		lines = append(lines, choice(s.label(a, item), i == s.cursor))
	}
	lines = append(lines, "", a.help.ShortHelpView([]key.Binding{keys.Up, keys.Down, keys.Confirm, keys.Sound, keys.Back}))
	return panelStyle.Render(strings.Join(lines, "\n"))
}

type nameScreen struct {
	input textinput.Model
}

func newNameEntry(a *App) *nameScreen {
	input := textinput.New()
	input.Placeholder = "Tu nombre"
	input.CharLimit = maxNameLength
	input.Width = maxNameLength + 1
	input.SetValue(a.platform.PlayerName)
	input.Focus()
	return &nameScreen{input: input}
}

func (s *nameScreen) init(*App) tea.Cmd { return textinput.Blink }

func (s *nameScreen) update(a *App, msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Confirm):
			name := strings.TrimSpace(s.input.Value())
			if name == "" {
				return nil
			}
			a.platform.PlayerName = name
			if err := a.deps.Store.SavePlatform(a.ctx, a.platform); err != nil {
				a.deps.Log.WithError(err).Error("failed to save player name")
			}
			return a.show(newMenu(a))
		case key.Matches(km, keys.Back):
			if a.platform.PlayerName == "" {
				return tea.Quit
			}
			return a.show(newMenu(a))
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *nameScreen) view(a *App) string {
	lines := []string{
		titleStyle.Render("¡Bienvenido a aprendemos!"),
		subtleStyle.Render("¿Cómo te llamas?"),
		"",
		s.input.View(),
		"",
		a.help.ShortHelpView([]key.Binding{keys.Confirm, keys.Back}),
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}
