package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/aprendemos/internal/model"
	"github.com/verte-zerg/aprendemos/internal/statsui"
)

const defaultCurveWindow = 5

// historyScreen hosts the history browser until it asks to leave.
type historyScreen struct {
	browser *statsui.Model
}

func newHistory(a *App) *historyScreen {
	window := a.opts.CurveWindow
	if window <= 0 {
		window = defaultCurveWindow
	}
	cfg := model.StatsConfig{CurveWindow: window}
	return &historyScreen{browser: statsui.NewEmbedded(a.deps.Store, cfg, a.width, a.height)}
}

func (s *historyScreen) update(a *App, msg tea.Msg) tea.Cmd {
	if _, ok := msg.(statsui.ExitMsg); ok {
		return a.show(a.home())
	}
	_, cmd := s.browser.Update(msg)
	return cmd
}

func (s *historyScreen) view(*App) string {
	return s.browser.View()
}
