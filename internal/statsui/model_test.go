package statsui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/aprendemos/internal/model"
	"github.com/verte-zerg/aprendemos/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "aprendemos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestCurveWindowSteps(t *testing.T) {
	assert.Equal(t, 5, nextCurveWindow(1))
	assert.Equal(t, 10, nextCurveWindow(5))
	assert.Equal(t, 10, nextCurveWindow(7))
	assert.Equal(t, 1, prevCurveWindow(5))
	assert.Equal(t, 5, prevCurveWindow(10))
	assert.Equal(t, 5, prevCurveWindow(7))
}

func TestParseFilter(t *testing.T) {
	cfg, err := parseFilter(textinputValues{"le-son-s", "2026-01-02", "7", "3"}.models())
	require.NoError(t, err)
	assert.Equal(t, "le-son-s", cfg.LessonID)
	require.NotNil(t, cfg.Since)
	assert.Equal(t, 2026, cfg.Since.Year())
	assert.Equal(t, 7, cfg.Last)
	assert.Equal(t, 3, cfg.CurveWindow)

	_, err = parseFilter(textinputValues{"", "02/01/2026", "", ""}.models())
	assert.Error(t, err)
	_, err = parseFilter(textinputValues{"", "", "-1", ""}.models())
	assert.Error(t, err)
	_, err = parseFilter(textinputValues{"", "", "", "0"}.models())
	assert.Error(t, err)
}

func TestEmbeddedExitEmitsMessage(t *testing.T) {
	m := NewEmbedded(openStore(t), model.StatsConfig{CurveWindow: 1}, 100, 30)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, ExitMsg{}, cmd())
}

func TestViewShowsEmptyHistory(t *testing.T) {
	m := NewEmbedded(openStore(t), model.StatsConfig{CurveWindow: 1}, 100, 30)
	view := m.View()
	assert.True(t, strings.Contains(view, "No dictée sessions found."), view)
	m.moveTab(2)
	assert.Contains(t, m.View(), "No multiplica runs found.")
}

type textinputValues []string

func (v textinputValues) models() []textinput.Model {
	out := make([]textinput.Model, len(v))
	for i, value := range v {
		out[i] = textinput.New()
		out[i].SetValue(value)
	}
	return out
}
