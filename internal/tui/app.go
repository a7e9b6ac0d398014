// Package tui provides the Bubble Tea game shell: menu, dictée screens,
// multiplication screens and the history browser.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/aprendemos/internal/dictee"
	"github.com/verte-zerg/aprendemos/internal/generator"
	"github.com/verte-zerg/aprendemos/internal/lessons"
	"github.com/verte-zerg/aprendemos/internal/model"
	"github.com/verte-zerg/aprendemos/internal/sound"
	"github.com/verte-zerg/aprendemos/internal/speech"
	"github.com/verte-zerg/aprendemos/internal/store"
)

// Deps are the collaborators shared by every screen.
type Deps struct {
	Store      *store.Store
	Catalog    *lessons.Catalog
	Speaker    speech.Speaker
	Sound      sound.Player
	Log        logrus.FieldLogger
	Gen        *generator.Generator
	Rand       *dictee.Randomizer
	SpeechRate float64
	Now        func() time.Time
}

// Start selects the first screen.
type Start int

const (
	StartMenu Start = iota
	StartDictee
	StartMultiplica
	StartHistory
)

// Options configures NewApp.
type Options struct {
	Start Start
	// LessonID preselects a lesson when starting on the dictée screens.
	LessonID string
	// CurveWindow is the initial moving-average window of the history browser.
	CurveWindow int
}

// screen is one page of the app. Screens return the command to run next and
// switch pages through App.show.
type screen interface {
	update(a *App, msg tea.Msg) tea.Cmd
	view(a *App) string
}

// App routes messages to the active screen and owns the persisted settings.
type App struct {
	deps     Deps
	opts     Options
	ctx      context.Context
	help     help.Model
	platform model.PlatformSettings
	dictee   model.DicteeSettings
	multi    model.MultiplicaSettings

	width  int
	height int
	screen screen
}

// NewApp loads settings and builds the first screen.
func NewApp(deps Deps, opts Options) *App {
	if deps.Catalog == nil {
		deps.Catalog = lessons.NewCatalog()
	}
	if deps.Speaker == nil {
		deps.Speaker = speech.Nop{}
	}
	if deps.Sound == nil {
		deps.Sound = sound.Nop{}
	}
	if deps.Log == nil {
		deps.Log = logrus.New()
	}
	if deps.Gen == nil {
		deps.Gen = generator.New()
	}
	if deps.Rand == nil {
		deps.Rand = dictee.NewRandomizer()
	}
	if deps.SpeechRate <= 0 {
		deps.SpeechRate = speech.DefaultRate
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	a := &App{deps: deps, opts: opts, ctx: context.Background(), help: help.New()}
	a.platform = deps.Store.LoadPlatform(a.ctx)
	a.dictee = deps.Store.LoadDictee(a.ctx)
	a.multi = deps.Store.LoadMultiplica(a.ctx)
	deps.Sound.SetEnabled(a.platform.SoundEnabled)

	switch opts.Start {
	case StartDictee:
		a.screen = newLessonSelect(a, opts.LessonID)
		if l, ok := deps.Catalog.Find(opts.LessonID); ok {
			a.screen = newConfigure(a, l)
		}
	case StartMultiplica:
		a.screen = newMultiplicaConfig(a)
	case StartHistory:
		a.screen = newHistory(a)
	default:
		a.screen = a.home()
	}
	return a
}

// home returns the menu, or the name prompt when no player name is stored.
func (a *App) home() screen {
	if a.platform.PlayerName == "" {
		return newNameEntry(a)
	}
	return newMenu(a)
}

func (a *App) show(s screen, cmds ...tea.Cmd) tea.Cmd {
	a.screen = s
	return tea.Batch(append(cmds, tea.ClearScreen)...)
}

func (a *App) now() time.Time { return a.deps.Now() }

func (a *App) play(c sound.Cue) { a.deps.Sound.Play(c) }

func (a *App) speak(w dictee.Word) {
	if !a.platform.SoundEnabled || !a.deps.Speaker.Supported() {
		return
	}
	a.deps.Speaker.Speak(w.Spoken(), a.deps.SpeechRate)
}

func (a *App) toggleSound() {
	a.platform.SoundEnabled = !a.platform.SoundEnabled
	a.deps.Sound.SetEnabled(a.platform.SoundEnabled)
	if !a.platform.SoundEnabled {
		a.deps.Speaker.Stop()
	}
	if err := a.deps.Store.SavePlatform(a.ctx, a.platform); err != nil {
		a.deps.Log.WithError(err).Error("failed to save platform settings")
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	if s, ok := a.screen.(interface{ init(*App) tea.Cmd }); ok {
		return s.init(a)
	}
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			a.deps.Speaker.Stop()
			return a, tea.Quit
		}
	}
	return a, a.screen.update(a, msg)
}

// View implements tea.Model.
func (a *App) View() string {
	content := a.screen.view(a)
	if a.width == 0 || a.height == 0 {
		return content
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}
