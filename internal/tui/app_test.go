package tui

import (
	"context"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/aprendemos/internal/dictee"
	"github.com/verte-zerg/aprendemos/internal/generator"
	"github.com/verte-zerg/aprendemos/internal/lessons"
	"github.com/verte-zerg/aprendemos/internal/logging"
	"github.com/verte-zerg/aprendemos/internal/model"
	"github.com/verte-zerg/aprendemos/internal/multiplica"
	"github.com/verte-zerg/aprendemos/internal/sound"
	"github.com/verte-zerg/aprendemos/internal/speech"
	"github.com/verte-zerg/aprendemos/internal/store"
)

type recordingPlayer struct {
	cues []sound.Cue
}

func (p *recordingPlayer) Play(c sound.Cue) { p.cues = append(p.cues, c) }
func (p *recordingPlayer) SetEnabled(bool)  {}
func (p *recordingPlayer) Enabled() bool    { return true }

var testLesson = dictee.Lesson{
	ID:    "test-sel",
	Title: "Sel",
	Emoji: "🧂",
	Groups: []dictee.Group{{
		Label: "s",
		Words: []dictee.Word{{Word: "sel", Article: "le", Translation: "sal", AltTranslations: []string{"sol", "sur"}}},
	}},
}

type testApp struct {
	*App
	sound *recordingPlayer
	store *store.Store
}

func newTestApp(t *testing.T, opts Options) testApp {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "aprendemos.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if cerr := st.Close(); cerr != nil {
			t.Fatalf("failed to close store: %v", cerr)
		}
	})
	player := &recordingPlayer{}
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	a := NewApp(Deps{
		Store:   st,
		Catalog: lessons.NewCatalog(testLesson),
		Speaker: speech.Nop{},
		Sound:   player,
		Log:     logging.Discard(),
		Gen:     generator.NewSeeded(7),
		Rand:    dictee.NewSeededRandomizer(1, 2),
		Now:     func() time.Time { return now },
	}, opts)
	return testApp{App: a, sound: player, store: st}
}

func (ta testApp) send(msg tea.Msg) tea.Cmd {
	_, cmd := ta.Update(msg)
	return cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func startDictee(t *testing.T) (testApp, *dicteePlayScreen) {
	t.Helper()
	ta := newTestApp(t, Options{Start: StartDictee, LessonID: testLesson.ID})
	require.IsType(t, &configureScreen{}, ta.screen)
	ta.send(enterKey)
	play, ok := ta.screen.(*dicteePlayScreen)
	require.True(t, ok)
	return ta, play
}

func TestHomeAsksForNameFirst(t *testing.T) {
	ta := newTestApp(t, Options{})
	require.IsType(t, &nameScreen{}, ta.screen)

	ta.send(enterKey)
	assert.IsType(t, &nameScreen{}, ta.screen, "blank names are refused")

	ta.send(keyRunes("Léa"))
	ta.send(enterKey)
	assert.IsType(t, &menuScreen{}, ta.screen)
	assert.Equal(t, "Léa", ta.store.LoadPlatform(context.Background()).PlayerName)
}

func TestDicteeFullWordFlow(t *testing.T) {
	ta, play := startDictee(t)

	ta.send(keyRunes("sel"))
	require.Equal(t, dictee.PhaseReview, play.session.Phase())
	assert.Equal(t, []sound.Cue{sound.CueCorrect}, ta.sound.cues)

	cmd := ta.send(enterKey)
	require.NotNil(t, cmd)
	quiz := play.session.Quiz()
	require.NotNil(t, quiz)
	idx := slices.Index(quiz.Options(), quiz.Answer())
	require.GreaterOrEqual(t, idx, 0)

	ta.send(keyRunes(strconv.Itoa(idx + 1)))
	require.True(t, quiz.Answered())

	ta.send(enterKey)
	results, ok := ta.screen.(*dicteeResultsScreen)
	require.True(t, ok)
	require.Len(t, results.results, 1)
	assert.True(t, results.record)
	assert.Contains(t, ta.sound.cues, sound.CueRecord)

	ctx := context.Background()
	settings := ta.store.LoadDictee(ctx)
	assert.Equal(t, testLesson.ID, settings.LastLessonID)
	assert.Equal(t, results.results[0].Points, settings.LessonScores[testLesson.ID].BestPoints)

	sessions, err := ta.store.ListSessions(ctx, model.StatsConfig{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 1, sessions[0].Correct)
	assert.Positive(t, sessions[0].TotalPoints)
}

func TestDicteeStaleWordTickIgnored(t *testing.T) {
	ta, play := startDictee(t)
	id := play.session.RoundID()

	assert.Nil(t, ta.send(wordTickMsg{roundID: id + 1000}))
	assert.Equal(t, 40, play.timeLeft)

	assert.NotNil(t, ta.send(wordTickMsg{roundID: id}))
	assert.Equal(t, 39, play.timeLeft)
}

func TestDicteeFlashPausesTimerAndKeyboard(t *testing.T) {
	ta, play := startDictee(t)
	id := play.session.RoundID()

	require.NotNil(t, ta.send(tea.KeyMsg{Type: tea.KeyCtrlF}))
	require.True(t, play.flashing())
	assert.Equal(t, 4.0, play.session.Round().Lives())

	assert.NotNil(t, ta.send(wordTickMsg{roundID: id}))
	assert.Equal(t, 40, play.timeLeft)

	ta.send(keyRunes("s"))
	assert.False(t, play.session.Round().Filled(0))

	ta.send(flashDoneMsg{roundID: id})
	assert.False(t, play.flashing())
	assert.False(t, play.session.CanFlash())

	ta.send(keyRunes("s"))
	assert.True(t, play.session.Round().Filled(0))
}

func TestDicteeTimeoutFailsWordAndQuiz(t *testing.T) {
	ta, play := startDictee(t)
	id := play.session.RoundID()

	play.timeLeft = 1
	assert.Nil(t, ta.send(wordTickMsg{roundID: id}))
	require.Equal(t, dictee.PhaseReview, play.session.Phase())
	res, ok := play.session.LastResult()
	require.True(t, ok)
	assert.False(t, res.Completed)
	assert.Equal(t, sound.CueIncorrect, ta.sound.cues[len(ta.sound.cues)-1])

	ta.send(enterKey)
	play.quizLeft = 1
	ta.send(quizTickMsg{roundID: id})
	quiz := play.session.Quiz()
	require.True(t, quiz.TimedOut())
	assert.Contains(t, play.view(ta.App), "¡Se acabó el tiempo!")

	ta.send(enterKey)
	results, ok := ta.screen.(*dicteeResultsScreen)
	require.True(t, ok)
	assert.False(t, results.record)
	assert.NotContains(t, ta.sound.cues, sound.CueRecord)
}

func TestDicteeEscReturnsToLessons(t *testing.T) {
	ta, _ := startDictee(t)
	ta.send(escKey)
	assert.IsType(t, &lessonSelectScreen{}, ta.screen)
}

func TestRenderFooter(t *testing.T) {
	ta, play := startDictee(t)
	play.proMode = true
	footer := play.renderFooter()
	assert.Contains(t, footer, "Palabra 1 / 1")
	assert.Contains(t, footer, "0 pts")
	assert.Contains(t, footer, "Débutant")
	assert.Contains(t, footer, "pro")
	assert.NotEmpty(t, play.view(ta.App))
}

func TestLivesString(t *testing.T) {
	out := livesString(4.5, 6)
	assert.Equal(t, 5, strings.Count(out, "♥"))
	assert.Equal(t, 1, strings.Count(out, "♡"))

	out = livesString(0, 6)
	assert.Equal(t, 0, strings.Count(out, "♥"))
	assert.Equal(t, 6, strings.Count(out, "♡"))
}

func TestMultiplicaConfigSavesSelection(t *testing.T) {
	ta := newTestApp(t, Options{Start: StartMultiplica})
	require.IsType(t, &multiplicaConfigScreen{}, ta.screen)

	ta.send(keyRunes("a"))
	ta.send(keyRunes("t"))
	ta.send(enterKey)
	assert.IsType(t, &multiplicaPlayScreen{}, ta.screen)

	saved := ta.store.LoadMultiplica(context.Background())
	assert.Equal(t, model.AllTables, saved.SelectedTables)
	assert.Equal(t, 90, saved.SelectedTime)
}

func TestMultiplicaConfigKeepsOneTable(t *testing.T) {
	ta := newTestApp(t, Options{Start: StartMultiplica})
	ta.multi.SelectedTables = []int{1}
	cfg := newMultiplicaConfig(ta.App)
	ta.screen = cfg

	ta.send(tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, []int{1}, cfg.selected())
}

func startMultiplica(t *testing.T) (testApp, *multiplicaPlayScreen) {
	t.Helper()
	ta := newTestApp(t, Options{Start: StartMultiplica})
	ta.send(enterKey)
	play, ok := ta.screen.(*multiplicaPlayScreen)
	require.True(t, ok)
	for range multiplica.CountdownSteps {
		require.NotNil(t, ta.send(runTickMsg{runID: play.run.ID()}))
	}
	require.Equal(t, multiplica.PhasePlaying, play.run.Phase())
	assert.Equal(t, []sound.Cue{sound.CueTick, sound.CueTick, sound.CueTick, sound.CueGo}, ta.sound.cues)
	return ta, play
}

func TestMultiplicaRunToTimeUp(t *testing.T) {
	ta, play := startMultiplica(t)

	q := play.run.Question()
	ta.send(keyRunes("x"))
	ta.send(keyRunes(strconv.Itoa(q.Answer())))
	ta.send(enterKey)
	assert.Equal(t, 1, play.run.Score())
	assert.Empty(t, play.input.Value())
	assert.Equal(t, sound.CueCorrect, ta.sound.cues[len(ta.sound.cues)-1])

	assert.Nil(t, ta.send(runTickMsg{runID: play.run.ID() + 1000}))

	for range play.run.TotalSeconds() {
		ta.send(runTickMsg{runID: play.run.ID()})
	}
	results, ok := ta.screen.(*multiplicaResultsScreen)
	require.True(t, ok)
	assert.True(t, results.result.NewRecord)
	assert.Contains(t, ta.sound.cues, sound.CueTimeUp)
	assert.Contains(t, ta.sound.cues, sound.CueRecord)

	ctx := context.Background()
	assert.Equal(t, 1, ta.store.LoadMultiplica(ctx).HighScore)
	runs, err := ta.store.ListRuns(ctx, model.StatsConfig{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.False(t, runs[0].Cancelled)
}

func TestMultiplicaCancelDoesNotSetRecord(t *testing.T) {
	ta, play := startMultiplica(t)

	q := play.run.Question()
	ta.send(keyRunes(strconv.Itoa(q.Answer())))
	ta.send(enterKey)
	ta.send(escKey)

	results, ok := ta.screen.(*multiplicaResultsScreen)
	require.True(t, ok)
	assert.True(t, results.result.Cancelled)
	assert.False(t, results.result.NewRecord)
	assert.Contains(t, results.view(ta.App), "no cuenta para el récord")

	ctx := context.Background()
	assert.Equal(t, 0, ta.store.LoadMultiplica(ctx).HighScore)
	runs, err := ta.store.ListRuns(ctx, model.StatsConfig{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].Cancelled)

	ta.send(escKey)
	assert.IsType(t, &multiplicaConfigScreen{}, ta.screen)
}

func TestHistoryReturnsToMenu(t *testing.T) {
	ta := newTestApp(t, Options{Start: StartHistory})
	ta.platform.PlayerName = "Léa"
	require.IsType(t, &historyScreen{}, ta.screen)

	cmd := ta.send(escKey)
	require.NotNil(t, cmd)
	ta.send(cmd())
	assert.IsType(t, &menuScreen{}, ta.screen)
}
