package tui

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/aprendemos/internal/dictee"
	"github.com/verte-zerg/aprendemos/internal/model"
	"github.com/verte-zerg/aprendemos/internal/sound"
)

const (
	flashDuration = 4 * time.Second
	speakDelay    = 400 * time.Millisecond
	boardWidth    = 60
)

// Timer messages carry the identity of the round that scheduled them. A
// message for any other round is dropped, which ends its tick chain.
type (
	wordTickMsg  struct{ roundID uint64 }
	quizTickMsg  struct{ roundID uint64 }
	flashDoneMsg struct{ roundID uint64 }
	speakMsg     struct{ roundID uint64 }
)

type dicteePlayScreen struct {
	lesson    dictee.Lesson
	level     dictee.Level
	proMode   bool
	session   *dictee.Session
	startedAt time.Time

	timeLeft   int
	quizLeft   int
	wordStart  time.Time
	flashRound uint64
	outcome    dictee.GuessOutcome
	quizCursor int

	accentBase rune
	accentIdx  int

	bar progress.Model
}

func newDicteePlay(a *App, lesson dictee.Lesson, level dictee.Level, proMode bool) *dicteePlayScreen {
	return &dicteePlayScreen{
		lesson:    lesson,
		level:     level,
		proMode:   proMode,
		session:   dictee.NewLessonSession(lesson, a.deps.Rand),
		startedAt: a.now(),
		bar:       progress.New(progress.WithSolidFill("#C89A3A"), progress.WithoutPercentage(), progress.WithWidth(boardWidth)),
	}
}

func wordTick(id uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return wordTickMsg{roundID: id} })
}

func quizTick(id uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return quizTickMsg{roundID: id} })
}

// beginWord resets the per-word presentation state and schedules the word
// timer and the delayed utterance for the live round.
func (s *dicteePlayScreen) beginWord(a *App) tea.Cmd {
	id := s.session.RoundID()
	if id == 0 {
		return nil
	}
	s.timeLeft = s.level.Config().TimePerWord
	s.quizLeft = s.level.Config().TimePerQuiz
	s.wordStart = a.now()
	s.flashRound = 0
	s.outcome = dictee.GuessIgnored
	s.quizCursor = 0
	s.closeAccents()
	return tea.Batch(
		wordTick(id),
		tea.Tick(speakDelay, func(time.Time) tea.Msg { return speakMsg{roundID: id} }),
	)
}

func (s *dicteePlayScreen) flashing() bool {
	return s.flashRound != 0 && s.flashRound == s.session.RoundID()
}

func (s *dicteePlayScreen) closeAccents() {
	s.accentBase = 0
	s.accentIdx = 0
}

func (s *dicteePlayScreen) update(a *App, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.bar.Width = min(boardWidth, max(10, msg.Width-10))
		return nil
	case wordTickMsg:
		return s.onWordTick(a, msg.roundID)
	case quizTickMsg:
		return s.onQuizTick(a, msg.roundID)
	case flashDoneMsg:
		if msg.roundID == s.flashRound {
			s.flashRound = 0
		}
		return nil
	case speakMsg:
		if msg.roundID == s.session.RoundID() {
			if w, ok := s.session.Current(); ok {
				a.speak(w.Word)
			}
		}
		return nil
	case tea.KeyMsg:
		if key.Matches(msg, keys.Back) && s.accentBase == 0 {
			a.deps.Speaker.Stop()
			return a.show(newLessonSelect(a, s.lesson.ID))
		}
		if key.Matches(msg, keys.Listen) {
			if w, ok := s.session.Current(); ok {
				a.speak(w.Word)
			}
			return nil
		}
		switch s.session.Phase() {
		case dictee.PhaseSpelling:
			return s.onSpellingKey(a, msg)
		case dictee.PhaseReview:
			if key.Matches(msg, keys.Confirm) {
				if s.session.StartQuiz() != nil {
					return quizTick(s.session.RoundID())
				}
			}
		case dictee.PhaseQuiz:
			return s.onQuizKey(a, msg)
		}
	}
	return nil
}

func (s *dicteePlayScreen) onWordTick(a *App, id uint64) tea.Cmd {
	if id != s.session.RoundID() || s.session.Phase() != dictee.PhaseSpelling {
		return nil
	}
	if s.flashing() {
		return wordTick(id)
	}
	s.timeLeft--
	if s.timeLeft > 0 {
		return wordTick(id)
	}
	s.timeLeft = 0
	if s.session.ForceFail(id) {
		s.roundEnded(a)
	}
	return nil
}

func (s *dicteePlayScreen) onQuizTick(a *App, id uint64) tea.Cmd {
	quiz := s.session.Quiz()
	if id != s.session.RoundID() || quiz == nil || quiz.Answered() {
		return nil
	}
	s.quizLeft--
	if s.quizLeft > 0 {
		return quizTick(id)
	}
	s.quizLeft = 0
	if s.session.QuizTimeout(id) {
		a.play(sound.CueIncorrect)
	}
	return nil
}

func (s *dicteePlayScreen) roundEnded(a *App) {
	s.closeAccents()
	s.flashRound = 0
	if res, ok := s.session.LastResult(); ok && res.Completed {
		a.play(sound.CueCorrect)
		return
	}
	a.play(sound.CueIncorrect)
}

func (s *dicteePlayScreen) guess(a *App, r rune) {
	s.outcome = s.session.GuessLetter(r)
	if s.session.Phase() != dictee.PhaseSpelling {
		s.roundEnded(a)
	}
}

func (s *dicteePlayScreen) onSpellingKey(a *App, msg tea.KeyMsg) tea.Cmd {
	if s.flashing() {
		return nil
	}
	if key.Matches(msg, keys.Flash) {
		if !s.session.CanFlash() {
			return nil
		}
		id := s.session.RoundID()
		ok := s.session.ActivateFlash()
		if s.session.Phase() != dictee.PhaseSpelling {
			s.roundEnded(a)
			return nil
		}
		if !ok {
			return nil
		}
		s.flashRound = id
		s.closeAccents()
		return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{roundID: id} })
	}
	if s.accentBase != 0 {
		return s.onAccentKey(a, msg)
	}
	if key.Matches(msg, keys.Accent) {
		s.openAccents('e')
		return nil
	}
	if msg.Type != tea.KeyRunes {
		return nil
	}
	if msg.Alt && len(msg.Runes) == 1 && dictee.Variants(msg.Runes[0]) != nil {
		s.openAccents(msg.Runes[0])
		return nil
	}
	for _, r := range msg.Runes {
		if s.session.Phase() != dictee.PhaseSpelling {
			break
		}
		s.guess(a, r)
	}
	return nil
}

func (s *dicteePlayScreen) openAccents(base rune) {
	s.accentBase = unicode.ToLower(base)
	s.accentIdx = 0
}

// onAccentKey drives the accent picker: a base letter switches the row,
// left/right moves, enter guesses, esc or tab closes.
func (s *dicteePlayScreen) onAccentKey(a *App, msg tea.KeyMsg) tea.Cmd {
	variants := dictee.Variants(s.accentBase)
	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Accent):
		s.closeAccents()
	case msg.Type == tea.KeyLeft:
		s.accentIdx = (s.accentIdx - 1 + len(variants)) % len(variants)
	case msg.Type == tea.KeyRight:
		s.accentIdx = (s.accentIdx + 1) % len(variants)
	case key.Matches(msg, keys.Confirm):
		r := variants[s.accentIdx]
		s.closeAccents()
		s.guess(a, r)
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		r := msg.Runes[0]
		if dictee.Variants(r) != nil {
			s.openAccents(r)
			return nil
		}
		if idx := int(r - '1'); idx >= 0 && idx < len(variants) {
			s.closeAccents()
			s.guess(a, variants[idx])
		}
	}
	return nil
}

func (s *dicteePlayScreen) onQuizKey(a *App, msg tea.KeyMsg) tea.Cmd {
	quiz := s.session.Quiz()
	if quiz == nil {
		return nil
	}
	if quiz.Answered() {
		if key.Matches(msg, keys.Confirm) {
			return s.finishWord(a, quiz.Correct())
		}
		return nil
	}
	options := quiz.Options()
	switch {
	case key.Matches(msg, keys.Up):
		s.quizCursor = (s.quizCursor - 1 + len(options)) % len(options)
	case key.Matches(msg, keys.Down):
		s.quizCursor = (s.quizCursor + 1) % len(options)
	case key.Matches(msg, keys.Confirm):
		s.answer(a, s.quizCursor)
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		if idx := int(msg.Runes[0] - '1'); idx >= 0 && idx < len(options) {
			s.quizCursor = idx
			s.answer(a, idx)
		}
	}
	return nil
}

func (s *dicteePlayScreen) answer(a *App, idx int) {
	quiz := s.session.Quiz()
	if !quiz.SelectIndex(idx) {
		return
	}
	if c := quiz.Correct(); c != nil && *c {
		a.play(sound.CueCorrect)
		return
	}
	a.play(sound.CueIncorrect)
}

// finishWord scores the word with the time elapsed since it appeared and
// moves on, ending the session after the last word.
func (s *dicteePlayScreen) finishWord(a *App, meaning *bool) tea.Cmd {
	timeUsed := int(math.Round(a.now().Sub(s.wordStart).Seconds()))
	if _, ok := s.session.FinishWord(meaning, timeUsed, s.level); !ok {
		return nil
	}
	s.session.Advance()
	if s.session.Finished() {
		return a.show(s.finish(a))
	}
	return s.beginWord(a)
}

// finish persists the lesson score and the session history, then builds the
// results screen.
func (s *dicteePlayScreen) finish(a *App) *dicteeResultsScreen {
	results := s.session.Results()
	correct := dictee.CorrectCount(results)
	total := len(results)
	points := dictee.TotalPoints(results)

	a.dictee.RecordLesson(s.lesson.ID, correct, total, points)
	if err := a.deps.Store.SaveDictee(a.ctx, a.dictee); err != nil {
		a.deps.Log.WithError(err).Error("failed to save dictée settings")
	}
	best := a.dictee.LessonScores[s.lesson.ID].BestPoints
	record := dictee.IsNewRecord(points, best)
	if record {
		a.play(sound.CueRecord)
	}

	session := model.DicteeSession{
		ID:          uuid.NewString(),
		LessonID:    s.lesson.ID,
		Level:       int(s.level),
		ProMode:     s.proMode,
		StartedAt:   s.startedAt,
		EndedAt:     a.now(),
		Correct:     correct,
		Total:       total,
		TotalPoints: points,
		Words: lo.Map(results, func(r dictee.RoundResult, i int) model.DicteeWordResult {
			return model.DicteeWordResult{
				Position:       i,
				Word:           r.Word.Word,
				Rule:           r.Rule,
				Completed:      r.Completed,
				WrongCount:     r.WrongCount(),
				HalfCount:      r.HalfCount(),
				UsedFlash:      r.UsedFlash,
				MeaningCorrect: r.MeaningCorrect,
				TimeUsed:       r.TimeUsed,
				Points:         r.Points,
			}
		}),
	}
	if _, err := a.deps.Store.InsertDicteeSession(a.ctx, session); err != nil {
		a.deps.Log.WithError(err).Error("failed to save dictée session")
	}
	a.deps.Log.WithFields(logrus.Fields{
		"lesson": s.lesson.ID,
		"points": points,
		"words":  fmt.Sprintf("%d/%d", correct, total),
	}).Info("dictée session finished")
	return newDicteeResults(a, s.lesson, s.level, s.proMode, results, best, record)
}

func livesString(lives, maxLives float64) string {
	full := int(math.Max(0, math.Floor(lives)))
	half := lives-float64(full) >= 0.5
	empty := int(maxLives) - full
	if half {
		empty--
	}
	var b strings.Builder
	b.WriteString(badStyle.Render(strings.Repeat("♥", full)))
	if half {
		b.WriteString(nearStyle.Render("♥"))
	}
	b.WriteString(pendingStyle.Render(strings.Repeat("♡", max(0, empty))))
	return b.String()
}

// renderFooter summarizes session progress for the status line.
func (s *dicteePlayScreen) renderFooter() string {
	if s.session.Finished() {
		return ""
	}
	segments := []string{
		fmt.Sprintf("Palabra %d / %d", s.session.Index()+1, s.session.Total()),
		fmt.Sprintf("%d pts", s.session.TotalPoints()),
		s.level.Config().Label,
	}
	if s.proMode {
		segments = append(segments, "pro")
	}
	return footerStyle.Render(strings.Join(segments, "  ·  "))
}

func (s *dicteePlayScreen) view(a *App) string {
	round := s.session.Round()
	current, ok := s.session.Current()
	if round == nil || !ok {
		return ""
	}
	word := current.Word
	lines := []string{
		s.renderFooter() + "   " + livesString(round.Lives(), round.MaxLives()),
		s.bar.ViewAs(float64(s.session.Index()) / float64(max(1, s.session.Total()))),
		"",
	}

	switch s.session.Phase() {
	case dictee.PhaseSpelling:
		lines = append(lines, accentStyle.Render(current.Rule), "")
		timer := fmt.Sprintf("%2ds ", s.timeLeft)
		lines = append(lines, footerStyle.Render(timer)+s.bar.ViewAs(float64(s.timeLeft)/float64(s.level.Config().TimePerWord)), "")
		if s.flashing() {
			lines = append(lines, flashStyle.Render(titleStyle.Render(word.Display())), nearStyle.Render("Flash! Memoriza la palabra..."))
			break
		}
		var board []styledRune
		if s.proMode {
			board = buildProBoard(round, s.outcome)
		} else {
			board = spaced(buildBoard(round, s.outcome))
		}
		boardLine := wrapStyledRunes(board, boardWidth)
		if word.Article != "" {
			boardLine = lipgloss.JoinHorizontal(lipgloss.Top, articleStyle.Render(word.Article)+"  ", boardLine)
		}
		lines = append(lines, boardLine, "")
		if wrong := round.WrongGuesses(); len(wrong) > 0 {
			parts := lo.Map(wrong, func(g dictee.WrongGuess, _ int) string {
				if g.Half {
					return nearStyle.Render(string(g.Letter) + "~")
				}
				return strikeStyle.Render(string(g.Letter))
			})
			lines = append(lines, strings.Join(parts, " "))
		}
		if s.accentBase != 0 {
			lines = append(lines, s.renderAccents())
		}
		bindings := []key.Binding{keys.Listen, keys.Accent, keys.Back}
		if s.session.CanFlash() {
			bindings = append([]key.Binding{keys.Flash}, bindings...)
		}
		lines = append(lines, "", a.help.ShortHelpView(bindings))
	case dictee.PhaseReview:
		res, _ := s.session.LastResult()
		if res.Completed {
			lines = append(lines, goodStyle.Render("¡Correcto!"))
		} else {
			lines = append(lines, badStyle.Render("La respuesta era:"))
		}
		next := "Siguiente"
		if s.session.Index()+1 >= s.session.Total() {
			next = "Ver resultados"
		}
		lines = append(lines, titleStyle.Render(word.Display()), "", subtleStyle.Render("enter: "+next))
	case dictee.PhaseQuiz:
		lines = append(lines, s.renderQuiz(a, word)...)
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (s *dicteePlayScreen) renderAccents() string {
	variants := dictee.Variants(s.accentBase)
	parts := make([]string, len(variants))
	for i, r := range variants {
		label := fmt.Sprintf("%d:%c", i+1, r)
		if i == s.accentIdx {
			parts[i] = accentStyle.Render("[" + label + "]")
		} else {
			parts[i] = subtleStyle.Render(" " + label + " ")
		}
	}
	return "Acentos " + strings.Join(parts, " ") + footerStyle.Render("  (e/a/u/i/o/c cambia)")
}

func (s *dicteePlayScreen) renderQuiz(a *App, word dictee.Word) []string {
	quiz := s.session.Quiz()
	lines := []string{subtleStyle.Render("¿Qué significa...?"), titleStyle.Render(word.Display()), ""}
	if !quiz.Answered() {
		lines = append(lines, footerStyle.Render(fmt.Sprintf("%2ds ", s.quizLeft))+
			s.bar.ViewAs(float64(s.quizLeft)/float64(s.level.Config().TimePerQuiz)), "")
	}
	for i, opt := range quiz.Options() {
		label := fmt.Sprintf("%d. %s", i+1, opt)
		switch {
		case !quiz.Answered():
			lines = append(lines, choice(label, i == s.quizCursor))
		case opt == quiz.Answer():
			lines = append(lines, "  "+goodStyle.Render(label))
		case opt == quiz.Selected():
			lines = append(lines, "  "+badStyle.Render(label))
		default:
			lines = append(lines, "  "+pendingStyle.Render(label))
		}
	}
	if quiz.Answered() {
		if quiz.TimedOut() {
			lines = append(lines, "", badStyle.Render("¡Se acabó el tiempo!"))
		}
		lines = append(lines, "", subtleStyle.Render("enter: Siguiente"))
	} else {
		lines = append(lines, "", a.help.ShortHelpView([]key.Binding{keys.Up, keys.Down, keys.Confirm}))
	}
	return lines
}
