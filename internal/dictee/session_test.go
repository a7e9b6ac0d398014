package dictee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoWordSession(t *testing.T) *Session {
	t.Helper()
	words := []SessionWord{sw("face"), sw("tasse")}
	s := NewSession(words, NewSeededRandomizer(1, 2))
	require.False(t, s.Finished())
	return s
}

func TestSessionEndToEnd(t *testing.T) {
	s := twoWordSession(t)

	for _, l := range "face" {
		s.GuessLetter(l)
	}
	require.Equal(t, PhaseReview, s.Phase())
	assert.False(t, s.Advance(), "advance before scoring")

	q := s.StartQuiz()
	require.NotNil(t, q)
	assert.Len(t, q.Options(), 4)
	require.True(t, q.Select("t"))
	pts, ok := s.FinishWord(q.Correct(), 5, LevelBeginner)
	require.True(t, ok)
	assert.Equal(t, 195, pts)
	require.True(t, s.Advance())
	assert.False(t, s.Finished())
	assert.Equal(t, 1, s.Index())

	id := s.RoundID()
	require.True(t, s.ForceFail(id))
	require.Equal(t, PhaseReview, s.Phase())

	q = s.StartQuiz()
	require.NotNil(t, q)
	require.True(t, q.Timeout())
	_, ok = s.FinishWord(q.Correct(), 40, LevelBeginner)
	require.True(t, ok)
	assert.False(t, s.Finished(), "finished only after the final advance")

	require.True(t, s.Advance())
	assert.True(t, s.Finished())
	assert.Nil(t, s.Round())
	assert.Zero(t, s.RoundID())

	results := s.Results()
	require.Len(t, results, 2)
	assert.True(t, results[0].Completed)
	assert.False(t, results[1].Completed)
	assert.Equal(t, 195, results[0].Points)
	assert.Equal(t, 0, results[1].Points)
	require.NotNil(t, results[1].MeaningCorrect)
	assert.False(t, *results[1].MeaningCorrect)
	assert.Equal(t, 195, s.TotalPoints())

	assert.False(t, s.Advance())
}

func TestSessionStaleTimerIgnored(t *testing.T) {
	s := twoWordSession(t)
	first := s.RoundID()
	for _, l := range "face" {
		s.GuessLetter(l)
	}
	s.StartQuiz()
	s.FinishWord(nil, 3, LevelBeginner)
	require.True(t, s.Advance())

	assert.NotEqual(t, first, s.RoundID())
	assert.False(t, s.ForceFail(first))
	assert.Equal(t, PhaseSpelling, s.Phase())
	assert.Len(t, s.Results(), 1)
}

func TestSessionQuizTimeoutChecksRound(t *testing.T) {
	s := twoWordSession(t)
	id := s.RoundID()
	s.ForceFail(id)
	q := s.StartQuiz()
	require.NotNil(t, q)

	assert.False(t, s.QuizTimeout(id+1000))
	assert.True(t, s.QuizTimeout(id))
	assert.False(t, s.QuizTimeout(id))
	assert.True(t, q.TimedOut())
}

func TestSessionFreshRoundOnAdvance(t *testing.T) {
	s := twoWordSession(t)
	s.GuessLetter('z')
	require.True(t, s.ActivateFlash())
	s.ForceFail(s.RoundID())
	s.StartQuiz()
	s.FinishWord(nil, 10, LevelBeginner)
	s.Advance()

	r := s.Round()
	require.NotNil(t, r)
	assert.Equal(t, MaxLives, r.Lives())
	assert.False(t, r.FlashUsed())
	assert.Empty(t, r.WrongGuesses())
	assert.Equal(t, 0, r.CursorIndex())
	assert.True(t, s.CanFlash())
}

func TestSessionIgnoresInputOutsideSpelling(t *testing.T) {
	s := twoWordSession(t)
	s.ForceFail(s.RoundID())

	assert.Equal(t, GuessIgnored, s.GuessLetter('f'))
	assert.False(t, s.ActivateFlash())
	assert.False(t, s.CanFlash())
	assert.Len(t, s.Results(), 1)
}

func TestSessionFailedRoundStillGetsQuiz(t *testing.T) {
	s := twoWordSession(t)
	for i := 0; i < 6; i++ {
		s.GuessLetter('z')
	}
	require.Equal(t, PhaseReview, s.Phase())
	q := s.StartQuiz()
	require.NotNil(t, q)
	assert.Same(t, q, s.StartQuiz())
}

func TestSessionStartQuizBeforeRoundEnds(t *testing.T) {
	s := twoWordSession(t)
	assert.Nil(t, s.StartQuiz())
	_, ok := s.FinishWord(nil, 0, LevelBeginner)
	assert.False(t, ok)
}

func TestSessionPatchLastResult(t *testing.T) {
	s := twoWordSession(t)
	pts := 42
	s.PatchLastResult(ResultPatch{Points: &pts})
	assert.Empty(t, s.Results())

	s.ForceFail(s.RoundID())
	used := 12
	s.PatchLastResult(ResultPatch{MeaningCorrect: boolPtr(true), TimeUsed: &used, Points: &pts})
	last, ok := s.LastResult()
	require.True(t, ok)
	assert.Equal(t, 42, last.Points)
	assert.Equal(t, 12, last.TimeUsed)
	require.NotNil(t, last.MeaningCorrect)
	assert.True(t, *last.MeaningCorrect)
}

func TestSessionEmptyWordList(t *testing.T) {
	s := NewSession(nil, nil)
	assert.True(t, s.Finished())
	assert.Nil(t, s.Round())
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestLessonSessionCoversLesson(t *testing.T) {
	lesson := testLesson()
	s := NewLessonSession(lesson, NewSeededRandomizer(3, 4))
	assert.Equal(t, lesson.TotalWords(), s.Total())
}
