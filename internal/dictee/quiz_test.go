package dictee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQuiz() *Quiz {
	return NewQuiz(3, "la taza", []string{"el vaso", "la taza", "el plato", "la botella"})
}

func TestQuizSelectCorrect(t *testing.T) {
	q := newTestQuiz()
	assert.Nil(t, q.Correct())

	require.True(t, q.Select("la taza"))
	assert.Equal(t, QuizCorrect, q.State())
	require.NotNil(t, q.Correct())
	assert.True(t, *q.Correct())
	assert.Equal(t, "la taza", q.Selected())
}

func TestQuizFrozenAfterFirstAnswer(t *testing.T) {
	q := newTestQuiz()
	require.True(t, q.Select("el vaso"))
	assert.False(t, q.Select("la taza"))
	assert.False(t, q.Timeout())
	assert.Equal(t, QuizIncorrect, q.State())
	assert.Equal(t, "el vaso", q.Selected())
	assert.False(t, q.TimedOut())
}

func TestQuizTimeout(t *testing.T) {
	q := newTestQuiz()
	require.True(t, q.Timeout())
	assert.Equal(t, QuizIncorrect, q.State())
	assert.Empty(t, q.Selected())
	assert.True(t, q.TimedOut())
	assert.False(t, q.SelectIndex(1))
}

func TestQuizSelectIndex(t *testing.T) {
	q := newTestQuiz()
	assert.False(t, q.SelectIndex(-1))
	assert.False(t, q.SelectIndex(4))
	assert.False(t, q.Answered())
	require.True(t, q.SelectIndex(1))
	assert.Equal(t, QuizCorrect, q.State())
	assert.Equal(t, uint64(3), q.RoundID())
}
