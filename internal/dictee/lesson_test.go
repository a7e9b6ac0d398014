package dictee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordDisplay(t *testing.T) {
	assert.Equal(t, "le cactus", Word{Word: "cactus", Article: "le"}.Display())
	assert.Equal(t, "l'insecte", Word{Word: "insecte", Article: "l'"}.Display())
	assert.Equal(t, "l' insecte", Word{Word: "insecte", Article: "l'"}.Spoken())
	assert.Equal(t, "cesser", Word{Word: "cesser"}.Display())
}

func TestLessonValidate(t *testing.T) {
	require.NoError(t, testLesson().Validate())
	assert.Equal(t, 9, testLesson().TotalWords())

	l := testLesson()
	l.ID = " "
	assert.Error(t, l.Validate())

	l = testLesson()
	l.Groups = nil
	assert.Error(t, l.Validate())

	l = testLesson()
	l.Groups[1].Words = nil
	assert.Error(t, l.Validate())

	l = testLesson()
	l.Groups[0].Words[0].AltTranslations = []string{"t-cactus"}
	assert.Error(t, l.Validate())

	l = testLesson()
	l.Groups[0].Words[0].Word = "--"
	assert.Error(t, l.Validate())
}

func TestAccents(t *testing.T) {
	assert.True(t, IsNearMiss('e', 'é'))
	assert.True(t, IsNearMiss('è', 'ê'))
	assert.True(t, IsNearMiss('c', 'ç'))
	assert.False(t, IsNearMiss('é', 'é'))
	assert.False(t, IsNearMiss('a', 'e'))
	assert.Equal(t, []rune{'é', 'è', 'ê', 'ë'}, Variants('E'))
	assert.Nil(t, Variants('z'))
	assert.True(t, IsLetter('ÿ'))
	assert.False(t, IsLetter('-'))
	assert.False(t, IsLetter('\''))
}

func TestLevels(t *testing.T) {
	assert.Equal(t, 40, LevelBeginner.Config().TimePerWord)
	assert.Equal(t, 10, LevelIntermediate.Config().TimePerQuiz)
	assert.Equal(t, 2.0, LevelExpert.Config().Multiplier)
	assert.False(t, Level(0).Valid())
	assert.Equal(t, "Débutant", Level(0).Config().Label)
}
