package dictee

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLesson() Lesson {
	mk := func(words ...string) []Word {
		out := make([]Word, len(words))
		for i, w := range words {
			out[i] = Word{Word: w, Translation: "t-" + w, AltTranslations: []string{"x", "y", "z"}}
		}
		return out
	}
	return Lesson{
		ID:    "test",
		Title: "Test",
		Groups: []Group{
			{Label: "s", Words: mk("cactus", "sardine", "sucre")},
			{Label: "ss", Words: mk("tasse", "boisson")},
			{Label: "c", Words: mk("face", "citron", "cygne", "racine")},
		},
	}
}

func key(w SessionWord) string { return w.Rule + "/" + w.Word.Word }

func TestFlattenKeepsGroupOrder(t *testing.T) {
	words := Flatten(testLesson())
	require.Len(t, words, 9)
	assert.Equal(t, "s/cactus", key(words[0]))
	assert.Equal(t, "ss/tasse", key(words[3]))
	assert.Equal(t, "c/racine", key(words[8]))
}

func TestShuffleIsPermutation(t *testing.T) {
	lesson := testLesson()
	want := make([]string, 0)
	for _, w := range Flatten(lesson) {
		want = append(want, key(w))
	}
	slices.Sort(want)

	r := NewRandomizer()
	for i := 0; i < 20; i++ {
		got := make([]string, 0)
		for _, w := range r.Shuffle(lesson) {
			got = append(got, key(w))
		}
		require.Len(t, got, lesson.TotalWords())
		slices.Sort(got)
		assert.Equal(t, want, got)
	}
}

func TestShuffleVaries(t *testing.T) {
	lesson := testLesson()
	r := NewRandomizer()
	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		order := make([]string, 0)
		for _, w := range r.Shuffle(lesson) {
			order = append(order, key(w))
		}
		seen[strings.Join(order, ",")] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}

func TestSeededShuffleIsReproducible(t *testing.T) {
	lesson := testLesson()
	a := NewSeededRandomizer(7, 9).Shuffle(lesson)
	b := NewSeededRandomizer(7, 9).Shuffle(lesson)
	assert.Equal(t, a, b)
}

func TestOptionsContainAnswerAndDistractors(t *testing.T) {
	w := Word{Word: "citron", Translation: "el limón", AltTranslations: []string{"la naranja", "la manzana", "la pera"}}
	opts := NewRandomizer().Options(w)
	assert.ElementsMatch(t, []string{"el limón", "la naranja", "la manzana", "la pera"}, opts)
	assert.Equal(t, []string{"la naranja", "la manzana", "la pera"}, w.AltTranslations)
}
