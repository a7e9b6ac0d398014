package dictee

import (
	crand "crypto/rand"
	"math/rand/v2"
)

// SessionWord is a word tagged with the rule label of its group.
type SessionWord struct {
	Word Word
	Rule string
}

// Flatten lists every word of the lesson in group order.
func Flatten(lesson Lesson) []SessionWord {
	out := make([]SessionWord, 0, lesson.TotalWords())
	for _, g := range lesson.Groups {
		for _, w := range g.Words {
			out = append(out, SessionWord{Word: w, Rule: g.Label})
		}
	}
	return out
}

// Randomizer produces play orders for sessions.
type Randomizer struct {
	rnd *rand.Rand
}

// NewRandomizer returns a Randomizer seeded from the operating system.
func NewRandomizer() *Randomizer {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return &Randomizer{rnd: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
	}
	return &Randomizer{rnd: rand.New(rand.NewChaCha8(seed))}
}

// NewSeededRandomizer returns a Randomizer with a fixed seed.
func NewSeededRandomizer(seed1, seed2 uint64) *Randomizer {
	return &Randomizer{rnd: rand.New(rand.NewPCG(seed1, seed2))}
}

// IntN returns a random int in [0, n).
func (r *Randomizer) IntN(n int) int { return r.rnd.IntN(n) }

// Shuffle flattens the lesson and returns a uniformly random permutation.
func (r *Randomizer) Shuffle(lesson Lesson) []SessionWord {
	words := Flatten(lesson)
	shuffleInPlace(r.rnd, words)
	return words
}

// Options returns the quiz options of w in random order.
func (r *Randomizer) Options(w Word) []string {
	options := make([]string, 0, len(w.AltTranslations)+1)
	options = append(options, w.Translation)
	options = append(options, w.AltTranslations...)
	shuffleInPlace(r.rnd, options)
	return options
}

// Fisher–Yates.
func shuffleInPlace[T any](rnd *rand.Rand, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := rnd.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
