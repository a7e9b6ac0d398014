// Package generator builds multiplication questions.
package generator

import (
	"math/rand"
	"time"
)

// MaxFactor is the largest second factor of a question.
const MaxFactor = 10

// Question is one multiplication to answer.
type Question struct {
	A int
	B int
}

// Answer returns the product.
func (q Question) Answer() int { return q.A * q.B }

// Generator produces randomized questions.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Question picks a table uniformly from tables and a factor in 1..MaxFactor,
// then randomizes which one comes first. tables must not be empty.
func (g *Generator) Question(tables []int) Question {
	table := tables[g.rnd.Intn(len(tables))]
	factor := g.rnd.Intn(MaxFactor) + 1
	if g.rnd.Float64() < 0.5 {
		return Question{A: table, B: factor}
	}
	return Question{A: factor, B: table}
}

// Generate returns count questions.
func (g *Generator) Generate(tables []int, count int) []Question {
	result := make([]Question, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, g.Question(tables))
	}
	return result
}
