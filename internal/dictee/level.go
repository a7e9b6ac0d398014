package dictee

import "time"

// Level is a difficulty tier.
type Level int

const (
	LevelBeginner     Level = 1
	LevelIntermediate Level = 2
	LevelExpert       Level = 3
)

// LevelConfig holds the timing and multiplier of a difficulty tier.
type LevelConfig struct {
	Label       string
	TimePerWord int // seconds
	TimePerQuiz int // seconds
	Multiplier  float64
}

var levelConfigs = map[Level]LevelConfig{
	LevelBeginner:     {Label: "Débutant", TimePerWord: 40, TimePerQuiz: 15, Multiplier: 1.0},
	LevelIntermediate: {Label: "Intermédiaire", TimePerWord: 24, TimePerQuiz: 10, Multiplier: 1.5},
	LevelExpert:       {Label: "Expert", TimePerWord: 16, TimePerQuiz: 7, Multiplier: 2.0},
}

// Levels lists the tiers in ascending order.
func Levels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelExpert}
}

// Valid reports whether l is a known tier.
func (l Level) Valid() bool {
	_, ok := levelConfigs[l]
	return ok
}

// Config returns the tier configuration. Unknown tiers use the beginner tier.
func (l Level) Config() LevelConfig {
	if cfg, ok := levelConfigs[l]; ok {
		return cfg
	}
	return levelConfigs[LevelBeginner]
}

// WordDuration is the time allowed to spell one word.
func (l Level) WordDuration() time.Duration {
	return time.Duration(l.Config().TimePerWord) * time.Second
}

// QuizDuration is the time allowed to answer the meaning quiz.
func (l Level) QuizDuration() time.Duration {
	return time.Duration(l.Config().TimePerQuiz) * time.Second
}
