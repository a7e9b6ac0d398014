// Package model defines shared data structures.
package model

import "time"

// Settings record keys.
const (
	PlatformKey   = "aprendemos-settings"
	MultiplicaKey = "multiplica-rapido-settings"
	DicteeKey     = "dictee-settings"
)

// PlatformSettings is shared by every game.
type PlatformSettings struct {
	PlayerName   string `json:"playerName"`
	SoundEnabled bool   `json:"soundEnabled"`
}

// DefaultPlatformSettings returns the platform defaults.
func DefaultPlatformSettings() PlatformSettings {
	return PlatformSettings{SoundEnabled: true}
}

// MultiplicaSettings holds the multiplication game preferences.
type MultiplicaSettings struct {
	SelectedTables []int `json:"selectedTables"`
	SelectedTime   int   `json:"selectedTime"`
	HighScore      int   `json:"highScore"`
}

// DefaultMultiplicaSettings returns the multiplication defaults.
func DefaultMultiplicaSettings() MultiplicaSettings {
	return MultiplicaSettings{SelectedTables: []int{2, 3, 4, 5}, SelectedTime: 60}
}

// AllowedTimes lists the selectable run lengths in seconds.
var AllowedTimes = []int{30, 60, 90}

// LessonScore is the last and best outcome of a lesson.
type LessonScore struct {
	Correct    int `json:"correct"`
	Total      int `json:"total"`
	BestPoints int `json:"bestPoints"`
}

// DicteeSettings holds the dictation game preferences and scores.
type DicteeSettings struct {
	LastLessonID string                 `json:"lastLessonId"`
	LessonScores map[string]LessonScore `json:"lessonScores"`
	Level        int                    `json:"level"`
	ProMode      bool                   `json:"proMode"`
}

// DefaultDicteeSettings returns the dictation defaults.
func DefaultDicteeSettings() DicteeSettings {
	return DicteeSettings{LessonScores: map[string]LessonScore{}, Level: 1}
}

// RecordLesson stores the outcome of a finished lesson. The best point total
// only grows.
func (s *DicteeSettings) RecordLesson(lessonID string, correct, total, points int) {
	if s.LessonScores == nil {
		s.LessonScores = map[string]LessonScore{}
	}
	best := s.LessonScores[lessonID].BestPoints
	if points > best {
		best = points
	}
	s.LessonScores[lessonID] = LessonScore{Correct: correct, Total: total, BestPoints: best}
	s.LastLessonID = lessonID
}

// QuestionRecord is one answered multiplication.
type QuestionRecord struct {
	A             int  `json:"a"`
	B             int  `json:"b"`
	UserAnswer    int  `json:"userAnswer"`
	CorrectAnswer int  `json:"correctAnswer"`
	IsCorrect     bool `json:"isCorrect"`
}

// DicteeSession captures a finished dictation session.
type DicteeSession struct {
	ID          string
	LessonID    string
	Level       int
	ProMode     bool
	StartedAt   time.Time
	EndedAt     time.Time
	Correct     int
	Total       int
	TotalPoints int
	Words       []DicteeWordResult
}

// DicteeWordResult is the stored outcome of one word.
type DicteeWordResult struct {
	Position       int
	Word           string
	Rule           string
	Completed      bool
	WrongCount     int
	HalfCount      int
	UsedFlash      bool
	MeaningCorrect *bool
	TimeUsed       int
	Points         int
}

// MultiplicaRun captures a finished multiplication run.
type MultiplicaRun struct {
	ID           string
	StartedAt    time.Time
	EndedAt      time.Time
	Tables       []int
	TotalSeconds int
	Score        int
	Answered     int
	Cancelled    bool
	History      []QuestionRecord
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	LessonID    string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SessionAggregate summarizes a dictation session for reporting.
type SessionAggregate struct {
	SessionID   string
	LessonID    string
	Level       int
	EndedAt     time.Time
	Correct     int
	Total       int
	TotalPoints int
}

// RuleAggregate aggregates word outcomes per spelling rule.
type RuleAggregate struct {
	Rule       string
	Words      int
	Completed  int
	WrongCount int
	HalfCount  int
	Meaning    int
}

// RunAggregate summarizes a multiplication run for reporting.
type RunAggregate struct {
	RunID     string
	EndedAt   time.Time
	Score     int
	Answered  int
	Cancelled bool
}

// FactAggregate aggregates answers to one multiplication fact. A <= B.
type FactAggregate struct {
	A       int
	B       int
	Correct int
	Total   int
}

// AllTables lists the selectable multiplication tables.
var AllTables = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
