// Package multiplica implements the timed multiplication run.
package multiplica

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/samber/lo"

	"github.com/verte-zerg/aprendemos/internal/generator"
	"github.com/verte-zerg/aprendemos/internal/model"
)

// CountdownSteps is the length of the pre-run countdown in seconds.
const CountdownSteps = 3

// Phase is the stage of a run.
type Phase int

const (
	PhaseCountdown Phase = iota
	PhasePlaying
	PhaseOver
)

// Event is what a one-second tick produced, for audio cues.
type Event int

const (
	EventNone Event = iota
	EventTick
	EventGo
	EventTimeUp
)

var runSeq atomic.Uint64

// Run is one timed multiplication game.
type Run struct {
	id        uint64
	gen       *generator.Generator
	tables    []int
	total     int
	countdown int
	timeLeft  int
	phase     Phase
	question  generator.Question
	history   []model.QuestionRecord
	cancelled bool
}

// NewRun prepares a run over tables lasting totalSeconds. It starts in the
// countdown phase.
func NewRun(gen *generator.Generator, tables []int, totalSeconds int) *Run {
	if gen == nil {
		gen = generator.New()
	}
	if len(tables) == 0 {
		tables = model.DefaultMultiplicaSettings().SelectedTables
	}
	if totalSeconds <= 0 {
		totalSeconds = model.DefaultMultiplicaSettings().SelectedTime
	}
	r := &Run{
		id:        runSeq.Add(1),
		gen:       gen,
		tables:    append([]int(nil), tables...),
		total:     totalSeconds,
		countdown: CountdownSteps,
		timeLeft:  totalSeconds,
	}
	r.question = gen.Question(r.tables)
	return r
}

// ID identifies the run to its timer messages.
func (r *Run) ID() uint64 { return r.id }

// Phase returns the run stage.
func (r *Run) Phase() Phase { return r.phase }

// Countdown returns the remaining countdown steps.
func (r *Run) Countdown() int { return r.countdown }

// TimeLeft returns the remaining play time in seconds.
func (r *Run) TimeLeft() int { return r.timeLeft }

// TotalSeconds returns the configured run length.
func (r *Run) TotalSeconds() int { return r.total }

// Tables returns the tables being practiced.
func (r *Run) Tables() []int { return r.tables }

// Question returns the question awaiting an answer.
func (r *Run) Question() generator.Question { return r.question }

// Score returns the number of correct answers.
func (r *Run) Score() int {
	return lo.CountBy(r.history, func(q model.QuestionRecord) bool { return q.IsCorrect })
}

// Answered returns the number of submitted answers.
func (r *Run) Answered() int { return len(r.history) }

// History returns a copy of the answered questions.
func (r *Run) History() []model.QuestionRecord {
	return append([]model.QuestionRecord(nil), r.history...)
}

// Tick advances the countdown or the play clock by one second.
func (r *Run) Tick() Event {
	switch r.phase {
	case PhaseCountdown:
		r.countdown--
		if r.countdown <= 0 {
			r.countdown = 0
			r.phase = PhasePlaying
			return EventGo
		}
		return EventTick
	case PhasePlaying:
		r.timeLeft--
		if r.timeLeft <= 0 {
			r.timeLeft = 0
			r.phase = PhaseOver
			return EventTimeUp
		}
	}
	return EventNone
}

// Submit answers the current question. Blank or non-numeric input, or input
// outside the playing phase, is ignored.
func (r *Run) Submit(answer string) (model.QuestionRecord, bool) {
	if r.phase != PhasePlaying {
		return model.QuestionRecord{}, false
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return model.QuestionRecord{}, false
	}
	value, err := strconv.Atoi(answer)
	if err != nil {
		return model.QuestionRecord{}, false
	}
	correct := r.question.Answer()
	rec := model.QuestionRecord{
		A:             r.question.A,
		B:             r.question.B,
		UserAnswer:    value,
		CorrectAnswer: correct,
		IsCorrect:     value == correct,
	}
	r.history = append(r.history, rec)
	return rec, true
}

// Next draws the following question.
func (r *Run) Next() generator.Question {
	r.question = r.gen.Question(r.tables)
	return r.question
}

// Cancel stops the run early. A cancelled run never sets a record.
func (r *Run) Cancel() {
	if r.phase == PhaseOver {
		return
	}
	r.phase = PhaseOver
	r.cancelled = true
}

// Cancelled reports whether the run was stopped early.
func (r *Run) Cancelled() bool { return r.cancelled }

// Result summarizes the run against the previous high score.
func (r *Run) Result(highScore int) Result {
	score := r.Score()
	return Result{
		Score:     score,
		Total:     r.Answered(),
		Cancelled: r.cancelled,
		NewRecord: !r.cancelled && r.phase == PhaseOver && score > highScore,
		History:   r.History(),
	}
}

// Result is the outcome of a finished run.
type Result struct {
	Score     int
	Total     int
	Cancelled bool
	NewRecord bool
	History   []model.QuestionRecord
}

// Accuracy returns the rounded percentage of correct answers.
func (r Result) Accuracy() int {
	if r.Total == 0 {
		return 0
	}
	return (r.Score*200 + r.Total) / (r.Total * 2)
}

// Mistakes returns the incorrectly answered questions.
func (r Result) Mistakes() []model.QuestionRecord {
	return lo.Filter(r.History, func(q model.QuestionRecord, _ int) bool { return !q.IsCorrect })
}

// Message returns the encouragement for the accuracy bucket.
func (r Result) Message() string {
	return Message(r.Accuracy())
}

// Message maps an accuracy percentage to its encouragement.
func Message(accuracy int) string {
	switch {
	case accuracy >= 100:
		return "Perfecto!"
	case accuracy >= 80:
		return "Excelente!"
	case accuracy >= 60:
		return "Muy bien!"
	case accuracy >= 40:
		return "Buen trabajo!"
	default:
		return "Sigue practicando!"
	}
}
