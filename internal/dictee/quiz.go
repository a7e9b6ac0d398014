package dictee

// QuizState is the lifecycle state of a meaning quiz.
type QuizState int

const (
	QuizUnanswered QuizState = iota
	QuizCorrect
	QuizIncorrect
)

// Quiz asks for the meaning of a word once its round is over.
type Quiz struct {
	roundID  uint64
	answer   string
	options  []string
	state    QuizState
	selected string
	timedOut bool
}

// NewQuiz builds a quiz over the given options. answer must be among them.
func NewQuiz(roundID uint64, answer string, options []string) *Quiz {
	opts := make([]string, len(options))
	copy(opts, options)
	return &Quiz{roundID: roundID, answer: answer, options: opts}
}

// RoundID returns the identity of the round this quiz belongs to.
func (q *Quiz) RoundID() uint64 { return q.roundID }

// Options returns the choices in presentation order.
func (q *Quiz) Options() []string { return q.options }

// Answer returns the correct translation.
func (q *Quiz) Answer() string { return q.answer }

// State returns the quiz state.
func (q *Quiz) State() QuizState { return q.state }

// Answered reports whether the quiz has been resolved.
func (q *Quiz) Answered() bool { return q.state != QuizUnanswered }

// Selected returns the chosen option; empty after a timeout.
func (q *Quiz) Selected() string { return q.selected }

// TimedOut reports whether the quiz resolved by timeout.
func (q *Quiz) TimedOut() bool { return q.timedOut }

// Correct returns the meaning outcome, or nil while unanswered.
func (q *Quiz) Correct() *bool {
	if !q.Answered() {
		return nil
	}
	ok := q.state == QuizCorrect
	return &ok
}

// Select answers the quiz. Only the first resolution counts.
func (q *Quiz) Select(option string) bool {
	if q.Answered() {
		return false
	}
	q.selected = option
	if option == q.answer {
		q.state = QuizCorrect
	} else {
		q.state = QuizIncorrect
	}
	return true
}

// SelectIndex answers with the option at index i.
func (q *Quiz) SelectIndex(i int) bool {
	if i < 0 || i >= len(q.options) {
		return false
	}
	return q.Select(q.options[i])
}

// Timeout resolves an unanswered quiz as incorrect.
func (q *Quiz) Timeout() bool {
	if q.Answered() {
		return false
	}
	q.state = QuizIncorrect
	q.timedOut = true
	return true
}
