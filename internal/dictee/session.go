package dictee

import "sync/atomic"

// Phase is the per-word stage of a session.
type Phase int

const (
	// PhaseSpelling: the round is live.
	PhaseSpelling Phase = iota
	// PhaseReview: the round ended and its word is shown.
	PhaseReview
	// PhaseQuiz: the meaning quiz is open.
	PhaseQuiz
	// PhaseScored: points were computed; the session may advance.
	PhaseScored
)

func (p Phase) String() string {
	switch p {
	case PhaseSpelling:
		return "spelling"
	case PhaseReview:
		return "review"
	case PhaseQuiz:
		return "quiz"
	case PhaseScored:
		return "scored"
	default:
		return "unknown"
	}
}

var roundSeq atomic.Uint64

func nextRoundID() uint64 { return roundSeq.Add(1) }

// ResultPatch carries the fields merged into the last result after the quiz.
type ResultPatch struct {
	MeaningCorrect *bool
	TimeUsed       *int
	Points         *int
}

// Session walks a shuffled word list one round at a time.
type Session struct {
	words    []SessionWord
	rnd      *Randomizer
	index    int
	round    *Round
	quiz     *Quiz
	phase    Phase
	results  []RoundResult
	finished bool
}

// NewSession starts a session over words in the given order.
func NewSession(words []SessionWord, rnd *Randomizer) *Session {
	if rnd == nil {
		rnd = NewRandomizer()
	}
	s := &Session{words: words, rnd: rnd}
	if len(words) == 0 {
		s.finished = true
		return s
	}
	s.startRound()
	return s
}

// NewLessonSession shuffles lesson and starts a session over it.
func NewLessonSession(lesson Lesson, rnd *Randomizer) *Session {
	if rnd == nil {
		rnd = NewRandomizer()
	}
	return NewSession(rnd.Shuffle(lesson), rnd)
}

func (s *Session) startRound() {
	s.round = NewRound(nextRoundID(), s.words[s.index])
	s.quiz = nil
	s.phase = PhaseSpelling
	s.collect()
}

// collect records the round result the first time the round is terminal.
func (s *Session) collect() {
	if s.phase != PhaseSpelling || s.round == nil || !s.round.Done() {
		return
	}
	if res, ok := s.round.Result(); ok {
		s.results = append(s.results, res)
	}
	s.phase = PhaseReview
}

// Index returns the zero-based position of the current word.
func (s *Session) Index() int { return s.index }

// Total returns the number of words in the session.
func (s *Session) Total() int { return len(s.words) }

// Words returns the play order.
func (s *Session) Words() []SessionWord { return s.words }

// Current returns the word being played.
func (s *Session) Current() (SessionWord, bool) {
	if s.finished || s.index >= len(s.words) {
		return SessionWord{}, false
	}
	return s.words[s.index], true
}

// Round returns the live round, nil once finished.
func (s *Session) Round() *Round {
	if s.finished {
		return nil
	}
	return s.round
}

// RoundID returns the identity of the live round, 0 once finished.
func (s *Session) RoundID() uint64 {
	if r := s.Round(); r != nil {
		return r.ID()
	}
	return 0
}

// Quiz returns the open quiz, if any.
func (s *Session) Quiz() *Quiz { return s.quiz }

// Phase returns the stage of the current word.
func (s *Session) Phase() Phase { return s.phase }

// Finished reports whether every word has been played.
func (s *Session) Finished() bool { return s.finished }

// Results returns a copy of the results so far.
func (s *Session) Results() []RoundResult {
	out := make([]RoundResult, len(s.results))
	copy(out, s.results)
	return out
}

// LastResult returns the most recent result.
func (s *Session) LastResult() (RoundResult, bool) {
	if len(s.results) == 0 {
		return RoundResult{}, false
	}
	return s.results[len(s.results)-1], true
}

// TotalPoints sums the points scored so far.
func (s *Session) TotalPoints() int { return TotalPoints(s.results) }

// GuessLetter forwards a letter to the live round.
func (s *Session) GuessLetter(letter rune) GuessOutcome {
	if s.finished || s.phase != PhaseSpelling {
		return GuessIgnored
	}
	out := s.round.GuessLetter(letter)
	s.collect()
	return out
}

// ForceFail fails the round identified by roundID. Calls for any other round
// are ignored.
func (s *Session) ForceFail(roundID uint64) bool {
	if s.finished || s.phase != PhaseSpelling || roundID != s.round.ID() {
		return false
	}
	ok := s.round.ForceFail()
	s.collect()
	return ok
}

// ActivateFlash buys the flash reveal for the live round.
func (s *Session) ActivateFlash() bool {
	if s.finished || s.phase != PhaseSpelling {
		return false
	}
	ok := s.round.ActivateFlash()
	s.collect()
	return ok
}

// CanFlash reports whether the flash reveal is offered.
func (s *Session) CanFlash() bool {
	if s.finished || s.phase != PhaseSpelling {
		return false
	}
	return !s.round.FlashUsed() && s.round.Lives() > 2
}

// StartQuiz opens the meaning quiz once the round has ended.
func (s *Session) StartQuiz() *Quiz {
	if s.finished {
		return nil
	}
	switch s.phase {
	case PhaseQuiz:
		return s.quiz
	case PhaseReview:
		w := s.words[s.index].Word
		s.quiz = NewQuiz(s.round.ID(), w.Translation, s.rnd.Options(w))
		s.phase = PhaseQuiz
		return s.quiz
	default:
		return nil
	}
}

// QuizTimeout expires the quiz of roundID.
func (s *Session) QuizTimeout(roundID uint64) bool {
	if s.phase != PhaseQuiz || s.quiz == nil || s.quiz.RoundID() != roundID {
		return false
	}
	return s.quiz.Timeout()
}

// FinishWord scores the current word with the meaning outcome and the
// elapsed seconds, and returns the points. A nil meaning skips the quiz.
func (s *Session) FinishWord(meaning *bool, timeUsed int, level Level) (int, bool) {
	if s.finished || (s.phase != PhaseReview && s.phase != PhaseQuiz) {
		return 0, false
	}
	last, ok := s.LastResult()
	if !ok {
		return 0, false
	}
	last.MeaningCorrect = meaning
	last.TimeUsed = timeUsed
	points := Points(ParamsFor(last, level))
	s.PatchLastResult(ResultPatch{MeaningCorrect: meaning, TimeUsed: &timeUsed, Points: &points})
	s.phase = PhaseScored
	return points, true
}

// PatchLastResult merges p into the most recent result.
func (s *Session) PatchLastResult(p ResultPatch) {
	if len(s.results) == 0 {
		return
	}
	last := &s.results[len(s.results)-1]
	if p.MeaningCorrect != nil {
		v := *p.MeaningCorrect
		last.MeaningCorrect = &v
	}
	if p.TimeUsed != nil {
		last.TimeUsed = *p.TimeUsed
	}
	if p.Points != nil {
		last.Points = *p.Points
	}
}

// Advance moves to the next word once the current one is scored. It returns
// false when called too early.
func (s *Session) Advance() bool {
	if s.finished || s.phase != PhaseScored {
		return false
	}
	s.index++
	if s.index >= len(s.words) {
		s.finished = true
		s.round = nil
		s.quiz = nil
		return true
	}
	s.startRound()
	return true
}
