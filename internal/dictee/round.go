package dictee

import "unicode"

// MaxLives is the number of lives a round starts with.
const MaxLives = 6.0

const (
	wrongPenalty = 1.0
	halfPenalty  = 0.5
	flashPenalty = 2.0
)

// RoundState is the lifecycle state of a round.
type RoundState int

const (
	RoundInProgress RoundState = iota
	RoundSucceeded
	RoundFailed
)

func (s RoundState) String() string {
	switch s {
	case RoundInProgress:
		return "in-progress"
	case RoundSucceeded:
		return "succeeded"
	case RoundFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// GuessOutcome classifies a letter submission.
type GuessOutcome int

const (
	GuessIgnored GuessOutcome = iota
	GuessCorrect
	GuessNearMiss
	GuessWrong
)

// WrongGuess records one incorrect submission.
type WrongGuess struct {
	Letter rune
	Half   bool
}

func (g WrongGuess) penalty() float64 {
	if g.Half {
		return halfPenalty
	}
	return wrongPenalty
}

// RoundResult is the outcome of one word.
type RoundResult struct {
	Word           Word
	Rule           string
	WrongGuesses   []WrongGuess
	Completed      bool
	MeaningCorrect *bool
	UsedFlash      bool
	TimeUsed       int // seconds
	Points         int
}

// WrongCount returns the number of full-penalty guesses.
func (r RoundResult) WrongCount() int {
	n := 0
	for _, g := range r.WrongGuesses {
		if !g.Half {
			n++
		}
	}
	return n
}

// HalfCount returns the number of near-miss guesses.
func (r RoundResult) HalfCount() int {
	return len(r.WrongGuesses) - r.WrongCount()
}

// Round drives the spelling of a single word. A Round is never reused: a new
// word gets a new Round.
type Round struct {
	id       uint64
	word     SessionWord
	runes    []rune
	letters  []int
	filled   []bool
	cursor   int
	wrong    []WrongGuess
	flash    bool
	maxLives float64
	state    RoundState
	result   *RoundResult
}

// NewRound starts a round for w. id identifies the round to timer callbacks.
func NewRound(id uint64, w SessionWord) *Round {
	runes := []rune(w.Word.Word)
	letters := letterPositions(w.Word.Word)
	filled := make([]bool, len(runes))
	for i, r := range runes {
		if !IsLetter(r) {
			filled[i] = true
		}
	}
	r := &Round{
		id:       id,
		word:     w,
		runes:    runes,
		letters:  letters,
		filled:   filled,
		maxLives: MaxLives,
	}
	if len(letters) == 0 {
		r.finish(RoundSucceeded)
	}
	return r
}

// ID returns the round identity.
func (r *Round) ID() uint64 { return r.id }

// Word returns the word being spelled.
func (r *Round) Word() SessionWord { return r.word }

// State returns the lifecycle state.
func (r *Round) State() RoundState { return r.state }

// Done reports whether the round reached a terminal state.
func (r *Round) Done() bool { return r.state != RoundInProgress }

// MaxLives returns the starting number of lives.
func (r *Round) MaxLives() float64 { return r.maxLives }

// FlashUsed reports whether the flash reveal was bought this round.
func (r *Round) FlashUsed() bool { return r.flash }

// Lives is recomputed from the guess history and the flash flag.
func (r *Round) Lives() float64 {
	penalty := 0.0
	if r.flash {
		penalty += flashPenalty
	}
	for _, g := range r.wrong {
		penalty += g.penalty()
	}
	return r.maxLives - penalty
}

// Runes returns the spelling as runes.
func (r *Round) Runes() []rune { return r.runes }

// Filled reports whether the rune at index i is shown.
func (r *Round) Filled(i int) bool {
	return i >= 0 && i < len(r.filled) && r.filled[i]
}

// CursorIndex returns the rune index awaiting a guess, or -1 once done.
func (r *Round) CursorIndex() int {
	if r.Done() || r.cursor >= len(r.letters) {
		return -1
	}
	return r.letters[r.cursor]
}

// WrongGuesses returns a copy of the incorrect submissions so far.
func (r *Round) WrongGuesses() []WrongGuess {
	out := make([]WrongGuess, len(r.wrong))
	copy(out, r.wrong)
	return out
}

// Result returns the round result once the round is terminal.
func (r *Round) Result() (RoundResult, bool) {
	if r.result == nil {
		return RoundResult{}, false
	}
	return *r.result, true
}

// GuessLetter submits one letter for the cursor position.
func (r *Round) GuessLetter(letter rune) GuessOutcome {
	if r.Done() {
		return GuessIgnored
	}
	pos := r.letters[r.cursor]
	guessed := unicode.ToLower(letter)
	expected := unicode.ToLower(r.runes[pos])

	if guessed == expected {
		r.filled[pos] = true
		r.cursor++
		if r.cursor >= len(r.letters) {
			r.finish(RoundSucceeded)
		}
		return GuessCorrect
	}

	half := IsNearMiss(guessed, expected)
	r.wrong = append(r.wrong, WrongGuess{Letter: guessed, Half: half})
	if r.Lives() <= 0 {
		r.finish(RoundFailed)
	}
	if half {
		return GuessNearMiss
	}
	return GuessWrong
}

// ForceFail ends the round as a failure, e.g. when its timer expires.
func (r *Round) ForceFail() bool {
	if r.Done() {
		return false
	}
	r.finish(RoundFailed)
	return true
}

// ActivateFlash buys the flash reveal. It returns true when the caller may
// show the word; false when the flash was refused or its cost ended the round.
func (r *Round) ActivateFlash() bool {
	if r.flash || r.Done() {
		return false
	}
	r.flash = true
	if r.Lives() <= 0 {
		r.finish(RoundFailed)
		return false
	}
	return true
}

func (r *Round) finish(state RoundState) {
	r.state = state
	r.result = &RoundResult{
		Word:         r.word.Word,
		Rule:         r.word.Rule,
		WrongGuesses: r.WrongGuesses(),
		Completed:    state == RoundSucceeded,
		UsedFlash:    r.flash,
	}
}
