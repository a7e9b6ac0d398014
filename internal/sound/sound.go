// Package sound plays short audio cues for game events.
package sound

import (
	"io"
	"strings"
	"sync"
	"sync/atomic"
)

// Cue is a game event with an associated sound.
type Cue int

const (
	CueCorrect Cue = iota
	CueIncorrect
	CueTick
	CueGo
	CueTimeUp
	CueRecord
)

func (c Cue) String() string {
	switch c {
	case CueCorrect:
		return "correct"
	case CueIncorrect:
		return "incorrect"
	case CueTick:
		return "tick"
	case CueGo:
		return "go"
	case CueTimeUp:
		return "timeup"
	case CueRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Player fires cues without waiting for them to finish.
type Player interface {
	Play(Cue)
	SetEnabled(bool)
	Enabled() bool
}

// Bell rings the terminal bell. Cues differ by the number of rings.
type Bell struct {
	mu      sync.Mutex
	w       io.Writer
	enabled atomic.Bool
}

// NewBell returns a Bell writing to w.
func NewBell(w io.Writer, enabled bool) *Bell {
	b := &Bell{w: w}
	b.enabled.Store(enabled)
	return b
}

func rings(c Cue) int {
	switch c {
	case CueIncorrect, CueTick:
		return 1
	case CueCorrect:
		return 0
	case CueGo, CueTimeUp:
		return 2
	case CueRecord:
		return 3
	default:
		return 0
	}
}

// Play rings the bell for c when enabled.
func (b *Bell) Play(c Cue) {
	if !b.enabled.Load() || b.w == nil {
		return
	}
	n := rings(c)
	if n == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := io.WriteString(b.w, strings.Repeat("\a", n)); err != nil {
		// Best-effort cue.
		_ = err
	}
}

// SetEnabled toggles playback.
func (b *Bell) SetEnabled(on bool) { b.enabled.Store(on) }

// Enabled reports whether playback is on.
func (b *Bell) Enabled() bool { return b.enabled.Load() }

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(Cue)        {}
func (Nop) SetEnabled(bool) {}
func (Nop) Enabled() bool   { return false }
