// Package speech speaks French words through a local synthesizer command.
package speech

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultRate is the speaking rate relative to the synthesizer default.
const DefaultRate = 0.85

const (
	baseWordsPerMinute = 175
	maxUtterance       = 10 * time.Second
)

// Speaker speaks text and reports whether it is still speaking.
type Speaker interface {
	Speak(text string, rate float64)
	Speaking() bool
	Supported() bool
	Stop()
}

// Nop is used when no synthesizer is available.
type Nop struct{}

func (Nop) Speak(string, float64) {}
func (Nop) Speaking() bool        { return false }
func (Nop) Supported() bool       { return false }
func (Nop) Stop()                 {}

// Backend describes how to drive one synthesizer binary.
type Backend struct {
	Bin        string
	VoiceArgs  func(voice string) []string
	RateArgs   func(wpm int) []string
	ListArgs   []string
	ParseVoice func(out string) []Voice
	// UseLang selects voices by language code instead of name.
	UseLang    bool
	Fallback   string
}

// Backends lists the supported synthesizers in preference order.
var Backends = []Backend{
	{
		Bin:        "espeak-ng",
		VoiceArgs:  func(v string) []string { return []string{"-v", v} },
		RateArgs:   func(wpm int) []string { return []string{"-s", strconv.Itoa(wpm)} },
		ListArgs:   []string{"--voices=fr"},
		ParseVoice: ParseEspeakVoices,
		UseLang:    true,
		Fallback:   "fr-fr",
	},
	{
		Bin:        "espeak",
		VoiceArgs:  func(v string) []string { return []string{"-v", v} },
		RateArgs:   func(wpm int) []string { return []string{"-s", strconv.Itoa(wpm)} },
		ListArgs:   []string{"--voices=fr"},
		ParseVoice: ParseEspeakVoices,
		UseLang:    true,
		Fallback:   "fr",
	},
	{
		Bin:        "say",
		VoiceArgs:  func(v string) []string { return []string{"-v", v} },
		RateArgs:   func(wpm int) []string { return []string{"-r", strconv.Itoa(wpm)} },
		ListArgs:   []string{"-v", "?"},
		ParseVoice: ParseSayVoices,
	},
}

// CommandSpeaker runs a synthesizer command per utterance. A new utterance
// interrupts the previous one.
type CommandSpeaker struct {
	backend  Backend
	path     string
	voice    string
	log      logrus.FieldLogger
	mu       sync.Mutex
	cancel   context.CancelFunc
	gen      uint64
	speaking atomic.Bool
}

// Options configures Detect.
type Options struct {
	// Command overrides backend detection with a binary name or path.
	Command string
	// Voice overrides voice selection.
	Voice string
	Log   logrus.FieldLogger
}

// Detect returns a speaker for the first synthesizer found on PATH, or Nop.
func Detect(ctx context.Context, opts Options) Speaker {
	log := opts.Log
	if log == nil {
		log = logrus.New()
	}
	for _, b := range Backends {
		bin := b.Bin
		if opts.Command != "" {
			if !strings.HasSuffix(opts.Command, b.Bin) {
				continue
			}
			bin = opts.Command
		}
		path, err := exec.LookPath(bin)
		if err != nil {
			continue
		}
		voice := opts.Voice
		if voice == "" {
			voice = pickVoice(ctx, path, b, log)
		}
		log.WithFields(logrus.Fields{"bin": path, "voice": voice}).Info("speech enabled")
		return &CommandSpeaker{backend: b, path: path, voice: voice, log: log}
	}
	log.Info("no speech synthesizer found")
	return Nop{}
}

func pickVoice(ctx context.Context, path string, b Backend, log logrus.FieldLogger) string {
	if len(b.ListArgs) == 0 || b.ParseVoice == nil {
		return b.Fallback
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	out, err := exec.CommandContext(ctx, path, b.ListArgs...).Output()
	if err != nil {
		log.WithError(err).Debug("voice listing failed")
		return b.Fallback
	}
	if v, ok := PickFrench(b.ParseVoice(string(out))); ok {
		if b.UseLang {
			return v.Lang
		}
		return v.Name
	}
	return b.Fallback
}

// Args builds the command line for one utterance.
func (s *CommandSpeaker) Args(text string, rate float64) []string {
	if rate <= 0 {
		rate = DefaultRate
	}
	var args []string
	if s.voice != "" && s.backend.VoiceArgs != nil {
		args = append(args, s.backend.VoiceArgs(s.voice)...)
	}
	if s.backend.RateArgs != nil {
		args = append(args, s.backend.RateArgs(int(baseWordsPerMinute*rate+0.5))...)
	}
	return append(args, text)
}

// Speak starts speaking text, interrupting any current utterance.
func (s *CommandSpeaker) Speak(text string, rate float64) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), maxUtterance)
	s.cancel = cancel
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	cmd := exec.CommandContext(ctx, s.path, s.Args(text, rate)...)
	s.speaking.Store(true)
	go func() {
		defer cancel()
		if err := cmd.Run(); err != nil && ctx.Err() == nil {
			s.log.WithError(err).WithField("text", text).Warn("speech command failed")
		}
		s.mu.Lock()
		if s.gen == gen {
			s.speaking.Store(false)
		}
		s.mu.Unlock()
	}()
}

// Speaking reports whether an utterance is playing.
func (s *CommandSpeaker) Speaking() bool { return s.speaking.Load() }

// Supported reports true: a synthesizer was found.
func (s *CommandSpeaker) Supported() bool { return true }

// Stop interrupts the current utterance.
func (s *CommandSpeaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	s.speaking.Store(false)
}
