package speech

import (
	"context"
	"io"
	"os/exec"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickFrenchPrefersNamedVoices(t *testing.T) {
	voices := []Voice{
		{Name: "Alex", Lang: "en_US"},
		{Name: "fr-fr", Lang: "fr-FR"},
		{Name: "Amelie", Lang: "fr_CA"},
		{Name: "Thomas", Lang: "fr_FR"},
	}
	v, ok := PickFrench(voices)
	require.True(t, ok)
	assert.Equal(t, "Thomas", v.Name)
}

func TestPickFrenchFallbacks(t *testing.T) {
	v, ok := PickFrench([]Voice{{Name: "x", Lang: "fr-BE"}, {Name: "y", Lang: "fr_FR"}})
	require.True(t, ok)
	assert.Equal(t, "y", v.Name)

	v, ok = PickFrench([]Voice{{Name: "Thomas", Lang: "en_US"}, {Name: "z", Lang: "fr-CH"}})
	require.True(t, ok)
	assert.Equal(t, "z", v.Name)

	_, ok = PickFrench([]Voice{{Name: "Alex", Lang: "en_US"}})
	assert.False(t, ok)
}

func TestParseSayVoices(t *testing.T) {
	out := "Alex                en_US    # Most people recognize me by my voice.\n" +
		"Thomas              fr_FR    # Bonjour, je m'appelle Thomas.\n" +
		"Eddy (French (Canada)) fr_CA    # Bonjour!\n"
	voices := ParseSayVoices(out)
	require.Len(t, voices, 3)
	assert.Equal(t, Voice{Name: "Thomas", Lang: "fr_FR"}, voices[1])
	assert.Equal(t, "Eddy (French (Canada))", voices[2].Name)
}

func TestParseEspeakVoices(t *testing.T) {
	out := "Pty Language       Age/Gender VoiceName          File                 Other Languages\n" +
		" 5  fr              --/M      French             roa/fr               (fr-fr 5)\n" +
		" 5  fr-be           --/M      French_(Belgium)   roa/fr-BE            (fr 8)\n"
	voices := ParseEspeakVoices(out)
	require.Len(t, voices, 2)
	assert.Equal(t, Voice{Name: "French", Lang: "fr"}, voices[0])
}

func TestArgs(t *testing.T) {
	s := &CommandSpeaker{backend: Backends[0], voice: "fr-fr"}
	assert.Equal(t, []string{"-v", "fr-fr", "-s", "149", "le cactus"}, s.Args("le cactus", 0))
	assert.Equal(t, []string{"-v", "fr-fr", "-s", "175", "x"}, s.Args("x", 1))
}

func TestCommandSpeakerRuns(t *testing.T) {
	path, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true not available")
	}
	s := &CommandSpeaker{backend: Backend{}, path: path, log: nopLogger()}
	s.Speak("bonjour", DefaultRate)
	require.Eventually(t, func() bool { return !s.Speaking() }, 2*time.Second, 10*time.Millisecond)
	s.Stop()
	assert.False(t, s.Speaking())
}

func TestNop(t *testing.T) {
	var sp Speaker = Nop{}
	sp.Speak("x", 1)
	assert.False(t, sp.Speaking())
	assert.False(t, sp.Supported())
}

func TestDetectUnknownCommand(t *testing.T) {
	sp := Detect(context.Background(), Options{Command: "/nonexistent/espeak-ng", Log: nopLogger()})
	assert.False(t, sp.Supported())
}

func nopLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
