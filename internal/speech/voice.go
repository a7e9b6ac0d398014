package speech

import (
	"bufio"
	"regexp"
	"strings"
)

// Voice is a synthesizer voice.
type Voice struct {
	Name string
	Lang string
}

var preferredVoices = []string{"Thomas", "Google français", "Amelie", "Audrey"}

func normLang(lang string) string {
	return strings.ToLower(strings.ReplaceAll(lang, "_", "-"))
}

// PickFrench chooses the best French voice: a preferred voice by name, then
// any fr-FR voice, then any French voice.
func PickFrench(voices []Voice) (Voice, bool) {
	for _, name := range preferredVoices {
		for _, v := range voices {
			if strings.Contains(v.Name, name) && strings.HasPrefix(normLang(v.Lang), "fr") {
				return v, true
			}
		}
	}
	for _, v := range voices {
		if normLang(v.Lang) == "fr-fr" {
			return v, true
		}
	}
	for _, v := range voices {
		if strings.HasPrefix(normLang(v.Lang), "fr") {
			return v, true
		}
	}
	return Voice{}, false
}

var sayLang = regexp.MustCompile(`^[a-z]{2,3}_[A-Z]{2}$`)

// ParseSayVoices parses the output of `say -v ?`:
//
//	Thomas              fr_FR    # Bonjour, je m'appelle Thomas.
func ParseSayVoices(out string) []Voice {
	var voices []Voice
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		for i := len(fields) - 1; i > 0; i-- {
			if sayLang.MatchString(fields[i]) {
				voices = append(voices, Voice{Name: strings.Join(fields[:i], " "), Lang: fields[i]})
				break
			}
		}
	}
	return voices
}

// ParseEspeakVoices parses the table printed by `espeak-ng --voices`.
func ParseEspeakVoices(out string) []Voice {
	var voices []Voice
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || fields[0] == "Pty" {
			continue
		}
		voices = append(voices, Voice{Name: fields[3], Lang: fields[1]})
	}
	return voices
}
