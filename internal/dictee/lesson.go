// Package dictee implements the spelling dictation game: lessons, the
// per-word round state machine, the meaning quiz, scoring and the session
// orchestrator that sequences them.
package dictee

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Word is a single dictation entry.
type Word struct {
	Word            string   `toml:"word"`
	Article         string   `toml:"article"`
	Translation     string   `toml:"translation"`
	AltTranslations []string `toml:"alt_translations"`
}

// Display returns the word prefixed by its article hint, if any.
func (w Word) Display() string {
	if w.Article == "" {
		return w.Word
	}
	if strings.HasSuffix(w.Article, "'") {
		return w.Article + w.Word
	}
	return w.Article + " " + w.Word
}

// Spoken returns the text handed to the speech collaborator.
func (w Word) Spoken() string {
	if w.Article == "" {
		return w.Word
	}
	return w.Article + " " + w.Word
}

// Group is a set of words sharing a spelling rule.
type Group struct {
	Label string `toml:"label"`
	Words []Word `toml:"words"`
}

// Lesson is an immutable, ordered collection of groups.
type Lesson struct {
	ID          string  `toml:"id"`
	Title       string  `toml:"title"`
	Description string  `toml:"description"`
	Emoji       string  `toml:"emoji"`
	Groups      []Group `toml:"groups"`
}

// TotalWords returns the number of words across all groups.
func (l Lesson) TotalWords() int {
	total := 0
	for _, g := range l.Groups {
		total += len(g.Words)
	}
	return total
}

// Validate checks the structural invariants of a lesson.
func (l Lesson) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return errors.New("lesson id is empty")
	}
	if len(l.Groups) == 0 {
		return fmt.Errorf("lesson %q has no groups", l.ID)
	}
	for gi, g := range l.Groups {
		if len(g.Words) == 0 {
			return fmt.Errorf("lesson %q: group %d (%q) has no words", l.ID, gi, g.Label)
		}
		for _, w := range g.Words {
			if len(letterPositions(w.Word)) == 0 {
				return fmt.Errorf("lesson %q: word %q has no letters to guess", l.ID, w.Word)
			}
			if w.Translation == "" {
				return fmt.Errorf("lesson %q: word %q has no translation", l.ID, w.Word)
			}
			if slices.Contains(w.AltTranslations, w.Translation) {
				return fmt.Errorf("lesson %q: word %q lists its translation as a distractor", l.ID, w.Word)
			}
		}
	}
	return nil
}
