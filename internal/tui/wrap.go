package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/aprendemos/internal/dictee"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildBoard renders the letter slots of a round. Filled positions show the
// expected rune, the cursor slot takes the colour of the last guess and the
// remaining slots are placeholders.
func buildBoard(round *dictee.Round, outcome dictee.GuessOutcome) []styledRune {
	runes := round.Runes()
	cursor := round.CursorIndex()
	out := make([]styledRune, 0, len(runes))
	for i, r := range runes {
		switch {
		case r == ' ':
			out = append(out, styledRune{s: " ", width: 1, isSpace: true})
		case round.Filled(i):
			out = append(out, styledRune{s: filledStyle.Render(string(r)), width: runewidth.RuneWidth(r)})
		case i == cursor:
			out = append(out, styledRune{s: cursorStyleFor(outcome).Render("_"), width: 1})
		default:
			out = append(out, styledRune{s: pendingStyle.Render("·"), width: 1})
		}
	}
	return out
}

// buildProBoard renders only the filled prefix followed by a bar cursor.
func buildProBoard(round *dictee.Round, outcome dictee.GuessOutcome) []styledRune {
	runes := round.Runes()
	out := make([]styledRune, 0, len(runes)+1)
	for i, r := range runes {
		if !round.Filled(i) {
			break
		}
		out = append(out, styledRune{s: filledStyle.Render(string(r)), width: runewidth.RuneWidth(r), isSpace: r == ' '})
	}
	if !round.Done() {
		out = append(out, styledRune{s: cursorStyleFor(outcome).UnsetUnderline().Render("|"), width: 1})
	}
	return out
}

func cursorStyleFor(outcome dictee.GuessOutcome) lipgloss.Style {
	switch outcome {
	case dictee.GuessNearMiss:
		return nearStyle.Underline(true)
	case dictee.GuessWrong:
		return badStyle.Underline(true)
	default:
		return cursorStyle
	}
}

// spaced separates letter slots with a blank cell so each reads as a box.
func spaced(runes []styledRune) []styledRune {
	out := make([]styledRune, 0, len(runes)*2)
	for i, item := range runes {
		if i > 0 {
			out = append(out, styledRune{s: " ", width: 1})
		}
		out = append(out, item)
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks runes into lines no wider than width, preferring
// to break at spaces.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
