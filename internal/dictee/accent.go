package dictee

import "unicode"

var accentToBase = map[rune]rune{
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'à': 'a', 'â': 'a',
	'ù': 'u', 'û': 'u',
	'î': 'i', 'ï': 'i',
	'ô': 'o',
	'ç': 'c',
}

// Accented keys offered for each base letter, in keyboard order.
var accentVariants = map[rune][]rune{
	'e': {'é', 'è', 'ê', 'ë'},
	'a': {'à', 'â'},
	'u': {'ù', 'û'},
	'i': {'î', 'ï'},
	'o': {'ô'},
	'c': {'ç'},
}

// BaseLetter folds a lower-case accented letter to its base letter.
func BaseLetter(r rune) rune {
	if base, ok := accentToBase[r]; ok {
		return base
	}
	return r
}

// IsNearMiss reports whether guessed and expected share a base letter but
// are not the same letter. Both runes must already be lower-case.
func IsNearMiss(guessed, expected rune) bool {
	if guessed == expected {
		return false
	}
	return BaseLetter(guessed) == BaseLetter(expected)
}

// Variants returns the accented forms of base, or nil.
func Variants(base rune) []rune {
	return accentVariants[unicode.ToLower(base)]
}

// IsLetter reports whether r occupies a guessable position: ASCII letters
// and the Latin-1 letter block À..ÿ.
func IsLetter(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= 'À' && r <= 'ÿ':
		return true
	}
	return false
}

func letterPositions(word string) []int {
	runes := []rune(word)
	out := make([]int, 0, len(runes))
	for i, r := range runes {
		if IsLetter(r) {
			out = append(out, i)
		}
	}
	return out
}
