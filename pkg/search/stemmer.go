package search

import "strings"

// stem applies the simplified Porter stemmer (steps 1a, 1b, 1c only)
// specified in spec.md §4.2.1. The caller is responsible for
// lowercasing first; stem assumes it.
func stem(word string) string {
	word = step1a(word)
	word = step1b(word)
	word = step1c(word)
	return word
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	default:
		return false
	}
}

// isConsonant treats 'y' as a consonant except when preceded by
// another consonant (the standard Porter convention).
func isConsonant(w string, i int) bool {
	c := w[i]
	if isVowel(c) {
		return false
	}
	if c == 'y' {
		if i == 0 {
			return true
		}
		return !isConsonant(w, i-1)
	}
	return true
}

// measure counts VC transitions (the Porter "m" value) over the whole
// word's consonant/vowel sequence.
func measure(w string) int {
	if w == "" {
		return 0
	}
	m := 0
	prevWasConsonant := isConsonant(w, 0)
	for i := 1; i < len(w); i++ {
		cur := isConsonant(w, i)
		if prevWasConsonant && !cur {
			// vowel follows consonant: nothing counted yet
		}
		if !prevWasConsonant && cur {
			m++
		}
		prevWasConsonant = cur
	}
	return m
}

// containsVowel reports whether the stem has at least one vowel
// (treating non-initial 'y' after a consonant as a vowel per Porter).
func containsVowel(w string) bool {
	for i := range w {
		if !isConsonant(w, i) {
			return true
		}
	}
	return false
}

func endsDoubleConsonant(w string) bool {
	n := len(w)
	if n < 2 {
		return false
	}
	a, b := w[n-1], w[n-2]
	if a != b {
		return false
	}
	return isConsonant(w, n-1) && isConsonant(w, n-2)
}

// endsCVC reports whether the word ends consonant-vowel-consonant,
// with the final consonant not w/x/y.
func endsCVC(w string) bool {
	n := len(w)
	if n < 3 {
		return false
	}
	if !isConsonant(w, n-3) || isConsonant(w, n-2) || !isConsonant(w, n-1) {
		return false
	}
	switch w[n-1] {
	case 'w', 'x', 'y':
		return false
	}
	return true
}

func step1a(w string) string {
	switch {
	case strings.HasSuffix(w, "sses"):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "ies"):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "ss"):
		return w
	case strings.HasSuffix(w, "s") && len(w) > 1 && w[len(w)-2] != 's':
		return w[:len(w)-1]
	default:
		return w
	}
}

func step1b(w string) string {
	switch {
	case strings.HasSuffix(w, "eed"):
		stemPart := w[:len(w)-3]
		if measure(stemPart) > 0 {
			return stemPart + "ee"
		}
		return w
	case strings.HasSuffix(w, "ed") && containsVowel(w[:len(w)-2]):
		return step1bPost(w[:len(w)-2])
	case strings.HasSuffix(w, "ing") && containsVowel(w[:len(w)-3]):
		return step1bPost(w[:len(w)-3])
	default:
		return w
	}
}

func step1bPost(stemPart string) string {
	switch {
	case strings.HasSuffix(stemPart, "at"), strings.HasSuffix(stemPart, "bl"), strings.HasSuffix(stemPart, "iz"):
		return stemPart + "e"
	case endsDoubleConsonant(stemPart) && !strings.HasSuffix(stemPart, "l") && !strings.HasSuffix(stemPart, "s") && !strings.HasSuffix(stemPart, "z"):
		return stemPart[:len(stemPart)-1]
	case measure(stemPart) == 1 && endsCVC(stemPart):
		return stemPart + "e"
	default:
		return stemPart
	}
}

func step1c(w string) string {
	if strings.HasSuffix(w, "y") && len(w) > 1 && containsVowel(w[:len(w)-1]) {
		return w[:len(w)-1] + "i"
	}
	return w
}
