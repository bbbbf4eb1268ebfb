// Package langhint guesses a display locale from the script of the input text
package langhint

import (
	"strings"
	"unicode"
)

// Auto is the locale value that asks for detection
const Auto = "auto"

// minLetters is the smallest letter count a language guess is made from
const minLetters = 4

// Hint is the result of a script scan
type Hint struct {
	Script  string // predominant script, empty when the text has no letters
	Lang    string // BCP 47 language, empty when the script is ambiguous
	Letters int
}

var scripts = []struct {
	name  string
	table *unicode.RangeTable
	lang  string
}{
	// order breaks ties; Latin is last so any specific script wins
	{"Hiragana", unicode.Hiragana, "ja"},
	{"Katakana", unicode.Katakana, "ja"},
	{"Hangul", unicode.Hangul, "ko"},
	{"Han", unicode.Han, ""},
	{"Arabic", unicode.Arabic, "ar"},
	{"Hebrew", unicode.Hebrew, "he"},
	{"Thai", unicode.Thai, "th"},
	{"Greek", unicode.Greek, "el"},
	{"Cyrillic", unicode.Cyrillic, ""},
	{"Devanagari", unicode.Devanagari, ""},
	{"Latin", unicode.Latin, ""},
}

// Detect scans s and reports its predominant script and, when decisive, a language
// any kana makes the text Japanese even when Han dominates
func Detect(s string) Hint {
	counts := make([]int, len(scripts))
	var h Hint
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		h.Letters++
		for i, sc := range scripts {
			if unicode.Is(sc.table, r) {
				counts[i]++
				break
			}
		}
	}

	best := -1
	for i, n := range counts {
		if n > 0 && (best < 0 || n > counts[best]) {
			best = i
		}
	}
	if best < 0 {
		return h
	}
	h.Script = scripts[best].name
	if h.Letters < minLetters {
		return h
	}

	switch {
	case counts[0] > 0 || counts[1] > 0:
		h.Lang = "ja"
	default:
		h.Lang = scripts[best].lang
	}
	return h
}

// Resolve returns requested unless it is empty or auto; then the detected
// language of text, falling back to def
func Resolve(requested, text, def string) string {
	requested = strings.TrimSpace(requested)
	if requested != "" && !strings.EqualFold(requested, Auto) {
		return requested
	}
	if lang := Detect(text).Lang; lang != "" {
		return lang
	}
	return def
}
