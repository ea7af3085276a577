package hadith

import "strings"

// Arabic letter variants folded during normalization.
const (
	alef           = 'ا' // ا
	alefMadda      = 'آ' // آ
	alefHamzaAbove = 'أ' // أ
	alefHamzaBelow = 'إ' // إ
	alefWasla      = 'ٱ' // ٱ
	wawHamza       = 'ؤ' // ؤ
	waw            = 'و' // و
	yehHamza       = 'ئ' // ئ
	yeh            = 'ي' // ي
)

// Script classifies a search query by the script of its letters.
type Script int

const (
	ScriptNone Script = iota
	ScriptArabic
	ScriptLatin
)

// DetectScript classifies a query. A query containing any code point in the
// Arabic block is Arabic; otherwise one containing a Latin letter or an ASCII
// digit takes the English path (digit-only queries search hadith numbers).
// Queries satisfying neither perform no matching.
func DetectScript(q string) Script {
	for _, r := range q {
		if r >= 0x0600 && r <= 0x06FF {
			return ScriptArabic
		}
	}
	for _, r := range q {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return ScriptLatin
		}
	}
	return ScriptNone
}

// IsNumeric reports whether the query consists solely of ASCII digits,
// optionally with a single "/" (the compound hadith number shape).
func IsNumeric(q string) bool {
	if q == "" {
		return false
	}
	slashes := 0
	for _, r := range q {
		switch {
		case r >= '0' && r <= '9':
		case r == '/':
			slashes++
			if slashes > 1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// NormalizeArabic strips tashkeel and folds hamza letter variants so that
// vocalized and unvocalized spellings of the same word compare equal. The same
// function is applied to the query and to stored text; the two sides must
// never diverge.
//
// Removed marks: U+0610..U+061A, U+064B..U+065F, U+0670 (superscript alef),
// U+06D6..U+06ED (Quranic annotation signs), and tatweel (U+0640).
// Folded letters: the alif-hamza forms to plain alif, waw-hamza to waw,
// ya-hamza to ya. Runs of whitespace collapse to a single space.
func NormalizeArabic(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastSpace := false
	for _, r := range s {
		if isArabicMark(r) {
			continue
		}
		switch r {
		case alefMadda, alefHamzaAbove, alefHamzaBelow, alefWasla:
			r = alef
		case wawHamza:
			r = waw
		case yehHamza:
			r = yeh
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if lastSpace {
				continue
			}
			lastSpace = true
			r = ' '
		} else {
			lastSpace = false
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(b.String())
}

func isArabicMark(r rune) bool {
	switch {
	case r >= 0x0610 && r <= 0x061A:
		return true
	case r >= 0x064B && r <= 0x065F:
		return true
	case r == 0x0670:
		return true
	case r >= 0x06D6 && r <= 0x06ED:
		return true
	case r == 0x0640: // tatweel
		return true
	}
	return false
}

// ContainsNormalized reports whether needle occurs in haystack once both are
// normalized. Used by the client-side fallback filter pass.
func ContainsNormalized(haystack, needle string) bool {
	return strings.Contains(NormalizeArabic(haystack), NormalizeArabic(needle))
}
