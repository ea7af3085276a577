package hadith

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectScript(t *testing.T) {
	tests := []struct {
		query string
		want  Script
	}{
		{"محمد", ScriptArabic},
		{"مُحَمَّد", ScriptArabic},
		{"Allah", ScriptLatin},
		{"allah said محمد", ScriptArabic}, // Arabic wins on mixed input
		{"123", ScriptLatin},
		{"12/3", ScriptLatin},
		{"!!??", ScriptNone},
		{"", ScriptNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectScript(tt.query), "query %q", tt.query)
	}
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("123"))
	assert.True(t, IsNumeric("12/3"))
	assert.False(t, IsNumeric("12/3/4"))
	assert.False(t, IsNumeric("12a"))
	assert.False(t, IsNumeric(""))
}

func TestNormalizeArabic_StripsDiacritics(t *testing.T) {
	// "مُحَمَّد" with fatha/damma/shadda reduces to the bare letters.
	assert.Equal(t, "محمد", NormalizeArabic("مُحَمَّد"))
	// Already-plain text is unchanged.
	assert.Equal(t, "محمد", NormalizeArabic("محمد"))
}

func TestNormalizeArabic_FoldsHamzaForms(t *testing.T) {
	assert.Equal(t, "احمد", NormalizeArabic("أحمد"))
	assert.Equal(t, "امن", NormalizeArabic("آمن"))
	assert.Equal(t, "اسلام", NormalizeArabic("إسلام"))
	assert.Equal(t, "مومن", NormalizeArabic("مؤمن"))
	assert.Equal(t, "بير", NormalizeArabic("بئر"))
}

func TestNormalizeArabic_RemovesTatweel(t *testing.T) {
	assert.Equal(t, "محمد", NormalizeArabic("محـــمد"))
}

func TestNormalizeArabic_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "قال رسول الله", NormalizeArabic("  قال \n رسول\tالله "))
}

func TestNormalizeArabic_QueryAndStoredSidesAgree(t *testing.T) {
	// The same word with and without tashkeel must normalize identically:
	// this is the invariant the search fallback filter depends on.
	vocalized := "قَالَ رَسُولُ اللَّهِ"
	plain := "قال رسول الله"
	assert.Equal(t, NormalizeArabic(plain), NormalizeArabic(vocalized))
}

func TestContainsNormalized(t *testing.T) {
	stored := "حَدَّثَنَا مُحَمَّدُ بْنُ يَعْقُوبَ"
	assert.True(t, ContainsNormalized(stored, "محمد"))
	assert.True(t, ContainsNormalized(stored, "مُحَمَّد"))
	assert.False(t, ContainsNormalized(stored, "علي"))
}
