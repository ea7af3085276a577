package hadith

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shialibrary/hadith-server/internal/entities"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  Number
	}{
		{"12", Number{Main: 12, Sub: 0}},
		{"12/3", Number{Main: 12, Sub: 3}},
		{"12/", Number{Main: 12, Sub: 0}},
		{"/3", Number{Main: 0, Sub: 3}},
		{"", Number{}},
		{"abc", Number{}},
		{"12/abc", Number{Main: 12, Sub: 0}},
		{" 7 ", Number{Main: 7, Sub: 0}},
		{"10/2/5", Number{Main: 10, Sub: 0}}, // split on first slash only
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseNumber(tt.input), "input %q", tt.input)
	}
}

func TestCompareNumbers(t *testing.T) {
	t.Run("numeric not lexical", func(t *testing.T) {
		assert.Negative(t, CompareNumbers("2", "10"))
		assert.Positive(t, CompareNumbers("10", "2"))
	})

	t.Run("sub number tie break", func(t *testing.T) {
		assert.Negative(t, CompareNumbers("12/2", "12/3"))
		assert.Negative(t, CompareNumbers("12/3", "13"))
		assert.Positive(t, CompareNumbers("12/3", "12"))
	})

	t.Run("compound numbers interleave", func(t *testing.T) {
		// "2" < "10/1" < "10/2" < "11"
		assert.Negative(t, CompareNumbers("2", "10/1"))
		assert.Negative(t, CompareNumbers("10/1", "10/2"))
		assert.Negative(t, CompareNumbers("10/2", "11"))
	})

	t.Run("unparsable compares as zero", func(t *testing.T) {
		assert.Equal(t, 0, CompareNumbers("", "abc"))
		assert.Negative(t, CompareNumbers("xyz", "1"))
	})
}

func TestSortByNumber(t *testing.T) {
	hadiths := []entities.Hadith{
		{ID: 1, HadithNumber: "11"},
		{ID: 2, HadithNumber: "10/2"},
		{ID: 3, HadithNumber: "2"},
		{ID: 4, HadithNumber: "10/1"},
	}

	SortByNumber(hadiths)

	var order []string
	for _, h := range hadiths {
		order = append(order, h.HadithNumber)
	}
	assert.Equal(t, []string{"2", "10/1", "10/2", "11"}, order)
}

func TestSortByNumber_StableForUnparsable(t *testing.T) {
	// Unparsable numbers all parse to (0,0); they must keep their original
	// relative order and sort before everything numeric.
	hadiths := []entities.Hadith{
		{ID: 1, HadithNumber: "5"},
		{ID: 2, HadithNumber: ""},
		{ID: 3, HadithNumber: "intro"},
		{ID: 4, HadithNumber: "note"},
		{ID: 5, HadithNumber: "1"},
	}

	SortByNumber(hadiths)

	var ids []uint
	for _, h := range hadiths {
		ids = append(ids, h.ID)
	}
	assert.Equal(t, []uint{2, 3, 4, 5, 1}, ids)
}
