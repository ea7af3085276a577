// Package hadith holds the pure text logic shared across the library:
// ordering of hadith number strings and Arabic normalization for
// diacritic-insensitive matching.
package hadith

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shialibrary/hadith-server/internal/entities"
)

// Number is the parsed form of a hadith_number string. Compound numbers like
// "12/3" split into Main=12, Sub=3; plain numbers have Sub=0. Anything that
// fails integer parsing (empty, non-numeric) contributes 0 for that part, so
// malformed numbers collect at the front of a sorted list.
type Number struct {
	Main int
	Sub  int
}

// ParseNumber parses a hadith_number display string into its sortable parts.
func ParseNumber(s string) Number {
	if s == "" {
		return Number{}
	}

	if idx := strings.Index(s, "/"); idx >= 0 {
		return Number{
			Main: parseIntOrZero(s[:idx]),
			Sub:  parseIntOrZero(s[idx+1:]),
		}
	}

	return Number{Main: parseIntOrZero(s)}
}

func parseIntOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// CompareNumbers orders two hadith_number strings: main part ascending, then
// sub part ascending. Lexical string order is wrong for this data ("10" would
// sort before "2", and "12/10" before "12/2").
func CompareNumbers(a, b string) int {
	na, nb := ParseNumber(a), ParseNumber(b)
	if na.Main != nb.Main {
		if na.Main < nb.Main {
			return -1
		}
		return 1
	}
	if na.Sub != nb.Sub {
		if na.Sub < nb.Sub {
			return -1
		}
		return 1
	}
	return 0
}

// SortByNumber sorts hadiths in place by their number string. The sort is
// stable: rows with equal (or unparsable) numbers keep their incoming order.
func SortByNumber(hadiths []entities.Hadith) {
	sort.SliceStable(hadiths, func(i, j int) bool {
		return CompareNumbers(hadiths[i].HadithNumber, hadiths[j].HadithNumber) < 0
	})
}
