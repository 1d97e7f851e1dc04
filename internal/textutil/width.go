package textutil

import "golang.org/x/text/width"

// ColumnWidth returns the number of diagnostic columns a rune occupies,
// counting wide East-Asian forms as two so the 0-based column carried on
// a Caret lines up with what a terminal renders, not the byte offset.
func ColumnWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// ColumnsForRunes sums ColumnWidth over a sequence of decoded runes.
func ColumnsForRunes(runes []rune) int {
	total := 0
	for _, r := range runes {
		total += ColumnWidth(r)
	}
	return total
}
