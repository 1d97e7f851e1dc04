package textutil

import "golang.org/x/text/cases"

var foldCaser = cases.Fold()

// EqualFold reports whether a and b are equal under locale-independent
// Unicode case folding. Used to compare language tags ("en" vs "EN")
// per BCP 47 §2.1.1, which treats subtags as case-insensitive.
func EqualFold(a, b string) bool {
	return foldCaser.String(a) == foldCaser.String(b)
}

// FoldCase returns the case-folded form of s, used to normalise a
// language tag before storing it so two differently-cased encounters
// of the same tag compare equal as map keys.
func FoldCase(s string) string {
	return foldCaser.String(s)
}
