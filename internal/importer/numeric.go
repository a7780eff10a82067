package importer

// numeric.go provides the cleanup helpers behind the manual candidate form:
// a digit/decimal stripper for fields like experience and notice period, and
// an LPA-suffix-aware cleanup for CTC fields. Bulk import stores CTC and
// salary cells verbatim after trimming; only the notice period column runs
// through CleanNumeric on the import path.

import (
	"regexp"
	"strings"
)

// plainNumber matches text that is purely numeric with at most one decimal
// point, e.g. "12", "12.5", ".5".
var plainNumber = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)

// CleanNumeric strips every character except digits and, when allowDecimal
// is set, the first decimal point. Later decimal points are dropped rather
// than kept, so "1.2.3" becomes "1.23".
func CleanNumeric(s string, allowDecimal bool) string {
	var b strings.Builder
	seenDot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && allowDecimal && !seenDot:
			b.WriteRune(r)
			seenDot = true
		}
	}
	return b.String()
}

// CleanCurrency normalizes free-text CTC input. Characters outside
// [0-9.LPAlpa] are stripped and the rest upper-cased. Purely numeric input
// is returned unit-less so the user can keep typing; otherwise every
// occurrence of the token "LPA" is collapsed into a single trailing suffix.
func CleanCurrency(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == 'L', r == 'P', r == 'A', r == 'l', r == 'p', r == 'a':
			b.WriteRune(r)
		}
	}

	cleaned := strings.ToUpper(b.String())
	if plainNumber.MatchString(cleaned) {
		return cleaned
	}

	if strings.Contains(cleaned, "LPA") {
		cleaned = strings.ReplaceAll(cleaned, "LPA", "") + "LPA"
	}
	return cleaned
}
