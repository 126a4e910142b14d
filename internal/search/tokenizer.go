package search

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold normalizes a term for matching: NFKC normalization (so full-width
// and half-width forms compare equal, common in Japanese text) followed by
// Unicode case folding.
func Fold(s string) string {
	return cases.Fold().String(norm.NFKC.String(s))
}

// Tokenize splits text into folded index terms using UAX #29 word
// segmentation. Segments without any letter or digit (punctuation,
// whitespace) are dropped.
//
// Design decision: We use uax29 rather than strings.Fields because the
// indexed content is largely Japanese, which has no word-separating spaces.
// UAX #29 segments CJK text into per-character (Han) and small-run
// (Katakana) words, which is what makes single-character queries like
// "猫" match.
func Tokenize(text string) []string {
	tokens := make([]string, 0)

	segs := words.FromString(text)
	for segs.Next() {
		seg := segs.Value()
		if !strings.ContainsFunc(seg, isWordRune) {
			continue
		}
		tokens = append(tokens, Fold(seg))
	}

	return tokens
}

// isWordRune reports whether a rune makes a segment indexable.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
