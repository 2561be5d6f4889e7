package chunking

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// textSplitter splits oversized text on the best available separator,
// falling back through the configured separators in order and finally to an
// arbitrary-character cut. Lengths and positions are counted in runes.
type textSplitter struct {
	maxLen     int
	overlap    int
	separators [][]rune
}

func newTextSplitter(maxLen, overlap int, separators []string) *textSplitter {
	ts := &textSplitter{maxLen: maxLen, overlap: overlap}
	for _, sep := range separators {
		ts.separators = append(ts.separators, []rune(sep))
	}
	return ts
}

// split returns a fragment of s no longer than maxLen and the remainder of s.
// The separator split on appears in neither. A string that already fits is
// returned whole with an empty remainder, so split can be called on the
// remainder until it is consumed.
func (ts *textSplitter) split(s string) (string, string) {
	if utf8.RuneCountInString(s) <= ts.maxLen {
		return s, ""
	}
	runes := []rune(s)

	for _, sep := range ts.separators {
		fragment, remainder, ok := ts.splitFromMaxLen(runes, sep)
		if !ok || fragment == "" || utf8.RuneCountInString(remainder) >= len(runes) {
			continue
		}
		return trimRight(fragment), trimLeft(remainder)
	}

	// No separator in range: cut at exactly maxLen, restarting the remainder
	// overlap characters before the cut.
	return trimRight(string(runes[:ts.maxLen])), trimLeft(string(runes[ts.maxLen-ts.overlap:]))
}

// splitFromMaxLen splits on the right-most occurrence of sep that starts after
// position overlap and ends no later than maxLen+len(sep). A match starting
// at or before overlap would not shorten the text and is not considered.
func (ts *textSplitter) splitFromMaxLen(runes, sep []rune) (string, string, bool) {
	start := lastIndexRunes(runes[:min(ts.maxLen+len(sep), len(runes))], sep, ts.overlap+1)
	if start < 0 {
		return "", "", false
	}

	fragment := trimRight(string(runes[:start]))
	remainder := trimLeft(string(runes[start+len(sep):]))

	// the separator is replaced by a single space between overlap and remainder
	const joiner = " "
	if ts.overlap <= len(joiner) || remainder == "" {
		return fragment, remainder, true
	}

	fragmentRunes := []rune(fragment)
	tailLen := ts.overlap - len(joiner)
	tail := trimLeft(string(fragmentRunes[max(0, len(fragmentRunes)-tailLen):]))
	return fragment, tail + joiner + remainder, true
}

// lastIndexRunes returns the start of the last occurrence of sep in runes that
// starts at or after from, or -1.
func lastIndexRunes(runes, sep []rune, from int) int {
	for i := len(runes) - len(sep); i >= from; i-- {
		if equalRunes(runes[i:i+len(sep)], sep) {
			return i
		}
	}
	return -1
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func trimLeft(s string) string { return strings.TrimLeftFunc(s, unicode.IsSpace) }

func trimRight(s string) string { return strings.TrimRightFunc(s, unicode.IsSpace) }

// textLen is the length of s in characters.
func textLen(s string) int { return utf8.RuneCountInString(s) }

// normalizeSpace collapses runs of whitespace to a single space and trims the
// ends.
func normalizeSpace(s string) string { return strings.Join(strings.Fields(s), " ") }
