// Package textutil holds the whitespace normalization shared by the splitter
// and the classifier.
package textutil

import "strings"

// TabWidth is the tab stop used when expanding tabs before measuring indentation.
const TabWidth = 8

// ExpandTabs replaces each tab with spaces up to the next multiple of TabWidth.
func ExpandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := TabWidth - col%TabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n', '\r':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}

// IsBlank reports whether line holds only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// Indentation returns the width of the leading whitespace of line.
func Indentation(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// Margin returns the smallest indentation among the non-blank lines, and
// false when every line is blank.
func Margin(lines []string) (int, bool) {
	margin, found := 0, false
	for _, line := range lines {
		if IsBlank(line) {
			continue
		}
		if n := Indentation(line); !found || n < margin {
			margin, found = n, true
		}
	}
	return margin, found
}

// removeMargin strips margin columns from every line in place.
// Blank lines become empty.
func removeMargin(lines []string, margin int) {
	for i, line := range lines {
		if IsBlank(line) {
			lines[i] = ""
			continue
		}
		lines[i] = line[margin:]
	}
}

// Dedent removes the common leading whitespace of the non-blank lines of
// text. Relative indentation and blank lines are kept; whitespace-only lines
// are emptied.
func Dedent(text string) string {
	lines := strings.Split(ExpandTabs(text), "\n")
	margin, ok := Margin(lines)
	if !ok {
		margin = 0
	}
	removeMargin(lines, margin)
	return strings.Join(lines, "\n")
}

// CleanDoc normalizes a docstring the way it is conventionally written
// inside source code: the first line loses its leading whitespace, the
// remaining lines lose their common margin, and leading and trailing blank
// lines are dropped. CRLF line endings are converted to LF.
//
// The returned count is the number of leading lines dropped, so that line
// numbers in the result can be mapped back to text.
func CleanDoc(text string) (string, int) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(ExpandTabs(text), "\n")
	lines[0] = strings.TrimLeft(lines[0], " ")
	if len(lines) > 1 {
		if margin, ok := Margin(lines[1:]); ok {
			removeMargin(lines[1:], margin)
		}
	}

	dropped := 0
	for len(lines) > 0 && IsBlank(lines[0]) {
		lines = lines[1:]
		dropped++
	}
	for len(lines) > 0 && IsBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		if IsBlank(line) {
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n"), dropped
}

// SplitFirstLine splits s at its first line break. rest is empty and ok is
// false when s is a single line.
func SplitFirstLine(s string) (first, rest string, ok bool) {
	first, rest, ok = strings.Cut(s, "\n")
	return first, rest, ok
}
