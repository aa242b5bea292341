// Package textutil provides string and HTTP helpers shared by the collector stages.
package textutil

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var blankLines = regexp.MustCompile(`\n\s*\n`)

// NormalizeWhitespace replaces multiple whitespace with single space.
func NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// CollapseBlankLines replaces runs of blank lines with a single blank line.
func CollapseBlankLines(str string) string {
	return blankLines.ReplaceAllString(str, "\n\n")
}

// Truncate cuts str to at most maxRunes characters without splitting a rune.
func Truncate(str string, maxRunes int) string {
	if maxRunes < 0 {
		maxRunes = 0
	}

	if utf8.RuneCountInString(str) <= maxRunes {
		return str
	}

	n := 0
	for i := range str {
		if n == maxRunes {
			return str[:i]
		}
		n++
	}

	return str
}

// Truncated reports whether Truncate would shorten str.
func Truncated(str string, maxRunes int) bool {
	return utf8.RuneCountInString(str) > maxRunes
}
