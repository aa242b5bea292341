package formatter

import "strings"

// Fence follows fenced code blocks line by line. A block opened by a run of n
// backticks closes only at a line holding n or more backticks and nothing else.
type Fence struct {
	open int
}

// Step advances over line and reports whether it belongs to a fenced block,
// delimiters included.
func (f *Fence) Step(line string) bool {
	trimmed := strings.TrimSpace(line)
	run := backtickRun(trimmed)

	if f.open == 0 {
		if run >= 3 {
			f.open = run

			return true
		}

		return false
	}

	if run >= f.open && run == len(trimmed) {
		f.open = 0
	}

	return true
}

func backtickRun(s string) int {
	n := 0
	for n < len(s) && s[n] == '`' {
		n++
	}

	return n
}

// FenceFor returns a backtick fence that text cannot close: longer than any
// backtick run in text and at least three long.
func FenceFor(text string) string {
	longest, run := 0, 0

	for _, r := range text {
		if r != '`' {
			run = 0

			continue
		}

		run++
		longest = max(longest, run)
	}

	return strings.Repeat("`", max(3, longest+1))
}
