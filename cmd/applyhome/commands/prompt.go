package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const noticePrompt = "모집공고문도 크롤링하시겠습니까? (y/N): "

// Confirm writes question to w and reads one line from r. Only "y" or "Y" accepts;
// anything else, including EOF, declines.
func Confirm(r io.Reader, w io.Writer, question string) bool {
	fmt.Fprint(w, question)

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(w)

		return false
	}

	answer := strings.TrimSpace(line)

	return answer == "y" || answer == "Y"
}
