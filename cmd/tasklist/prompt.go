package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// linePrompter asks on out and reads one line from in.
//
// End of input cancels. An empty reply keeps the initial value, the way an
// untouched dialog input would.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

// Prompt implements tasklist.Prompter.
func (p *linePrompter) Prompt(message, initial string) (string, bool) {
	fmt.Fprintf(p.out, "%s [%s] ", message, initial)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return "", false
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return initial, true
	}
	return line, true
}

// Confirm implements tasklist.Confirmer. Only y or yes agrees.
func (p *linePrompter) Confirm(message string) bool {
	fmt.Fprintf(p.out, "%s [y/N] ", message)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
