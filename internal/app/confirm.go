package app

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer decides whether a previewed ticket should be created.
type Confirmer interface {
	Confirm(preview string) (bool, error)
}

// StdinConfirmer prompts the operator on out and reads a Y/n answer
// from in. An empty answer counts as yes.
type StdinConfirmer struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewStdinConfirmer returns a Confirmer reading answers from in.
func NewStdinConfirmer(in io.Reader, out io.Writer) *StdinConfirmer {
	return &StdinConfirmer{reader: bufio.NewReader(in), out: out}
}

// Confirm implements Confirmer.
func (c *StdinConfirmer) Confirm(preview string) (bool, error) {
	fmt.Fprintf(c.out, "\n%s\nY/n > ", preview) // nolint:errcheck

	line, err := c.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read answer: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "" || answer == "y", nil
}

// AutoConfirmer answers every prompt the same way, for non-interactive
// runs (--yes) and tests.
type AutoConfirmer struct {
	Answer bool
	Out    io.Writer
}

// Confirm implements Confirmer.
func (c AutoConfirmer) Confirm(preview string) (bool, error) {
	if c.Out != nil {
		fmt.Fprintf(c.Out, "\n%s\n", preview) // nolint:errcheck
	}
	return c.Answer, nil
}
