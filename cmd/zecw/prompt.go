package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/term"
)

var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

type fileDescriptor interface {
	Fd() uintptr
}

// terminalPrompter reads secrets from in. Terminals have their echo
// disabled while typing, anything else is read up to the end of line.
type terminalPrompter struct {
	in  io.Reader
	out io.Writer
}

func (p terminalPrompter) ReadSecret(prompt string) ([]byte, error) {
	if _, err := fmt.Fprintln(p.out, prompt); err != nil {
		return nil, err
	}

	if f, ok := p.in.(fileDescriptor); ok && isTerminal(int(f.Fd())) {
		secret, err := readPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		return secret, err
	}

	line, err := bufio.NewReader(p.in).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return bytes.TrimRight(line, "\r\n"), nil
}
