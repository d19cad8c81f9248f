// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package terminal provides prompt helpers for interactive commands.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

// Width returns the terminal width of stdout, or 80 when it is not a
// terminal.
func Width() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// LinesFor returns how many terminal lines textLength characters occupy
// at the given width, plus the line the cursor moves to after Enter.
func LinesFor(textLength, width int) int {
	if width < 1 {
		width = 80
	}
	lines := int(math.Ceil(float64(textLength) / float64(width)))
	if lines < 1 {
		lines = 1
	}
	return lines + 1
}

// ClearPreviousLines erases a prompt and the user's answer from the
// terminal. textLength is len(prompt)+len(answer).
func ClearPreviousLines(textLength int) {
	linesToClear := LinesFor(textLength, Width())
	for i := 0; i < linesToClear; i++ {
		fmt.Print("\r\x1b[2K") // Move to start and clear entire line
		if i < linesToClear-1 {
			fmt.Print("\x1b[1A") // Move up one line
		}
	}
}

// ReadLine prints prompt and reads one trimmed line from r.
func ReadLine(r *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadSecret prints prompt and reads a line without echo when stdin is a
// terminal, falling back to ReadLine on r otherwise.
func ReadSecret(r *bufio.Reader, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return ReadLine(r, prompt)
	}
	fmt.Print(prompt)
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
