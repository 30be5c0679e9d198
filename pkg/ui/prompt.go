package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// ErrInterrupted is returned when the user presses Ctrl+C at a prompt.
var ErrInterrupted = errors.New("interrupted")

// LinePrompter reads user input. On a terminal it uses liner for editing
// and history; otherwise it reads plain lines from the given reader.
type LinePrompter struct {
	line    *liner.State
	scanner *bufio.Scanner
	out     io.Writer
}

// NewLinePrompter returns a prompter. When interactive is false, in and out
// are used directly with no line editing.
func NewLinePrompter(in io.Reader, out io.Writer, interactive bool) *LinePrompter {
	p := &LinePrompter{out: out}
	if interactive {
		p.line = liner.NewLiner()
		p.line.SetCtrlCAborts(true)
		p.line.SetMultiLineMode(true)
	} else {
		p.scanner = bufio.NewScanner(in)
		p.scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	}
	return p
}

// ReadLine reads one line after showing label.
func (p *LinePrompter) ReadLine(label string) (string, error) {
	if p.line != nil {
		text, err := p.line.Prompt(label)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", ErrInterrupted
		}
		return text, err
	}

	fmt.Fprint(p.out, label)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.scanner.Text(), nil
}

// ReadPrompt reads a chat prompt. A line ending in a backslash continues on
// the next line, shown with continuation as its label. Non-empty prompts
// are added to the editing history.
func (p *LinePrompter) ReadPrompt(label, continuation string) (string, error) {
	text, err := readContinued(p.ReadLine, label, continuation)
	if err != nil {
		return "", err
	}
	if p.line != nil && strings.TrimSpace(text) != "" {
		p.line.AppendHistory(strings.ReplaceAll(text, "\n", " "))
	}
	return text, nil
}

// Close restores the terminal.
func (p *LinePrompter) Close() error {
	if p.line == nil {
		return nil
	}
	return p.line.Close()
}

func readContinued(read func(string) (string, error), label, continuation string) (string, error) {
	var lines []string
	for {
		text, err := read(label)
		if err != nil {
			if errors.Is(err, io.EOF) && len(lines) > 0 {
				return strings.Join(lines, "\n"), nil
			}
			return "", err
		}
		trimmed := strings.TrimRight(text, " \t")
		if !strings.HasSuffix(trimmed, `\`) {
			lines = append(lines, text)
			return strings.Join(lines, "\n"), nil
		}
		lines = append(lines, strings.TrimSuffix(trimmed, `\`))
		label = continuation
	}
}
