package ui

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func scripted(lines ...string) (func(string) (string, error), *[]string) {
	var labels []string
	return func(label string) (string, error) {
		labels = append(labels, label)
		if len(lines) == 0 {
			return "", io.EOF
		}
		line := lines[0]
		lines = lines[1:]
		return line, nil
	}, &labels
}

func TestReadContinued(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		want   string
		labels int
	}{
		{name: "single line", lines: []string{"hello"}, want: "hello", labels: 1},
		{name: "continued", lines: []string{`first \`, "second"}, want: "first \nsecond", labels: 2},
		{name: "trailing spaces after backslash", lines: []string{"a\\  ", "b\\", "c"}, want: "a\nb\nc", labels: 3},
		{name: "eof after continuation", lines: []string{`dangling \`}, want: "dangling ", labels: 2},
		{name: "escaped mid line", lines: []string{`path\to\file`}, want: `path\to\file`, labels: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			read, labels := scripted(tt.lines...)
			got, err := readContinued(read, "> ", "... ")
			if err != nil {
				t.Fatalf("readContinued() error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Expected %q, got %q", tt.want, got)
			}
			if len(*labels) != tt.labels {
				t.Fatalf("Expected %d reads, got %d", tt.labels, len(*labels))
			}
			if (*labels)[0] != "> " {
				t.Fatalf("Expected first label %q, got %q", "> ", (*labels)[0])
			}
			for _, label := range (*labels)[1:] {
				if label != "... " {
					t.Fatalf("Expected continuation label, got %q", label)
				}
			}
		})
	}
}

func TestReadContinued_PropagatesErrors(t *testing.T) {
	read, _ := scripted()
	if _, err := readContinued(read, "> ", "... "); !errors.Is(err, io.EOF) {
		t.Fatalf("Expected io.EOF, got %v", err)
	}

	interrupted := func(string) (string, error) { return "", ErrInterrupted }
	if _, err := readContinued(interrupted, "> ", "... "); !errors.Is(err, ErrInterrupted) {
		t.Fatalf("Expected ErrInterrupted, got %v", err)
	}
}

func TestLinePrompter_NonInteractive(t *testing.T) {
	in := strings.NewReader("tell me \\\na joke\nmy title\n")
	var out bytes.Buffer
	p := NewLinePrompter(in, &out, false)
	defer p.Close()

	prompt, err := p.ReadPrompt("You: ", "...: ")
	if err != nil {
		t.Fatalf("ReadPrompt() error: %v", err)
	}
	if prompt != "tell me \na joke" {
		t.Fatalf("Unexpected prompt %q", prompt)
	}

	title, err := p.ReadLine("Title: ")
	if err != nil {
		t.Fatalf("ReadLine() error: %v", err)
	}
	if title != "my title" {
		t.Fatalf("Unexpected title %q", title)
	}

	if _, err := p.ReadLine("Title: "); !errors.Is(err, io.EOF) {
		t.Fatalf("Expected io.EOF at end of input, got %v", err)
	}
	if got := out.String(); got != "You: ...: Title: Title: " {
		t.Fatalf("Unexpected labels written %q", got)
	}
}
