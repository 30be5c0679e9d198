package ui

import (
	"bytes"
	"strings"
	"testing"

	"geminal/pkg/markdown"

	"github.com/charmbracelet/x/ansi"
)

func panelLines(t *testing.T, out string) []string {
	t.Helper()
	return strings.Split(strings.TrimRight(ansi.Strip(out), "\n"), "\n")
}

func TestConsole_PanelFrame(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, 60)

	c.Panel("Gemini 2.5 Flash", "Hello there! How can I assist you today?", "Time Elapsed: 1.2s | Prompt Count: 1")

	lines := panelLines(t, out.String())
	if len(lines) < 3 {
		t.Fatalf("Expected a framed panel, got %q", out.String())
	}
	for i, line := range lines {
		if got := ansi.StringWidth(line); got != 60 {
			t.Fatalf("Line %d: expected width 60, got %d: %q", i, got, line)
		}
	}
	if !strings.HasPrefix(lines[0], "╭─ Gemini 2.5 Flash ") || !strings.HasSuffix(lines[0], "╮") {
		t.Fatalf("Unexpected top border %q", lines[0])
	}
	last := lines[len(lines)-1]
	if !strings.HasSuffix(last, " Time Elapsed: 1.2s | Prompt Count: 1 ─╯") {
		t.Fatalf("Unexpected bottom border %q", last)
	}

	body := strings.Join(lines[1:len(lines)-1], " ")
	for _, word := range []string{"Hello", "there!", "assist", "today?"} {
		if !strings.Contains(body, word) {
			t.Fatalf("Expected body to contain %q, got %q", word, body)
		}
	}
}

func TestConsole_PanelWithoutTitle(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, 30)
	c.Panel("", "x", "")

	lines := panelLines(t, out.String())
	if lines[0] != "╭"+strings.Repeat("─", 28)+"╮" {
		t.Fatalf("Unexpected top border %q", lines[0])
	}
	if lines[len(lines)-1] != "╰"+strings.Repeat("─", 28)+"╯" {
		t.Fatalf("Unexpected bottom border %q", lines[len(lines)-1])
	}
}

func TestConsole_Error(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, 50)
	c.Error("Conversation \"demo\" does not exist.")

	got := ansi.Strip(out.String())
	if !strings.Contains(got, "Error") || !strings.Contains(got, "does not exist.") {
		t.Fatalf("Unexpected error panel %q", got)
	}
}

func TestConsole_StatusLines(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, 0)
	if c.Width() != defaultWidth {
		t.Fatalf("Expected default width, got %d", c.Width())
	}

	c.Info("No saved conversations.")
	c.Success("Copied to clipboard.")
	c.Println("plain")

	got := ansi.Strip(out.String())
	want := "No saved conversations.\n✓ Copied to clipboard.\nplain\n"
	if got != want {
		t.Fatalf("Expected %q, got %q", want, got)
	}
}

func TestConsole_CodeAndMarkdown(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, 60)

	c.Code(markdown.CodeBlock{Language: "go", Code: "fmt.Println(1)"})
	c.Markdown("Gemini", "Some **bold** text", "")

	got := ansi.Strip(out.String())
	for _, want := range []string{"╭─ go ", "fmt.Println(1)", "╭─ Gemini ", "bold"} {
		if !strings.Contains(got, want) {
			t.Fatalf("Expected output to contain %q:\n%s", want, got)
		}
	}
}

func TestConsole_MinimumWidth(t *testing.T) {
	c := NewConsole(&bytes.Buffer{}, 5)
	if c.Width() != minWidth {
		t.Fatalf("Expected width clamp to %d, got %d", minWidth, c.Width())
	}
}
