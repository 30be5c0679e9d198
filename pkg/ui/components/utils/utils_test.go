package utils

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 2, "he"},
		{"hello", 0, ""},
		{"日本語テキスト", 7, "日本..."},
	}
	for _, tt := range tests {
		if got := TruncateToWidth(tt.text, tt.width); got != tt.want {
			t.Errorf("TruncateToWidth(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestPadPlain(t *testing.T) {
	if got := PadPlain("ab", 5); got != "ab   " {
		t.Fatalf("Expected padded text, got %q", got)
	}
	if got := PadPlain("abcdef", 3); got != "abcdef" {
		t.Fatalf("Expected text unchanged, got %q", got)
	}
}

func TestTruncateStyled_KeepsSequences(t *testing.T) {
	styled := "\x1b[31mred text here\x1b[0m"
	got := TruncateStyled(styled, 5)
	if ansi.StringWidth(got) > 5 {
		t.Fatalf("Expected width <= 5, got %d (%q)", ansi.StringWidth(got), got)
	}
	if !strings.HasPrefix(got, "\x1b[31m") {
		t.Fatalf("Expected escape sequence to be kept, got %q", got)
	}
}

func TestFirstLines(t *testing.T) {
	got := FirstLines("one\r\ntwo\tx\nthree\nfour", 3, 20)
	want := []string{"one", "two    x", "three"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d lines, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if FirstLines("x", 0, 10) != nil {
		t.Fatal("Expected nil for zero lines")
	}
}
