package ui

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// ErrNothingToCopy is returned when the clipboard is asked to hold only
// whitespace.
var ErrNothingToCopy = errors.New("nothing to copy")

// OSC52Clipboard sets the system clipboard through the terminal with an
// OSC 52 escape sequence, so it also works over SSH.
type OSC52Clipboard struct {
	out    io.Writer
	getenv func(string) string
}

// NewOSC52Clipboard writes clipboard sequences to out. getenv is used to
// detect tmux and screen, which need the sequence wrapped.
func NewOSC52Clipboard(out io.Writer, getenv func(string) string) *OSC52Clipboard {
	return &OSC52Clipboard{out: out, getenv: getenv}
}

// SetText replaces the clipboard contents with text.
func (c *OSC52Clipboard) SetText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrNothingToCopy
	}

	seq := osc52.New(text)
	switch {
	case c.getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(c.getenv("TERM"), "screen"):
		seq = seq.Screen()
	}

	if _, err := seq.WriteTo(c.out); err != nil {
		slog.Error("clipboard_write_failed", "error", err)
		return err
	}
	slog.Debug("clipboard_set", "chars", len(text))
	return nil
}
