package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// containerMarker exists at the root of Docker containers, where the menu
// is skipped and plain prompting is used instead.
const containerMarker = "/.dockerenv"

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// InContainer reports whether the process runs inside a Docker container.
func InContainer() bool {
	_, err := os.Stat(containerMarker)
	return err == nil
}

// TerminalWidth returns the column count of f, or 0 when unknown.
func TerminalWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// ClearScreen erases the screen and moves the cursor home.
func ClearScreen(out io.Writer) {
	fmt.Fprint(out, ansi.EraseEntireScreen+ansi.CursorHomePosition)
}

// IsInteractive reports whether menus can be shown: both ends must be
// terminals and the process must not run in a container.
func IsInteractive(in, out *os.File) bool {
	return IsTerminal(in) && IsTerminal(out) && !InContainer()
}
