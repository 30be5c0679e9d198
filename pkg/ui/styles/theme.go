// Package styles provides the shared palette and lipgloss styles for the
// geminal console, menus and pickers.
package styles

import (
	"charm.land/lipgloss/v2"
)

// Color palette - ANSI 256 colors used throughout the application
var (
	// Primary accent color (blue, close to the Gemini brand)
	ColorAccent = lipgloss.Color("75")

	// Text colors
	ColorText       = lipgloss.Color("252") // Primary text
	ColorTextMuted  = lipgloss.Color("245") // Secondary/muted text
	ColorTextBright = lipgloss.Color("15")  // Bright/highlighted text

	// Semantic colors
	ColorError   = lipgloss.Color("196")
	ColorWarning = lipgloss.Color("214")
	ColorSuccess = lipgloss.Color("42")

	// Border colors
	ColorBorder      = lipgloss.Color("75")
	ColorBorderMuted = lipgloss.Color("62")
	ColorBorderError = lipgloss.Color("160")
)

// Panel/Box styles
var (
	// BoxStyle is the default rounded box for pickers
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	// PanelStyle frames model replies and notices in the console
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	// ErrorPanelStyle frames errors in the console
	ErrorPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorderError).
			Padding(0, 1)

	// PreviewStyle frames the preview pane of a picker
	PreviewStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(ColorBorderMuted).
			PaddingLeft(1)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	TextMutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)
)

// Selection and highlighting
var (
	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Background(ColorAccent).
			Bold(true)

	// MenuKeyStyle renders the [n] shortcut of a menu entry
	MenuKeyStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)
)

// Feedback styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)

// Banner styles
var (
	BannerBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("69"))

	BannerTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("117")).
				Bold(true)

	BannerKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")).
			Bold(true)

	BannerHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("248"))

	BannerVersionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))
)
