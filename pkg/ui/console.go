// Package ui holds the terminal collaborators of the chat loop: panel
// output, the busy spinner, clipboard, line input and list selection.
package ui

import (
	"fmt"
	"io"
	"strings"

	"geminal/pkg/markdown"
	"geminal/pkg/ui/components/utils"
	"geminal/pkg/ui/styles"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

const (
	defaultWidth = 80
	minWidth     = 30
)

// Console writes framed panels and status lines to a terminal.
type Console struct {
	out      io.Writer
	width    int
	renderer *markdown.Renderer
}

// NewConsole returns a console that lays panels out width columns wide.
// Markdown bodies are wrapped to fit inside the frame.
func NewConsole(out io.Writer, width int) *Console {
	if width <= 0 {
		width = defaultWidth
	}
	if width < minWidth {
		width = minWidth
	}
	c := &Console{out: out, width: width}
	c.renderer = markdown.NewRenderer(c.ContentWidth())
	return c
}

// Width returns the outer width of a panel.
func (c *Console) Width() int {
	return c.width
}

// ContentWidth returns the usable width inside a panel frame.
func (c *Console) ContentWidth() int {
	return c.width - 4
}

// Println writes text followed by a newline.
func (c *Console) Println(text string) {
	fmt.Fprintln(c.out, text)
}

// Info writes a muted status line.
func (c *Console) Info(text string) {
	fmt.Fprintln(c.out, styles.TextMutedStyle.Render(text))
}

// Success writes a confirmation line.
func (c *Console) Success(text string) {
	fmt.Fprintln(c.out, styles.SuccessStyle.Render("✓ "+text))
}

// Error writes text inside a red panel.
func (c *Console) Error(text string) {
	fmt.Fprintln(c.out, c.frame(styles.ErrorStyle.Render("Error"), text, "", styles.ErrorPanelStyle))
}

// Panel writes body inside a titled frame. Subtitle, if any, sits on the
// bottom border aligned right.
func (c *Console) Panel(title, body, subtitle string) {
	fmt.Fprintln(c.out, c.frame(styles.TitleStyle.Render(title), body, subtitle, styles.PanelStyle))
}

// Markdown renders text as markdown and writes it inside a titled frame.
func (c *Console) Markdown(title, text, subtitle string) {
	c.Panel(title, c.renderer.Render(text), subtitle)
}

// Code writes a syntax highlighted code block inside a frame titled with
// its language.
func (c *Console) Code(block markdown.CodeBlock) {
	title := block.Language
	if title == "" {
		title = "code"
	}
	c.Panel(title, markdown.Highlight(block.Preview(), block.Language), "")
}

func (c *Console) frame(title, body, subtitle string, style lipgloss.Style) string {
	border := lipgloss.NewStyle().Foreground(style.GetBorderTopForeground())
	inner := c.width - 2
	contentWidth := c.ContentWidth()

	title = utils.TruncateStyled(title, inner-4)
	subtitle = utils.TruncateStyled(subtitle, inner-4)

	var sb strings.Builder

	// ╭─ title ──────╮
	if ansi.StringWidth(title) > 0 {
		fill := inner - 3 - ansi.StringWidth(title)
		sb.WriteString(border.Render("╭─ "))
		sb.WriteString(title)
		sb.WriteString(border.Render(" " + strings.Repeat("─", max(fill, 0)) + "╮"))
	} else {
		sb.WriteString(border.Render("╭" + strings.Repeat("─", inner) + "╮"))
	}
	sb.WriteString("\n")

	wrapped := lipgloss.NewStyle().Width(contentWidth).Render(strings.TrimRight(body, "\n"))
	for _, line := range strings.Split(wrapped, "\n") {
		line = utils.TruncateStyled(line, contentWidth)
		sb.WriteString(border.Render("│"))
		sb.WriteString(" ")
		sb.WriteString(utils.PadStyled(line, contentWidth))
		sb.WriteString(" ")
		sb.WriteString(border.Render("│"))
		sb.WriteString("\n")
	}

	// ╰────── subtitle ─╯
	if ansi.StringWidth(subtitle) > 0 {
		fill := inner - 3 - ansi.StringWidth(subtitle)
		sb.WriteString(border.Render("╰" + strings.Repeat("─", max(fill, 0)) + " "))
		sb.WriteString(styles.SubtitleStyle.Render(subtitle))
		sb.WriteString(border.Render(" ─╯"))
	} else {
		sb.WriteString(border.Render("╰" + strings.Repeat("─", inner) + "╯"))
	}

	return sb.String()
}
