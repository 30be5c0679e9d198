package welcome

import (
	"fmt"
	"strings"

	"geminal/pkg/ui/components/utils"
	"geminal/pkg/ui/styles"
	"geminal/pkg/version"

	"github.com/mattn/go-runewidth"
)

const tagline = "A chatbot on the terminal powered by Google Gemini"

// Banner returns the boxed banner printed by --version.
func Banner() string {
	const boxWidth = 56 // Total inner width

	makeLine := func(content string, visualWidth int) string {
		pad := boxWidth - visualWidth
		if pad < 0 {
			pad = 0
		}
		return styles.BannerBorderStyle.Render("│") + content + strings.Repeat(" ", pad) + styles.BannerBorderStyle.Render("│")
	}
	centered := func(text string, render func(...string) string) string {
		text = utils.TruncateToWidth(text, boxWidth-2)
		width := runewidth.StringWidth(text)
		left := (boxWidth - width) / 2
		return makeLine(strings.Repeat(" ", left)+render(text), left+width)
	}

	top := styles.BannerBorderStyle.Render("╭" + strings.Repeat("─", boxWidth) + "╮")
	bottom := styles.BannerBorderStyle.Render("╰" + strings.Repeat("─", boxWidth) + "╯")
	empty := makeLine("", 0)

	var lines []string
	lines = append(lines, top)
	lines = append(lines, centered("✦ Geminal ✦", styles.BannerTitleStyle.Render))
	lines = append(lines, centered(tagline, styles.TextStyle.Render))
	lines = append(lines, empty)

	header := "  While chatting:"
	lines = append(lines, makeLine(styles.BannerHeaderStyle.Render(header), runewidth.StringWidth(header)))

	keys := []struct{ key, desc string }{
		{"\\ + Enter", "Continue the prompt on a new line"},
		{"exit", "Quit (or Ctrl+D)"},
		{"1-9", "Pick a menu action"},
	}
	for _, k := range keys {
		keyFormatted := fmt.Sprintf("    %-12s", k.key)
		line := styles.BannerKeyStyle.Render(keyFormatted) + styles.TextStyle.Render(k.desc)
		lineWidth := runewidth.StringWidth(keyFormatted) + runewidth.StringWidth(k.desc)
		lines = append(lines, makeLine(line, lineWidth))
	}

	lines = append(lines, empty)
	lines = append(lines, centered("Version "+version.Summary()+" · "+version.Platform(), styles.BannerVersionStyle.Render))
	lines = append(lines, bottom)

	return strings.Join(lines, "\n") + "\n"
}
