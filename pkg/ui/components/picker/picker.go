package picker

import (
	"strconv"
	"strings"

	"geminal/pkg/ui/components/utils"
	"geminal/pkg/ui/styles"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Item is one selectable row. Preview, when set, is shown next to the list
// while the row is highlighted.
type Item struct {
	Label   string
	Preview string
}

// SelectMsg is emitted when a row is chosen.
type SelectMsg struct {
	Key   string
	Index int
	Item  Item
}

// CancelMsg is emitted when the picker is closed without a choice.
type CancelMsg struct {
	Key string
}

// Panel is a scrollable list picker. Rows 1-9 can also be chosen by number.
type Panel struct {
	title    string
	key      string
	items    []Item
	selected int
	scroll   int
	visible  bool
	width    int
	height   int
}

// NewPanel creates a hidden picker.
func NewPanel() *Panel {
	return &Panel{}
}

// Show displays the picker with items, highlighting index current.
func (p *Panel) Show(title, key string, items []Item, current int) {
	p.visible = true
	p.title = title
	p.key = key
	p.items = append([]Item(nil), items...)
	p.selected = current
	p.scroll = 0
	p.ensureVisible(p.listHeight())
}

// Hide hides the picker.
func (p *Panel) Hide() {
	p.visible = false
}

// IsVisible reports whether the picker is visible.
func (p *Panel) IsVisible() bool {
	return p.visible
}

// Selected returns the highlighted index.
func (p *Panel) Selected() int {
	return p.selected
}

// SetSize updates the picker dimensions.
func (p *Panel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.ensureVisible(p.listHeight())
}

// Update handles keyboard input for the picker.
func (p *Panel) Update(msg tea.KeyPressMsg) tea.Cmd {
	if !p.visible {
		return nil
	}

	listHeight := p.listHeight()

	keyStr := msg.String()
	switch keyStr {
	case "up", "k":
		if p.selected > 0 {
			p.selected--
		}
		p.ensureVisible(listHeight)
		return nil

	case "down", "j":
		if p.selected < len(p.items)-1 {
			p.selected++
		}
		p.ensureVisible(listHeight)
		return nil

	case "pgup":
		p.selected -= listHeight
		p.ensureVisible(listHeight)
		return nil

	case "pgdown":
		p.selected += listHeight
		p.ensureVisible(listHeight)
		return nil

	case "home":
		p.selected = 0
		p.ensureVisible(listHeight)
		return nil

	case "end":
		p.selected = len(p.items) - 1
		p.ensureVisible(listHeight)
		return nil

	case "enter":
		return p.choose(p.selected)

	case "esc", "q", "ctrl+c":
		p.Hide()
		key := p.key
		return func() tea.Msg {
			return CancelMsg{Key: key}
		}
	}

	if n, err := strconv.Atoi(keyStr); err == nil && n >= 1 && n <= 9 {
		return p.choose(n - 1)
	}
	return nil
}

func (p *Panel) choose(index int) tea.Cmd {
	if index < 0 || index >= len(p.items) {
		return nil
	}
	p.selected = index
	p.Hide()
	msg := SelectMsg{Key: p.key, Index: index, Item: p.items[index]}
	return func() tea.Msg {
		return msg
	}
}

// View renders the picker.
func (p *Panel) View() string {
	if !p.visible {
		return ""
	}

	boxWidth, contentWidth, listHeight := p.dimensions()
	listWidth := contentWidth
	previewWidth := 0
	if p.hasPreview() {
		listWidth = contentWidth * 2 / 5
		previewWidth = contentWidth - listWidth - 2
	}

	var list strings.Builder
	if len(p.items) == 0 {
		list.WriteString(styles.TextMutedStyle.Render("Nothing to choose from"))
		for i := 1; i < listHeight; i++ {
			list.WriteString("\n")
		}
	} else {
		for i := 0; i < listHeight; i++ {
			if i > 0 {
				list.WriteString("\n")
			}
			index := p.scroll + i
			if index >= len(p.items) {
				continue
			}
			line := " " + p.items[index].Label
			if index < 9 {
				line = styles.MenuKeyStyle.Render("["+strconv.Itoa(index+1)+"]") + line
			} else {
				line = "   " + line
			}
			line = utils.TruncateStyled(line, listWidth)
			if index == p.selected {
				list.WriteString(styles.SelectedStyle.Render(utils.PadStyled(line, listWidth)))
			} else {
				list.WriteString(styles.TextStyle.Render(line))
			}
		}
	}

	body := list.String()
	if previewWidth > 0 {
		preview := ""
		if p.selected >= 0 && p.selected < len(p.items) {
			preview = strings.Join(utils.FirstLines(p.items[p.selected].Preview, listHeight, previewWidth-3), "\n")
		}
		left := lipgloss.NewStyle().Width(listWidth).Render(body)
		right := styles.PreviewStyle.Width(previewWidth).Height(listHeight).Render(preview)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	}

	var content strings.Builder
	content.WriteString(styles.TitleStyle.Render(p.title))
	content.WriteString("\n\n")
	content.WriteString(body)
	content.WriteString("\n\n")
	content.WriteString(styles.FooterStyle.Render(utils.TruncateToWidth("Up/Down Navigate | 1-9/Enter Select | Esc Cancel", contentWidth)))

	return styles.BoxStyle.Width(boxWidth).Render(content.String())
}

func (p *Panel) hasPreview() bool {
	for _, item := range p.items {
		if item.Preview != "" {
			return true
		}
	}
	return false
}

func (p *Panel) ensureVisible(listHeight int) {
	if len(p.items) == 0 {
		p.selected = 0
		p.scroll = 0
		return
	}

	if p.selected < 0 {
		p.selected = 0
	}
	if p.selected >= len(p.items) {
		p.selected = len(p.items) - 1
	}

	maxScroll := len(p.items) - listHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if p.scroll > maxScroll {
		p.scroll = maxScroll
	}

	if p.selected < p.scroll {
		p.scroll = p.selected
	}
	if p.selected >= p.scroll+listHeight {
		p.scroll = p.selected - listHeight + 1
	}
	if p.scroll < 0 {
		p.scroll = 0
	}
}

func (p *Panel) dimensions() (int, int, int) {
	width := p.width
	height := p.height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	maxBox := 70
	if p.hasPreview() {
		maxBox = 110
	}
	boxWidth := width - 2
	if boxWidth > maxBox {
		boxWidth = maxBox
	}
	if boxWidth < 24 {
		boxWidth = 24
	}

	// border + horizontal padding
	contentWidth := boxWidth - 6
	if contentWidth < 10 {
		contentWidth = 10
	}

	maxContentHeight := height - 4
	if maxContentHeight < 6 {
		maxContentHeight = 6
	}

	// title, blank, blank, footer
	const fixedLines = 4
	listHeight := maxContentHeight - fixedLines
	if len(p.items) > 0 && listHeight > len(p.items) {
		listHeight = len(p.items)
	}
	if listHeight < 1 {
		listHeight = 1
	}

	return boxWidth, contentWidth, listHeight
}

func (p *Panel) listHeight() int {
	_, _, listHeight := p.dimensions()
	return listHeight
}
