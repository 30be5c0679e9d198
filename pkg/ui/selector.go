package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"geminal/pkg/ui/components/picker"

	tea "charm.land/bubbletea/v2"
)

// ErrCanceled is returned when a selection is dismissed.
var ErrCanceled = errors.New("selection canceled")

// TerminalSelector shows a picker as a short-lived bubbletea program and
// returns the chosen index.
type TerminalSelector struct {
	in  io.Reader
	out io.Writer
}

// NewTerminalSelector returns a selector that reads keys from in and draws
// on out.
func NewTerminalSelector(in io.Reader, out io.Writer) *TerminalSelector {
	return &TerminalSelector{in: in, out: out}
}

// Select shows items under title and blocks until one is chosen.
func (s *TerminalSelector) Select(title string, items []picker.Item) (int, error) {
	if len(items) == 0 {
		return -1, ErrCanceled
	}

	final, err := tea.NewProgram(
		newSelectModel(title, items),
		tea.WithInput(s.in),
		tea.WithOutput(s.out),
	).Run()
	if err != nil {
		return -1, fmt.Errorf("run selector: %w", err)
	}

	m, ok := final.(selectModel)
	if !ok || m.chosen < 0 {
		return -1, ErrCanceled
	}
	return m.chosen, nil
}

// Confirm asks a yes/no question. Anything but an explicit yes is false.
func (s *TerminalSelector) Confirm(question string) (bool, error) {
	index, err := s.Select(question, []picker.Item{{Label: "No"}, {Label: "Yes"}})
	if errors.Is(err, ErrCanceled) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return index == 1, nil
}

type selectModel struct {
	panel  *picker.Panel
	chosen int
}

func newSelectModel(title string, items []picker.Item) selectModel {
	p := picker.NewPanel()
	p.Show(title, strings.ToLower(title), items, 0)
	return selectModel{panel: p, chosen: -1}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.panel.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyPressMsg:
		return m, m.panel.Update(msg)

	case picker.SelectMsg:
		m.chosen = msg.Index
		return m, tea.Quit

	case picker.CancelMsg:
		m.chosen = -1
		return m, tea.Quit
	}
	return m, nil
}

func (m selectModel) View() tea.View {
	return tea.NewView(m.panel.View())
}
