package commands

import (
	"geminal/pkg/markdown"
	"geminal/pkg/session"
	"geminal/pkg/ui/components/picker"
)

// Store is the part of the conversation store the actions use.
type Store interface {
	ListNames() ([]string, error)
	Save(title string, data []byte) (string, error)
	Read(name string) ([]byte, error)
	Delete(name string) error
}

// Display shows action output.
type Display interface {
	Info(text string)
	Panel(title, body, subtitle string)
	Markdown(title, text, subtitle string)
	Code(block markdown.CodeBlock)
}

// Clipboard receives copied text.
type Clipboard interface {
	SetText(text string) error
}

// LineReader asks the user for a line of text.
type LineReader interface {
	ReadLine(label string) (string, error)
}

// Selector lets the user pick from a list or answer yes/no.
type Selector interface {
	Select(title string, items []picker.Item) (int, error)
	Confirm(question string) (bool, error)
}

// Context contains everything a menu action may need. NewConversation
// replaces Session; the chat loop reads it back after every action.
type Context struct {
	Session    *session.Adapter
	NewSession func() *session.Adapter
	ModelName  string

	Store     Store
	Display   Display
	Clipboard Clipboard
	Input     LineReader
	Selector  Selector
}
