package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"geminal/pkg/markdown"
	"geminal/pkg/session"
	"geminal/pkg/store"
	"geminal/pkg/transcript"
	"geminal/pkg/ui"
	"geminal/pkg/ui/components/picker"
)

const previewLines = 12

// ContinueHandler leaves the menu for the prompt.
type ContinueHandler struct{}

func (h *ContinueHandler) Name() string { return ActionContinue }

func (h *ContinueHandler) Execute(ctx *Context) *Result {
	return &Result{Next: NextPrompt}
}

// MoreActionsHandler opens the full menu.
type MoreActionsHandler struct{}

func (h *MoreActionsHandler) Name() string { return ActionMore }

func (h *MoreActionsHandler) Execute(ctx *Context) *Result {
	return &Result{Next: NextFullMenu}
}

// QuitHandler ends the program.
type QuitHandler struct{}

func (h *QuitHandler) Name() string { return ActionQuit }

func (h *QuitHandler) Execute(ctx *Context) *Result {
	return &Result{Next: NextQuit}
}

// CopyLastHandler copies the latest model reply.
type CopyLastHandler struct{}

func (h *CopyLastHandler) Name() string { return ActionCopyLast }

func (h *CopyLastHandler) Execute(ctx *Context) *Result {
	reply, err := ctx.Session.LastReply()
	if errors.Is(err, session.ErrEmptyHistory) {
		return &Result{Notice: "There are no messages to copy yet."}
	}
	if err := ctx.Clipboard.SetText(reply); err != nil {
		return &Result{Error: fmt.Errorf("copy to clipboard: %w", err)}
	}
	return &Result{Content: "Copied the last reply to your clipboard."}
}

// CopyCodeHandler copies one fenced code block of the latest reply. With
// more than one block the user picks which.
type CopyCodeHandler struct{}

func (h *CopyCodeHandler) Name() string { return ActionCopyCode }

func (h *CopyCodeHandler) Execute(ctx *Context) *Result {
	reply, err := ctx.Session.LastReply()
	if errors.Is(err, session.ErrEmptyHistory) {
		return &Result{Notice: "There are no messages to copy yet."}
	}

	blocks := markdown.CodeBlocks(reply)
	var block markdown.CodeBlock
	switch len(blocks) {
	case 0:
		return &Result{Notice: "The last reply has no code blocks."}
	case 1:
		block = blocks[0]
	default:
		items := make([]picker.Item, len(blocks))
		for i, b := range blocks {
			items[i] = picker.Item{Label: b.Label(), Preview: b.Preview()}
		}
		index, err := ctx.Selector.Select("Available code blocks:", items)
		if errors.Is(err, ui.ErrCanceled) {
			return &Result{Notice: "Nothing copied."}
		}
		if err != nil {
			return &Result{Error: err}
		}
		block = blocks[index]
	}

	if err := ctx.Clipboard.SetText(block.Code); err != nil {
		return &Result{Error: fmt.Errorf("copy to clipboard: %w", err)}
	}
	ctx.Display.Code(block)
	return &Result{Content: "Copied the code block to your clipboard."}
}

// NewConversationHandler discards the current session for a fresh one.
type NewConversationHandler struct{}

func (h *NewConversationHandler) Name() string { return ActionNew }

func (h *NewConversationHandler) Execute(ctx *Context) *Result {
	ctx.Session = ctx.NewSession()
	return &Result{Cleared: true, Next: NextPrompt}
}

// SaveHandler writes the conversation under a name the user chooses.
type SaveHandler struct{}

func (h *SaveHandler) Name() string { return ActionSave }

func (h *SaveHandler) Execute(ctx *Context) *Result {
	if ctx.Session.IsEmpty() {
		return &Result{Notice: "The conversation is empty. There is nothing to save."}
	}

	title, err := ctx.Input.ReadLine("Name this conversation: ")
	if errors.Is(err, ui.ErrInterrupted) || errors.Is(err, io.EOF) {
		return &Result{Notice: "Save canceled."}
	}
	if err != nil {
		return &Result{Error: fmt.Errorf("read conversation name: %w", err)}
	}

	data, err := transcript.Encode(ctx.Session.HistorySnapshot())
	if err != nil {
		return &Result{Error: err}
	}
	name, err := ctx.Store.Save(title, data)
	if err != nil {
		return &Result{Error: err}
	}
	return &Result{Content: fmt.Sprintf("Saved the conversation as %q.", name)}
}

// LoadHandler shows a saved conversation. It is only offered for review
// while the live conversation is empty; nothing is sent to the model.
type LoadHandler struct{}

func (h *LoadHandler) Name() string { return ActionLoad }

func (h *LoadHandler) Execute(ctx *Context) *Result {
	if !ctx.Session.IsEmpty() {
		return &Result{Notice: "Loading only works while the conversation is empty. Start a new conversation first."}
	}

	name, result := chooseConversation(ctx, "Saved conversations:")
	if result != nil {
		return result
	}

	messages, err := readConversation(ctx.Store, name)
	if err != nil {
		return &Result{Error: err}
	}

	for _, msg := range messages {
		switch msg.Role {
		case transcript.RoleUser:
			ctx.Display.Info("$ " + msg.Text)
		case transcript.RoleModel:
			ctx.Display.Markdown(ctx.ModelName, msg.Text, "")
		}
	}
	return &Result{Content: fmt.Sprintf("Loaded %q (%d messages).", name, len(messages))}
}

// DeleteHandler removes a saved conversation after confirmation.
type DeleteHandler struct{}

func (h *DeleteHandler) Name() string { return ActionDelete }

func (h *DeleteHandler) Execute(ctx *Context) *Result {
	name, result := chooseConversation(ctx, "Delete which conversation?")
	if result != nil {
		return result
	}

	ok, err := ctx.Selector.Confirm(fmt.Sprintf("Delete %q?", name))
	if err != nil {
		return &Result{Error: err}
	}
	if !ok {
		return &Result{Notice: fmt.Sprintf("Kept %q.", name)}
	}

	if err := ctx.Store.Delete(name); err != nil {
		return &Result{Error: err}
	}
	return &Result{Content: fmt.Sprintf("Deleted %q.", name)}
}

// chooseConversation lets the user pick a saved conversation. A non-nil
// Result means there is nothing to continue with.
func chooseConversation(ctx *Context, title string) (string, *Result) {
	names, err := ctx.Store.ListNames()
	if err != nil {
		return "", &Result{Error: err}
	}
	if len(names) == 0 {
		return "", &Result{Notice: "No saved conversations found."}
	}

	items := make([]picker.Item, len(names))
	for i, name := range names {
		items[i] = picker.Item{Label: name, Preview: previewConversation(ctx.Store, name, ctx.ModelName)}
	}

	index, err := ctx.Selector.Select(title, items)
	if errors.Is(err, ui.ErrCanceled) {
		return "", &Result{Notice: "No conversation selected."}
	}
	if err != nil {
		return "", &Result{Error: err}
	}
	return names[index], nil
}

func readConversation(s Store, name string) ([]transcript.Message, error) {
	raw, err := s.Read(name)
	if err != nil {
		return nil, err
	}
	messages, err := transcript.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("conversation %q is corrupt: %w", name, err)
	}
	return messages, nil
}

func previewConversation(s Store, name, modelName string) string {
	messages, err := readConversation(s, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "(missing)"
		}
		return "(unreadable)"
	}
	if len(messages) == 0 {
		return "(empty)"
	}

	var lines []string
	for _, msg := range messages {
		who := "You"
		if msg.Role == transcript.RoleModel {
			who = modelName
		}
		first, _, _ := strings.Cut(strings.TrimSpace(msg.Text), "\n")
		lines = append(lines, who+": "+first)
		if len(lines) == previewLines {
			break
		}
	}
	return strings.Join(lines, "\n")
}
