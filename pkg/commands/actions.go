package commands

// Action names, used as dispatcher keys.
const (
	ActionContinue = "continue"
	ActionCopyLast = "copy_last"
	ActionCopyCode = "copy_code"
	ActionNew      = "new"
	ActionSave     = "save"
	ActionLoad     = "load"
	ActionDelete   = "delete"
	ActionMore     = "more"
	ActionQuit     = "quit"
)

// Action is one menu entry.
type Action struct {
	Name  string
	Label string
}

// MenuTitle heads both menus.
const MenuTitle = "Interactive actions:"

// Actions returns the menu entries for the current state. It is computed
// from the session each time the menu is shown.
func Actions(isEmpty, full bool) []Action {
	first := Action{Name: ActionContinue, Label: "Continue the conversation"}
	if isEmpty {
		first.Label = "Start a conversation"
	}
	copyLast := Action{Name: ActionCopyLast, Label: "Copy the last reply to the clipboard"}
	quit := Action{Name: ActionQuit, Label: "Quit"}

	if !full {
		return []Action{
			first,
			copyLast,
			{Name: ActionMore, Label: "Show more actions"},
			quit,
		}
	}
	return []Action{
		first,
		copyLast,
		{Name: ActionCopyCode, Label: "Copy a code block from the last reply"},
		{Name: ActionNew, Label: "Start a new conversation"},
		{Name: ActionSave, Label: "Save the conversation"},
		{Name: ActionLoad, Label: "Load a saved conversation"},
		{Name: ActionDelete, Label: "Delete a saved conversation"},
		quit,
	}
}
