package commands

import "log/slog"

// Next tells the chat loop where to go after an action.
type Next int

const (
	// NextMenu shows the short menu again.
	NextMenu Next = iota
	// NextFullMenu shows the menu with every action.
	NextFullMenu
	// NextPrompt leaves the menu and reads a prompt.
	NextPrompt
	// NextQuit ends the program.
	NextQuit
)

// Result represents the result of an action
type Result struct {
	// Content is a confirmation shown on success.
	Content string
	// Notice explains why an action did nothing.
	Notice string
	// Error is shown in an error panel; the loop continues.
	Error error
	// Cleared is set when the conversation was replaced by a new one.
	Cleared bool
	Next    Next
}

// Handler is the interface for menu actions
type Handler interface {
	Execute(ctx *Context) *Result
	Name() string
}

// Dispatcher routes menu actions to their handlers
type Dispatcher struct {
	handlers map[string]Handler
}

// NewDispatcher creates a dispatcher with every menu action registered.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string]Handler),
	}

	d.Register(&ContinueHandler{})
	d.Register(&CopyLastHandler{})
	d.Register(&CopyCodeHandler{})
	d.Register(&NewConversationHandler{})
	d.Register(&SaveHandler{})
	d.Register(&LoadHandler{})
	d.Register(&DeleteHandler{})
	d.Register(&MoreActionsHandler{})
	d.Register(&QuitHandler{})

	return d
}

// Register adds a handler to the dispatcher
func (d *Dispatcher) Register(h Handler) {
	d.handlers[h.Name()] = h
}

// Dispatch executes an action by name
func (d *Dispatcher) Dispatch(name string, ctx *Context) *Result {
	handler, ok := d.handlers[name]
	if !ok {
		slog.Warn("action_unknown", "action", name)
		return &Result{Notice: "Unknown action: " + name, Next: NextMenu}
	}

	slog.Debug("action_dispatch", "action", name)
	result := handler.Execute(ctx)
	if result.Error != nil {
		slog.Warn("action_failed", "action", name, "error", result.Error)
	}
	return result
}

// GetHandler returns a handler by name
func (d *Dispatcher) GetHandler(name string) (Handler, bool) {
	h, ok := d.handlers[name]
	return h, ok
}
