// Package repl runs the interactive chat loop: action menu, prompt, model
// call, reply.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"geminal/pkg/commands"
	"geminal/pkg/session"
	"geminal/pkg/ui"
	"geminal/pkg/ui/components/picker"
)

const (
	promptLabel       = "❯ "
	continuationLabel = "… "
	welcomeText       = "Hello there! How can I assist you today?"
)

// Console is where the loop writes everything it shows.
type Console interface {
	commands.Display
	Error(text string)
	Success(text string)
}

// Prompter reads chat prompts.
type Prompter interface {
	ReadPrompt(label, continuation string) (string, error)
}

// Busy is shown while the model is answering.
type Busy interface {
	Start()
	Stop()
}

// Config wires the loop to its collaborators. Commands.Session is the live
// conversation and is replaced when the user starts a new one.
type Config struct {
	Commands *commands.Context
	Console  Console
	Prompter Prompter
	Busy     Busy
	// ShowMenu shows the action menu before each prompt.
	ShowMenu bool
	// Clear wipes the screen when a new conversation starts.
	Clear func()
}

// Loop is the interactive chat loop.
type Loop struct {
	cmd        *commands.Context
	dispatcher *commands.Dispatcher
	console    Console
	prompter   Prompter
	busy       Busy
	showMenu   bool
	clear      func()
}

// New returns a loop over cfg.
func New(cfg Config) *Loop {
	clearScreen := cfg.Clear
	if clearScreen == nil {
		clearScreen = func() {}
	}
	return &Loop{
		cmd:        cfg.Commands,
		dispatcher: commands.NewDispatcher(),
		console:    cfg.Console,
		prompter:   cfg.Prompter,
		busy:       cfg.Busy,
		showMenu:   cfg.ShowMenu,
		clear:      clearScreen,
	}
}

// Session returns the live conversation.
func (l *Loop) Session() *session.Adapter {
	return l.cmd.Session
}

// Run sends initial, if any, and then alternates menu and prompt until the
// user quits, input ends, or ctx is canceled. Failed model calls and action
// errors are shown and the loop carries on.
func (l *Loop) Run(ctx context.Context, initial string) error {
	slog.Info("repl_start", "session_id", l.cmd.Session.ID(), "menu", l.showMenu)
	defer slog.Info("repl_stop")

	if strings.TrimSpace(initial) != "" {
		if err := l.send(ctx, initial); err != nil {
			return err
		}
	} else {
		l.welcome()
	}

	for {
		if l.showMenu {
			quit, err := l.menu()
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}

		text, err := l.prompter.ReadPrompt(promptLabel, continuationLabel)
		if errors.Is(err, io.EOF) || errors.Is(err, ui.ErrInterrupted) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read prompt: %w", err)
		}

		prompt := strings.TrimSpace(text)
		switch strings.ToLower(prompt) {
		case "":
			l.console.Error("Please enter a prompt.")
			continue
		case "exit", "quit":
			return nil
		}

		if err := l.send(ctx, prompt); err != nil {
			return err
		}
	}
}

// send asks the model and shows the reply. Only cancellation of ctx is
// returned; every other failure is shown.
func (l *Loop) send(ctx context.Context, prompt string) error {
	start := time.Now()
	l.busy.Start()
	reply, err := l.cmd.Session.Send(ctx, prompt)
	l.busy.Stop()

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		l.console.Error(err.Error())
		return nil
	}

	subtitle := fmt.Sprintf("Time Elapsed: %.1fs | Prompt Count: %d", time.Since(start).Seconds(), l.cmd.Session.Exchanges())
	l.console.Markdown(l.cmd.ModelName, reply, subtitle)
	return nil
}

// menu shows the action menu until an action leads to the prompt or quits.
func (l *Loop) menu() (quit bool, err error) {
	full := false
	for {
		actions := commands.Actions(l.cmd.Session.IsEmpty(), full)
		items := make([]picker.Item, len(actions))
		for i, action := range actions {
			items[i] = picker.Item{Label: action.Label}
		}

		index, err := l.cmd.Selector.Select(commands.MenuTitle, items)
		if errors.Is(err, ui.ErrCanceled) {
			return false, nil
		}
		if err != nil {
			slog.Error("repl_menu_failed", "error", err)
			l.console.Error(fmt.Sprintf("The action menu is unavailable: %v", err))
			l.showMenu = false
			return false, nil
		}

		result := l.dispatcher.Dispatch(actions[index].Name, l.cmd)
		l.report(result)

		switch result.Next {
		case commands.NextPrompt:
			return false, nil
		case commands.NextQuit:
			return true, nil
		case commands.NextFullMenu:
			full = true
		default:
			full = false
		}
	}
}

func (l *Loop) report(result *commands.Result) {
	switch {
	case result.Error != nil:
		l.console.Error(result.Error.Error())
	case result.Notice != "":
		l.console.Info(result.Notice)
	case result.Content != "":
		l.console.Success(result.Content)
	}
	if result.Cleared {
		slog.Info("repl_new_conversation", "session_id", l.cmd.Session.ID())
		l.clear()
		l.welcome()
	}
}

func (l *Loop) welcome() {
	l.console.Panel(l.cmd.ModelName, welcomeText, "")
}
