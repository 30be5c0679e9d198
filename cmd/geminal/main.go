package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"geminal/pkg/ai"
	"geminal/pkg/ai/providers"
	"geminal/pkg/commands"
	"geminal/pkg/config"
	"geminal/pkg/logging"
	"geminal/pkg/repl"
	"geminal/pkg/session"
	"geminal/pkg/store"
	"geminal/pkg/ui"
	"geminal/pkg/ui/components/welcome"
	"geminal/pkg/version"
)

const spinnerLabel = "Generating a response..."

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin, stdout *os.File, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "-v", "--version":
			fmt.Fprintln(stdout, welcome.Banner())
			fmt.Fprintln(stdout, version.Details())
			return 0
		case "-h", "--help":
			fmt.Fprint(stdout, usage())
			return 0
		}
	}

	// Load configuration
	configPath := config.GetConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}

	if _, err := logging.Init(cfg); err != nil {
		fmt.Fprintf(stderr, "Warning: logging disabled: %v\n", err)
	}
	slog.Info("geminal_start", "version", version.Summary(), "config_path", configPath)

	if err := cfg.Validate(); err != nil {
		slog.Error("config_invalid", "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	conversations := store.New(cfg.SaveDir)
	if err := conversations.EnsureDirectory(); err != nil {
		slog.Error("save_dir_unusable", "dir", cfg.SaveDir, "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	provider, err := providers.NewGoogleProvider(cfg)
	if err != nil {
		slog.Error("provider_init_failed", "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	model, known := ai.ResolveModel(cfg.Model)
	if !known {
		fmt.Fprintf(stderr, "Unknown model %q, using %s.\n", cfg.Model, model.ID)
	}
	newSession := func() *session.Adapter {
		return session.New(provider, model.ID)
	}

	interactive := ui.IsInteractive(stdin, stdout)
	console := ui.NewConsole(stdout, ui.TerminalWidth(stdout))
	prompter := ui.NewLinePrompter(stdin, stdout, ui.IsTerminal(stdin))
	defer prompter.Close()

	var busy repl.Busy = idle{}
	if ui.IsTerminal(stdout) {
		busy = ui.NewSpinner(stdout, spinnerLabel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := repl.New(repl.Config{
		Commands: &commands.Context{
			Session:    newSession(),
			NewSession: newSession,
			ModelName:  model.DisplayName,
			Store:      conversations,
			Display:    console,
			Clipboard:  ui.NewOSC52Clipboard(stdout, os.Getenv),
			Input:      prompter,
			Selector:   ui.NewTerminalSelector(stdin, stdout),
		},
		Console:  console,
		Prompter: prompter,
		Busy:     busy,
		ShowMenu: interactive,
		Clear:    func() { ui.ClearScreen(stdout) },
	})

	err = loop.Run(ctx, strings.Join(args, " "))
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stdout)
		slog.Info("geminal_interrupted")
		return 130
	case err != nil:
		slog.Error("geminal_failed", "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	console.Info("Goodbye!")
	return 0
}

// idle stands in for the spinner when stdout is not a terminal.
type idle struct{}

func (idle) Start() {}
func (idle) Stop()  {}
