package main

import (
	"fmt"
	"strings"

	"geminal/pkg/ai"
	"geminal/pkg/config"
)

// usage returns the help screen for --help.
func usage() string {
	var b strings.Builder

	b.WriteString("Usage: geminal [options] [prompt...]\n\n")
	b.WriteString("A chatbot on the terminal powered by Google Gemini.\n")
	b.WriteString("Any arguments after the options are sent as the first prompt.\n\n")

	b.WriteString("Options:\n")
	b.WriteString("  -h, --help        Show this help and exit\n")
	b.WriteString("  -v, --version     Show version information and exit\n\n")

	b.WriteString("While chatting:\n")
	b.WriteString("  \\ + Enter         Continue the prompt on the next line\n")
	b.WriteString("  exit              Leave the chat\n")
	b.WriteString("  Ctrl+C, Ctrl+D    Leave the chat\n\n")

	b.WriteString("Environment:\n")
	fmt.Fprintf(&b, "  %-18sGoogle AI Studio API key (required)\n", config.EnvAPIKey)
	fmt.Fprintf(&b, "  %-18sGemini model (default %s)\n", config.EnvModel, ai.DefaultModel)
	fmt.Fprintf(&b, "  %-18sDirectory for saved conversations\n", config.EnvSaveDir)
	fmt.Fprintf(&b, "  %-18sLog level: trace, debug, info, warn, error\n\n", config.EnvLogLevel)

	b.WriteString("Models:\n")
	for _, model := range ai.SupportedModels() {
		fmt.Fprintf(&b, "  %-24s%s\n", model.ID, model.DisplayName)
	}

	b.WriteString("\nConfiguration is read from ~/.geminal/config.json.\n")
	return b.String()
}
