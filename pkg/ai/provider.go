package ai

import "context"

// Message represents a single chat message for model requests.
type Message struct {
	Role    string // "user" | "assistant" | "system"
	Content string
}

// ChatRequest defines the input to a chat completion.
type ChatRequest struct {
	Model       string
	Messages    []Message
	Temperature *float64
	MaxTokens   *int
}

// ChatResponse is a normalized response from the model.
type ChatResponse struct {
	Content string
	Model   string
}

// Provider defines the model interface used by the app.
type Provider interface {
	CreateChatCompletion(ctx context.Context, req ChatRequest) (ChatResponse, error)
}
