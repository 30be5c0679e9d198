// Package session keeps the live transcript of one conversation and is the
// only code that talks to the model provider.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"geminal/pkg/ai"
	"geminal/pkg/logging"
	"geminal/pkg/transcript"

	"github.com/google/uuid"
)

var (
	// ErrEmptyHistory is returned by operations that need at least one exchange.
	ErrEmptyHistory = errors.New("no messages yet")
	// ErrEmptyPrompt is returned when Send is given only whitespace.
	ErrEmptyPrompt = errors.New("prompt is empty")
)

// TransportError wraps a failed call to the model. The exchange it belonged
// to was not recorded.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("model request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// State is the lifecycle state of an Adapter.
type State int

const (
	StateEmpty State = iota
	StateActive
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateActive:
		return "active"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Adapter owns the ordered message history of one conversation. A new
// conversation gets a new Adapter; there is no reset.
//
// Adapter is not safe for concurrent use. The chat loop sends one prompt at
// a time.
type Adapter struct {
	id        string
	provider  ai.Provider
	model     string
	history   []transcript.Message
	exchanges int
}

// New returns an empty session that sends prompts through provider. An
// empty model lets the provider pick its default.
func New(provider ai.Provider, model string) *Adapter {
	a := &Adapter{
		id:       uuid.NewString(),
		provider: provider,
		model:    model,
		history:  make([]transcript.Message, 0, 16),
	}
	slog.Debug("session_created", "session_id", a.id, "model", model)
	return a
}

// ID identifies the session in logs.
func (a *Adapter) ID() string {
	return a.id
}

// Send records prompt and the model's reply and returns the reply text. The
// user message and the reply are appended together, only after the model
// answered, so a failed call leaves the history and exchange count as they
// were.
func (a *Adapter) Send(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	messages := make([]ai.Message, 0, len(a.history)+1)
	for _, msg := range a.history {
		messages = append(messages, toProviderMessage(msg))
	}
	messages = append(messages, toProviderMessage(transcript.UserMessage(prompt)))

	logger := slog.Default()
	if logger.Enabled(ctx, logging.LevelTrace) {
		logger.Log(ctx, logging.LevelTrace, "session_send_prompt",
			"session_id", a.id,
			"messages_full", buildMessageDump(messages),
		)
	}
	slog.Info("session_send_start",
		"session_id", a.id,
		"model", a.model,
		"exchange", a.exchanges+1,
		"message_count", len(messages),
	)

	start := time.Now()
	resp, err := a.provider.CreateChatCompletion(ctx, ai.ChatRequest{
		Model:    a.model,
		Messages: messages,
	})
	if err != nil {
		slog.Error("session_send_error",
			"session_id", a.id,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return "", &TransportError{Err: err}
	}

	a.history = append(a.history, transcript.UserMessage(prompt), transcript.ModelMessage(resp.Content))
	a.exchanges++

	slog.Info("session_send_done",
		"session_id", a.id,
		"model", resp.Model,
		"exchange", a.exchanges,
		"reply_chars", len(resp.Content),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp.Content, nil
}

// LastReply returns the text of the most recent model message.
func (a *Adapter) LastReply() (string, error) {
	for i := len(a.history) - 1; i >= 0; i-- {
		if a.history[i].Role == transcript.RoleModel {
			return a.history[i].Text, nil
		}
	}
	return "", ErrEmptyHistory
}

// HistorySnapshot returns a copy of the transcript so far. Later sends do
// not change a snapshot already handed out.
func (a *Adapter) HistorySnapshot() []transcript.Message {
	return transcript.Clone(a.history)
}

// IsEmpty reports whether no exchange has completed yet.
func (a *Adapter) IsEmpty() bool {
	return a.exchanges == 0
}

// Exchanges returns the number of confirmed prompt/reply pairs.
func (a *Adapter) Exchanges() int {
	return a.exchanges
}

// State reports the session lifecycle state.
func (a *Adapter) State() State {
	if a.IsEmpty() {
		return StateEmpty
	}
	return StateActive
}

func toProviderMessage(msg transcript.Message) ai.Message {
	role := "user"
	if msg.Role == transcript.RoleModel {
		role = "assistant"
	}
	return ai.Message{Role: role, Content: msg.Text}
}

func buildMessageDump(messages []ai.Message) string {
	var sb strings.Builder
	for i, msg := range messages {
		if i > 0 {
			sb.WriteString("\n---\n")
		}
		sb.WriteString(msg.Role)
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
	}
	return sb.String()
}
