// Package transcript owns the on-disk representation of a conversation:
// an indented JSON array of {"role", "text"} records in conversation order.
package transcript

import "fmt"

// Role identifies who authored a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Valid reports whether r is a role the codec can persist.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModel
}

// ParseRole maps a persisted role value to a Role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	if !r.Valid() {
		return "", false
	}
	return r, true
}

// Message is a single role-tagged entry of a conversation.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// UserMessage is shorthand for a message authored by the user.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text}
}

// ModelMessage is shorthand for a message authored by the model.
func ModelMessage(text string) Message {
	return Message{Role: RoleModel, Text: text}
}

func (m Message) String() string {
	return fmt.Sprintf("%s: %q", m.Role, m.Text)
}

// Clone returns a copy of messages that shares no backing array with the input.
func Clone(messages []Message) []Message {
	if messages == nil {
		return []Message{}
	}
	out := make([]Message, len(messages))
	copy(out, messages)
	return out
}
