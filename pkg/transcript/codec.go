package transcript

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

const indent = "  "

// record is the persisted shape of a message. Pointers let Decode tell a
// missing field apart from an empty one.
type record struct {
	Role *string `json:"role"`
	Text *string `json:"text"`
}

// Encode serializes messages into the canonical transcript format. Message
// order is preserved exactly; nothing about role alternation is assumed.
// Messages whose content would not survive a round trip are rejected with a
// CodecError and no output is produced.
func Encode(messages []Message) ([]byte, error) {
	records := make([]Message, 0, len(messages))
	for i, msg := range messages {
		if !msg.Role.Valid() {
			return nil, newCodecError("encode", string(msg.Role),
				fmt.Errorf("message %d has unknown role %q", i, msg.Role))
		}
		if !utf8.ValidString(msg.Text) {
			return nil, newCodecError("encode", msg.Text,
				fmt.Errorf("message %d text is not valid UTF-8", i))
		}
		records = append(records, msg)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(records); err != nil {
		return nil, newCodecError("encode", "", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a transcript file. Records with an unrecognized role are
// skipped. Any structural problem fails the whole decode with a CodecError;
// a partial result is never returned.
func Decode(data []byte) ([]Message, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, newCodecError("decode", "", errors.New("transcript is empty"))
	}
	if trimmed[0] != '[' {
		return nil, newCodecError("decode", fragmentAt(trimmed, 0), errors.New("expected a JSON array"))
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	var records []record
	if err := dec.Decode(&records); err != nil {
		return nil, decodeError(trimmed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		offset := dec.InputOffset()
		return nil, newCodecError("decode", fragmentAt(trimmed, offset), errors.New("unexpected data after transcript"))
	}

	messages := make([]Message, 0, len(records))
	for i, rec := range records {
		if rec.Role == nil {
			continue
		}
		role, ok := ParseRole(*rec.Role)
		if !ok {
			continue
		}
		if rec.Text == nil {
			return nil, newCodecError("decode", *rec.Role, fmt.Errorf("message %d has no text", i))
		}
		messages = append(messages, Message{Role: role, Text: *rec.Text})
	}
	return messages, nil
}

func decodeError(data []byte, err error) *CodecError {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return newCodecError("decode", fragmentAt(data, syntaxErr.Offset), err)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return newCodecError("decode", fragmentAt(data, typeErr.Offset), err)
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return newCodecError("decode", fragmentAt(data, int64(len(data))), errors.New("transcript is truncated"))
	}
	return newCodecError("decode", "", err)
}
