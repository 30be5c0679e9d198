package transcript

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

const maxFragmentLen = 40

// CodecError reports malformed transcript content found while encoding or
// decoding. Fragment holds the offending piece of input, trimmed for display.
type CodecError struct {
	Op       string // "encode" or "decode"
	Fragment string
	Err      error
}

func (e *CodecError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("transcript %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("transcript %s: %v (near %q)", e.Op, e.Err, e.Fragment)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// IsCodecError reports whether err is, or wraps, a CodecError.
func IsCodecError(err error) bool {
	var codecErr *CodecError
	return errors.As(err, &codecErr)
}

func newCodecError(op, fragment string, err error) *CodecError {
	return &CodecError{Op: op, Fragment: shorten(fragment), Err: err}
}

// fragmentAt returns the bytes of data surrounding offset, used to point
// the user at the broken part of a hand-edited file. Both ends fall on rune
// boundaries.
func fragmentAt(data []byte, offset int64) string {
	if len(data) == 0 {
		return ""
	}
	pos := int(offset)
	if pos < 0 {
		pos = 0
	}
	if pos > len(data) {
		pos = len(data)
	}
	start := pos - maxFragmentLen/2
	if start < 0 {
		start = 0
	}
	end := start + maxFragmentLen
	if end > len(data) {
		end = len(data)
	}
	for start < end && !utf8.RuneStart(data[start]) {
		start++
	}
	for end > start && end < len(data) && !utf8.RuneStart(data[end]) {
		end--
	}
	return string(data[start:end])
}

func shorten(s string) string {
	runes := []rune(s)
	if len(runes) <= maxFragmentLen {
		return s
	}
	return string(runes[:maxFragmentLen-3]) + "..."
}
