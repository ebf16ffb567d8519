package omw

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrMalformedLine       = errors.New("malformed line")
	ErrUnknownPartOfSpeech = errors.New("unknown part of speech")
	ErrUnknownKind         = errors.New("unknown record kind")
)

const maxExcerptRunes = 120

// LineError reports a line that could not be turned into a Record.
// LineNo is 1-based and zero when the caller did not supply one.
type LineError struct {
	LineNo int
	Line   string
	Err    error
}

func (e *LineError) Error() string {
	if e.LineNo > 0 {
		return fmt.Sprintf("line %d: %v: %q", e.LineNo, e.Err, e.Line)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Line)
}

func (e *LineError) Unwrap() error { return e.Err }

func newLineError(line string, err error) *LineError {
	return &LineError{Line: excerpt(line), Err: err}
}

// excerpt drops the line terminator and caps the text so a huge line
// does not end up verbatim in logs.
func excerpt(line string) string {
	line = strings.TrimRight(line, "\r\n")
	if utf8.RuneCountInString(line) <= maxExcerptRunes {
		return line
	}
	runes := []rune(line)
	return string(runes[:maxExcerptRunes]) + "…"
}
