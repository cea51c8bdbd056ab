package parser

import (
	"errors"
	"fmt"
)

// Parse error kinds. Every error returned by this package matches exactly one of them with errors.Is.
var (
	ErrFile                 = errors.New("cannot read touchstone file")
	ErrMissingOptionLine    = errors.New("missing option line")
	ErrDuplicateOptionLine  = errors.New("duplicate option line")
	ErrMalformedOptionToken = errors.New("malformed option token")
	ErrMalformedDataLine    = errors.New("malformed data line")
	ErrInvalidNumericToken  = errors.New("invalid numeric token")
)

// ParseError locates a grammar violation in the input.
type ParseError struct {
	Kind   error  // one of the Err* sentinels above
	Line   int    // 1-based line number
	Column int    // 1-based byte column of Token, 0 when the whole line is at fault
	Token  string // offending token, if any
	Text   string // raw line text
	Err    error  // underlying cause, e.g. a *strconv.NumError
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("line %d", e.Line)
	if e.Column > 0 {
		msg += fmt.Sprintf(", column %d", e.Column)
	}
	msg += ": " + e.Kind.Error()
	if e.Token != "" {
		msg += fmt.Sprintf(" %q", e.Token)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Token == "" && e.Text != "" {
		msg += fmt.Sprintf(" (%q)", e.Text)
	}
	return msg
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newTokenError(kind error, line int, tok token, text string, cause error) *ParseError {
	return &ParseError{Kind: kind, Line: line, Column: tok.col, Token: tok.text, Text: text, Err: cause}
}

func newLineError(kind error, line int, text string, cause error) *ParseError {
	return &ParseError{Kind: kind, Line: line, Text: text, Err: cause}
}
