package touchstone

import (
	"errors"

	"github.com/user/touchstone_go/internal/parser"
)

// Query errors. They never change the state of a File.
var (
	ErrIndexOutOfRange = errors.New("point index out of range")
	ErrParamOutOfRange = errors.New("parameter index out of range")
	ErrEmptyDataset    = errors.New("dataset is empty")
)

// Parse errors, re-exported so callers only need this package.
var (
	ErrFile                 = parser.ErrFile
	ErrMissingOptionLine    = parser.ErrMissingOptionLine
	ErrDuplicateOptionLine  = parser.ErrDuplicateOptionLine
	ErrMalformedOptionToken = parser.ErrMalformedOptionToken
	ErrMalformedDataLine    = parser.ErrMalformedDataLine
	ErrInvalidNumericToken  = parser.ErrInvalidNumericToken
)

// ParseError is the located grammar error returned from Open.
type ParseError = parser.ParseError
