package pricepi

import (
	"errors"
	"fmt"
)

var (
	// ErrRemote matches any *RemoteError via errors.Is.
	ErrRemote = errors.New("pricepi remote error")

	// ErrParse matches any *ParseError via errors.Is.
	ErrParse = errors.New("pricepi parse error")

	// ErrMissingElement is the cause of a ParseError for an absent child element.
	ErrMissingElement = errors.New("missing element")

	// ErrInvalidDate is the cause of a ParseError for a malformed date.
	ErrInvalidDate = errors.New("invalid date")
)

// RemoteError is a failure reported by the API in the response document.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return "pricepi: " + e.Message
}

// Is makes errors.Is(err, ErrRemote) succeed for any RemoteError.
func (*RemoteError) Is(target error) bool {
	return target == ErrRemote
}

// ParseError reports a result field that failed structural expectations.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pricepi: field %q (value %q): %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrParse) succeed for any ParseError.
func (*ParseError) Is(target error) bool {
	return target == ErrParse
}

// HTTPError is returned when the API answers with a non-200 status.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("pricepi API error (status %d): %s", e.StatusCode, e.Body)
}
