package sources

import (
	"errors"
	"fmt"
)

// Kind classifies a source failure.
type Kind string

const (
	// KindSourceUnavailable: the file is missing, unreadable, or not a valid
	// container for the expected format.
	KindSourceUnavailable Kind = "source_unavailable"
	// KindQuery: the container opened but its structure or the query failed.
	KindQuery Kind = "query_error"
	// KindMalformedInput: the container is valid, its content does not match
	// the expected schema.
	KindMalformedInput Kind = "malformed_input"
	// KindRowDecode: a single record could not be decoded. Never fatal.
	KindRowDecode Kind = "row_decode_error"
)

var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrQuery             = errors.New("query failed")
	ErrMalformedInput    = errors.New("malformed input")
	ErrRowDecode         = errors.New("row could not be decoded")
)

// Error is returned by source readers. It matches the sentinel of its Kind
// with errors.Is and unwraps to the underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Path)
	}
	msg = fmt.Sprintf("%s: %v", msg, e.sentinel())
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.sentinel()}
	}
	return []error{e.sentinel(), e.Err}
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindSourceUnavailable:
		return ErrSourceUnavailable
	case KindQuery:
		return ErrQuery
	case KindMalformedInput:
		return ErrMalformedInput
	case KindRowDecode:
		return ErrRowDecode
	default:
		return errors.New(string(e.Kind))
	}
}

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var srcErr *Error
	if errors.As(err, &srcErr) {
		return srcErr.Kind, true
	}
	return "", false
}

func Unavailable(op, path string, err error) error {
	return &Error{Kind: KindSourceUnavailable, Op: op, Path: path, Err: err}
}

func QueryFailed(op, path string, err error) error {
	return &Error{Kind: KindQuery, Op: op, Path: path, Err: err}
}

func Malformed(op, path string, err error) error {
	return &Error{Kind: KindMalformedInput, Op: op, Path: path, Err: err}
}
