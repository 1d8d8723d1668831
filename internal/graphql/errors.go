package graphql

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies why a query did not yield data.
type Kind int

const (
	// KindNetwork means the transport could not complete the exchange.
	KindNetwork Kind = iota + 1
	// KindDecode means the response body did not match the envelope shape.
	KindDecode
	// KindProtocol means the envelope carried one or more error entries.
	KindProtocol
	// KindEncode means the variables could not be serialized. This is a
	// programming error in the Variables type.
	KindEncode
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindDecode:
		return "decode"
	case KindProtocol:
		return "protocol"
	case KindEncode:
		return "encode"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// errMalformed is the cause attached to envelopes with neither data nor errors.
var errMalformed = errors.New("malformed response")

// errMalformedEntry is the cause attached to error entries without a message.
var errMalformedEntry = errors.New("malformed response: error entry without message")

// Error is the error type returned by Decode and Execute. Details always
// holds at least one entry: the server's entries for KindProtocol, a single
// synthesized entry describing the failure otherwise.
type Error struct {
	Kind    Kind
	Details ErrorList
	// Partial reports that the response also carried data, which was decoded
	// and returned alongside this error.
	Partial bool
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		if d != nil {
			msgs = append(msgs, d.Message)
		}
	}
	return fmt.Sprintf("graphql: %s: %s", e.Kind, strings.Join(msgs, "; "))
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Messages returns the message of every detail in order.
func (e *Error) Messages() []string {
	out := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		if d != nil {
			out = append(out, d.Message)
		}
	}
	return out
}

// Wrap returns err as an *Error. If err already is (or wraps) an *Error it is
// returned unchanged; otherwise a new Error of the given kind is created with
// a single detail carrying err's message.
func Wrap(kind Kind, err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return newError(kind, err, err.Error())
}

// KindOf reports the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func newError(kind Kind, cause error, msg string) *Error {
	return &Error{
		Kind:    kind,
		Details: ErrorList{{Message: msg}},
		Err:     cause,
	}
}

// maxErrorBody bounds how much of a failed response body is kept.
const maxErrorBody = 512

// TransportError describes a transport-level failure: either the exchange
// could not be completed (Err is set) or the server answered with a
// non-success status.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	if e.StatusCode == http.StatusUnauthorized {
		return "authentication failed (HTTP 401)"
	}
	if e.Body != "" {
		return fmt.Sprintf("unexpected HTTP status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("unexpected HTTP status %d", e.StatusCode)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error { return e.Err }
