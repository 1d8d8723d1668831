// Package fetch turns query round trips into lifecycle actions for an
// application state layer.
//
// Every call started through Run or Start delivers exactly one terminal
// action (StatusSuccess or StatusFailure) to its Sink, optionally preceded by
// one StatusFetching action delivered before the round trip begins. Calls
// share no state: concurrent calls for the same query are independent, may
// complete in any order, and are told apart by their CallID.
package fetch

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tosteiner/thoth/internal/graphql"
)

// Status is the lifecycle stage an Action reports.
type Status int

const (
	// StatusFetching reports that a call has started.
	StatusFetching Status = iota + 1
	// StatusSuccess reports that a call returned data.
	StatusSuccess
	// StatusFailure reports that a call failed.
	StatusFailure
)

// String returns the lower-case name of the status.
func (s Status) String() string {
	switch s {
	case StatusFetching:
		return "fetching"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Terminal reports whether s ends a call.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailure
}

// Action is one lifecycle event of a query call.
type Action[D any] struct {
	// CallID identifies the call; all actions of one call share it.
	CallID uuid.UUID
	// Seq orders calls by the time they were started: a larger Seq is a
	// newer call. Run and Start always set it; zero means unordered.
	Seq uint64
	// Query is the name of the query definition.
	Query  string
	Status Status
	// Data is the result for StatusSuccess. For StatusFailure it is the
	// partial data when Err.Partial is set and the placeholder otherwise.
	// For StatusFetching it is the placeholder.
	Data D
	// Err is set only for StatusFailure.
	Err *graphql.Error
}

// Sink receives actions. It is the boundary to the external state-update
// mechanism and may be called from any goroutine.
type Sink[D any] interface {
	Dispatch(Action[D])
}

// SinkFunc adapts an ordinary function to the Sink interface.
type SinkFunc[D any] func(Action[D])

// Dispatch calls f(a).
func (f SinkFunc[D]) Dispatch(a Action[D]) { f(a) }
