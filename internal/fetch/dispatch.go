package fetch

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/tosteiner/thoth/internal/graphql"
)

// callSeq numbers calls in the order they are started.
var callSeq atomic.Uint64

// newCall returns the identity of a call being started now.
func newCall() (uuid.UUID, uint64) {
	return uuid.New(), callSeq.Add(1)
}

// Option configures a single call.
type Option func(*options)

type options struct {
	skipFetching bool
}

// SkipFetching suppresses the StatusFetching action; only the terminal
// action is delivered.
func SkipFetching() Option {
	return func(o *options) { o.skipFetching = true }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Run performs one call synchronously. It delivers a StatusFetching action
// (unless SkipFetching is given), executes the query, delivers the terminal
// action and returns it.
func Run[V any, D graphql.ResponseData[D]](ctx context.Context, b *graphql.Builder, def *graphql.Definition[V, D], vars V, sink Sink[D], opts ...Option) Action[D] {
	o := buildOptions(opts)
	id, seq := newCall()
	if !o.skipFetching {
		sink.Dispatch(fetching(id, seq, def))
	}
	result := complete(ctx, b, def, vars, id, seq)
	sink.Dispatch(result)
	return result
}

// Call is a handle on a call started with Start.
type Call[D any] struct {
	id     uuid.UUID
	seq    uint64
	done   chan struct{}
	result Action[D]
}

// ID returns the CallID carried by every action of the call.
func (c *Call[D]) ID() uuid.UUID { return c.id }

// Done is closed after the terminal action has been delivered.
func (c *Call[D]) Done() <-chan struct{} { return c.done }

// Wait blocks until the call completes and returns its terminal action.
func (c *Call[D]) Wait() Action[D] {
	<-c.done
	return c.result
}

// Start begins a call and returns without waiting for the round trip. The
// StatusFetching action (unless SkipFetching is given) is delivered before
// Start returns; the terminal action is delivered later from another
// goroutine. Abandoning the returned Call does not stop the round trip.
func Start[V any, D graphql.ResponseData[D]](ctx context.Context, b *graphql.Builder, def *graphql.Definition[V, D], vars V, sink Sink[D], opts ...Option) *Call[D] {
	o := buildOptions(opts)
	c := &Call[D]{done: make(chan struct{})}
	c.id, c.seq = newCall()
	if !o.skipFetching {
		sink.Dispatch(fetching(c.id, c.seq, def))
	}

	go func() {
		defer close(c.done)
		c.result = complete(ctx, b, def, vars, c.id, c.seq)
		sink.Dispatch(c.result)
	}()
	return c
}

func fetching[V any, D graphql.ResponseData[D]](id uuid.UUID, seq uint64, def *graphql.Definition[V, D]) Action[D] {
	return Action[D]{
		CallID: id,
		Seq:    seq,
		Query:  def.Name(),
		Status: StatusFetching,
		Data:   def.Placeholder(),
	}
}

// complete executes the query and converts its result into the terminal
// action.
func complete[V any, D graphql.ResponseData[D]](ctx context.Context, b *graphql.Builder, def *graphql.Definition[V, D], vars V, id uuid.UUID, seq uint64) Action[D] {
	data, err := graphql.Execute(ctx, b, def, vars)
	if err != nil {
		return Action[D]{
			CallID: id,
			Seq:    seq,
			Query:  def.Name(),
			Status: StatusFailure,
			Data:   data,
			Err:    graphql.Wrap(graphql.KindNetwork, err),
		}
	}
	return Action[D]{
		CallID: id,
		Seq:    seq,
		Query:  def.Name(),
		Status: StatusSuccess,
		Data:   data,
	}
}
