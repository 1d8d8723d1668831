package fetch

import (
	"context"
	"encoding/json"

	"github.com/tosteiner/thoth/internal/graphql"
)

// RunQuery performs one call of the query registered under name, with
// variables given as a JSON object, and delivers its lifecycle actions to
// sink like Run. Data holds the query's ResponseData value.
//
// An unregistered name returns *graphql.ErrUnknownQuery before anything is
// dispatched. Variables that do not fit the query are reported as a
// KindEncode failure action.
func RunQuery(ctx context.Context, b *graphql.Builder, reg *graphql.Registry, name string, vars json.RawMessage, sink Sink[any], opts ...Option) (Action[any], error) {
	placeholder, ok := reg.Placeholder(name)
	if !ok {
		return Action[any]{}, &graphql.ErrUnknownQuery{Name: name}
	}

	o := buildOptions(opts)
	id, seq := newCall()
	if !o.skipFetching {
		sink.Dispatch(Action[any]{
			CallID: id,
			Seq:    seq,
			Query:  name,
			Status: StatusFetching,
			Data:   placeholder,
		})
	}

	result := Action[any]{CallID: id, Seq: seq, Query: name}
	data, err := reg.Execute(ctx, b, name, vars)
	if err != nil {
		result.Status = StatusFailure
		result.Err = graphql.Wrap(graphql.KindEncode, err)
		result.Data = placeholder
		if result.Err.Partial {
			result.Data = data
		}
	} else {
		result.Status = StatusSuccess
		result.Data = data
	}
	sink.Dispatch(result)
	return result, nil
}
