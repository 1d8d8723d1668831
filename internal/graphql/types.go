// Package graphql provides the typed query framework for the Thoth GraphQL
// API: the request/response envelope codec, query definitions, the query
// builder that performs one round trip per call, and a registry of named
// queries.
package graphql

import (
	"context"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

// ErrorDetail is a single entry of the "errors" array in a GraphQL response.
type ErrorDetail = gqlerror.Error

// ErrorList is the ordered "errors" array of a GraphQL response.
type ErrorList = gqlerror.List

// Transport performs one request/response exchange with the GraphQL
// endpoint. body is an encoded request envelope; the returned bytes are the
// raw response body. Any failure to complete the exchange, including a
// non-success HTTP status, is reported as an error.
type Transport interface {
	RoundTrip(ctx context.Context, body []byte) ([]byte, error)
}

// TransportFunc adapts an ordinary function to the Transport interface.
type TransportFunc func(ctx context.Context, body []byte) ([]byte, error)

// RoundTrip calls f(ctx, body).
func (f TransportFunc) RoundTrip(ctx context.Context, body []byte) ([]byte, error) {
	return f(ctx, body)
}
