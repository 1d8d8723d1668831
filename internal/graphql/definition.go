package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// ResponseData is implemented by every query result type. Placeholder
// returns the documented "no data yet" value used as application state
// before any request for the query has completed.
type ResponseData[D any] interface {
	Placeholder() D
}

// NoVariables is the variables bag for queries that take no parameters. It
// encodes to an empty JSON object.
type NoVariables struct{}

// Definition is the fixed shape of one remote query: its name, its query
// text, the Go type of its variables (V) and of its result (D). Definitions
// are created once at startup and never change.
type Definition[V any, D ResponseData[D]] struct {
	name      string
	query     string
	operation string
	opType    string
	variables []string
}

// Define parses query and returns a Definition for it. The query text must
// be a GraphQL document holding exactly one operation.
func Define[V any, D ResponseData[D]](name, query string) (*Definition[V, D], error) {
	if name == "" {
		return nil, errors.New("graphql: definition name is required")
	}

	doc, err := parser.ParseQuery(&ast.Source{Name: name, Input: query})
	if err != nil {
		return nil, fmt.Errorf("graphql: parse %s: %w", name, err)
	}
	if len(doc.Operations) != 1 {
		return nil, fmt.Errorf("graphql: %s: expected exactly one operation, found %d", name, len(doc.Operations))
	}

	op := doc.Operations[0]
	vars := make([]string, 0, len(op.VariableDefinitions))
	for _, v := range op.VariableDefinitions {
		vars = append(vars, v.Variable)
	}

	return &Definition[V, D]{
		name:      name,
		query:     query,
		operation: op.Name,
		opType:    string(op.Operation),
		variables: vars,
	}, nil
}

// MustDefine is like Define but panics if the query text is invalid. It is
// meant for package-level query declarations.
func MustDefine[V any, D ResponseData[D]](name, query string) *Definition[V, D] {
	def, err := Define[V, D](name, query)
	if err != nil {
		panic(err)
	}
	return def
}

// Name returns the registry identifier of the query.
func (d *Definition[V, D]) Name() string { return d.name }

// Query returns the query text sent on the wire.
func (d *Definition[V, D]) Query() string { return d.query }

// OperationName returns the operation name declared in the query text, or
// "" for an anonymous operation.
func (d *Definition[V, D]) OperationName() string { return d.operation }

// OperationType returns "query", "mutation" or "subscription".
func (d *Definition[V, D]) OperationType() string { return d.opType }

// VariableNames returns the variables declared by the operation, in order.
func (d *Definition[V, D]) VariableNames() []string {
	out := make([]string, len(d.variables))
	copy(out, d.variables)
	return out
}

// Placeholder returns the "no data yet" value of the query's result type.
func (d *Definition[V, D]) Placeholder() D {
	var zero D
	return zero.Placeholder()
}

func (d *Definition[V, D]) placeholder() any { return d.Placeholder() }

// execute runs the definition with variables decoded from raw JSON. It lets
// the Registry call definitions without knowing V and D.
func (d *Definition[V, D]) execute(ctx context.Context, b *Builder, raw json.RawMessage) (any, error) {
	var vars V
	if len(raw) > 0 && !bytes.Equal(raw, jsonNull) {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&vars); err != nil {
			return nil, fmt.Errorf("%s: parse variables: %w", d.name, err)
		}
	}
	return Execute(ctx, b, d, vars)
}
