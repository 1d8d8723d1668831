package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Entry is a registered query. Every *Definition is an Entry.
type Entry interface {
	Name() string
	Query() string
	OperationType() string
	VariableNames() []string
	placeholder() any
	execute(ctx context.Context, b *Builder, vars json.RawMessage) (any, error)
}

// ErrUnknownQuery is returned by Registry.Execute for unregistered names.
type ErrUnknownQuery struct {
	Name string
}

func (e *ErrUnknownQuery) Error() string {
	return fmt.Sprintf("graphql: unknown query %q", e.Name)
}

// Registry maps query identifiers to their definitions so that queries can
// be listed and invoked by name, e.g. from a tool surface.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// ErrNilEntry is returned by Register when an entry is nil.
var ErrNilEntry = errors.New("graphql: nil query entry")

// Register adds entries to the registry. It fails, registering nothing, if
// an entry is nil or any name is already taken or repeated within entries.
func (r *Registry) Register(entries ...Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e == nil {
			return ErrNilEntry
		}
		name := e.Name()
		if _, ok := r.entries[name]; ok || seen[name] {
			return fmt.Errorf("graphql: query %q already registered", name)
		}
		seen[name] = true
	}
	for _, e := range entries {
		r.entries[e.Name()] = e
	}
	return nil
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Placeholder returns the "no data yet" value of the query registered
// under name.
func (r *Registry) Placeholder(name string) (any, bool) {
	e, ok := r.Lookup(name)
	if !ok {
		return nil, false
	}
	return e.placeholder(), true
}

// Execute runs the query registered under name. vars is a JSON object
// decoded into the query's variables type; unknown fields are rejected.
// The result is the query's ResponseData value.
func (r *Registry) Execute(ctx context.Context, b *Builder, name string, vars json.RawMessage) (any, error) {
	e, ok := r.Lookup(name)
	if !ok {
		return nil, &ErrUnknownQuery{Name: name}
	}
	return e.execute(ctx, b, vars)
}
