package work

import (
	"context"
	"fmt"
	"strings"

	"github.com/tosteiner/thoth/internal/graphql"
)

// Compile-time interface check.
var _ WorkManager = (*GraphQLWorkManager)(nil)

// GraphQLWorkManager implements WorkManager by querying the Thoth GraphQL
// API.
type GraphQLWorkManager struct {
	builder *graphql.Builder
}

// NewGraphQLWorkManager returns a new GraphQLWorkManager that uses the
// provided builder for all API calls.
func NewGraphQLWorkManager(b *graphql.Builder) *GraphQLWorkManager {
	if b == nil {
		panic("graphql builder must not be nil")
	}
	return &GraphQLWorkManager{builder: b}
}

// List returns works matching vars. An empty (non-nil) slice is returned
// when nothing matches.
func (m *GraphQLWorkManager) List(ctx context.Context, vars ListVariables) ([]Work, error) {
	data, err := graphql.Execute(ctx, m.builder, ListQuery, vars)
	if err != nil {
		return nil, fmt.Errorf("works list: %w", err)
	}
	if data.Works == nil {
		return []Work{}, nil
	}
	return data.Works, nil
}

// Get returns the work with the given id.
func (m *GraphQLWorkManager) Get(ctx context.Context, workID string) (Work, error) {
	workID = strings.TrimSpace(workID)
	if workID == "" {
		return Work{}, fmt.Errorf("work get: work id is required")
	}
	data, err := graphql.Execute(ctx, m.builder, GetQuery, GetVariables{WorkID: workID})
	if err != nil {
		return Work{}, fmt.Errorf("work get: %w", err)
	}
	return data.Work, nil
}

// Count returns the number of works matching vars.
func (m *GraphQLWorkManager) Count(ctx context.Context, vars CountVariables) (int, error) {
	data, err := graphql.Execute(ctx, m.builder, CountQuery, vars)
	if err != nil {
		return 0, fmt.Errorf("work count: %w", err)
	}
	return data.WorkCount, nil
}

// Types returns the names of every work type.
func (m *GraphQLWorkManager) Types(ctx context.Context) ([]string, error) {
	data, err := graphql.Execute(ctx, m.builder, TypesQuery, graphql.NoVariables{})
	if err != nil {
		return nil, fmt.Errorf("work types: %w", err)
	}
	return data.WorkTypes.Names(), nil
}
