package publisher

import (
	"context"
	"fmt"

	"github.com/tosteiner/thoth/internal/graphql"
)

// Compile-time interface check.
var _ PublisherManager = (*GraphQLPublisherManager)(nil)

// GraphQLPublisherManager implements PublisherManager by querying the Thoth
// GraphQL API.
type GraphQLPublisherManager struct {
	builder *graphql.Builder
}

// NewGraphQLPublisherManager returns a new GraphQLPublisherManager that uses
// the provided builder for all API calls.
func NewGraphQLPublisherManager(b *graphql.Builder) *GraphQLPublisherManager {
	if b == nil {
		panic("graphql builder must not be nil")
	}
	return &GraphQLPublisherManager{builder: b}
}

// List returns publishers matching vars.
func (m *GraphQLPublisherManager) List(ctx context.Context, vars ListVariables) ([]Publisher, error) {
	data, err := graphql.Execute(ctx, m.builder, ListQuery, vars)
	if err != nil {
		return nil, fmt.Errorf("publishers list: %w", err)
	}
	if data.Publishers == nil {
		return []Publisher{}, nil
	}
	return data.Publishers, nil
}

// Count returns the number of publishers matching filter.
func (m *GraphQLPublisherManager) Count(ctx context.Context, filter string) (int, error) {
	data, err := graphql.Execute(ctx, m.builder, CountQuery, CountVariables{Filter: filter})
	if err != nil {
		return 0, fmt.Errorf("publisher count: %w", err)
	}
	return data.PublisherCount, nil
}
