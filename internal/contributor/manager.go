package contributor

import (
	"context"
	"fmt"

	"github.com/tosteiner/thoth/internal/graphql"
)

// Compile-time interface check.
var _ ContributorManager = (*GraphQLContributorManager)(nil)

// GraphQLContributorManager implements ContributorManager by querying the
// Thoth GraphQL API.
type GraphQLContributorManager struct {
	builder *graphql.Builder
}

// NewGraphQLContributorManager returns a new GraphQLContributorManager that
// uses the provided builder for all API calls.
func NewGraphQLContributorManager(b *graphql.Builder) *GraphQLContributorManager {
	if b == nil {
		panic("graphql builder must not be nil")
	}
	return &GraphQLContributorManager{builder: b}
}

// List returns contributors matching vars.
func (m *GraphQLContributorManager) List(ctx context.Context, vars ListVariables) ([]Contributor, error) {
	data, err := graphql.Execute(ctx, m.builder, ListQuery, vars)
	if err != nil {
		return nil, fmt.Errorf("contributors list: %w", err)
	}
	if data.Contributors == nil {
		return []Contributor{}, nil
	}
	return data.Contributors, nil
}

// ContributionTypes returns the names of every contribution type.
func (m *GraphQLContributorManager) ContributionTypes(ctx context.Context) ([]string, error) {
	data, err := graphql.Execute(ctx, m.builder, TypesQuery, graphql.NoVariables{})
	if err != nil {
		return nil, fmt.Errorf("contribution types: %w", err)
	}
	return data.ContributionTypes.Names(), nil
}
