package language

import (
	"context"
	"fmt"

	"github.com/tosteiner/thoth/internal/graphql"
)

// Compile-time interface check.
var _ LanguageManager = (*GraphQLLanguageManager)(nil)

// GraphQLLanguageManager implements LanguageManager by querying the Thoth
// GraphQL API.
type GraphQLLanguageManager struct {
	builder *graphql.Builder
}

// NewGraphQLLanguageManager returns a new GraphQLLanguageManager that uses
// the provided builder for all API calls.
func NewGraphQLLanguageManager(b *graphql.Builder) *GraphQLLanguageManager {
	if b == nil {
		panic("graphql builder must not be nil")
	}
	return &GraphQLLanguageManager{builder: b}
}

// Relations returns the names of every language relation.
func (m *GraphQLLanguageManager) Relations(ctx context.Context) ([]string, error) {
	data, err := graphql.Execute(ctx, m.builder, RelationsQuery, graphql.NoVariables{})
	if err != nil {
		return nil, fmt.Errorf("language relations: %w", err)
	}
	return data.LanguageRelations.Names(), nil
}

// Codes returns the names of every language code.
func (m *GraphQLLanguageManager) Codes(ctx context.Context) ([]string, error) {
	data, err := graphql.Execute(ctx, m.builder, CodesQuery, graphql.NoVariables{})
	if err != nil {
		return nil, fmt.Errorf("language codes: %w", err)
	}
	return data.LanguageCodes.Names(), nil
}

// List returns languages matching vars. An empty (non-nil) slice is
// returned when nothing matches.
func (m *GraphQLLanguageManager) List(ctx context.Context, vars ListVariables) ([]Language, error) {
	data, err := graphql.Execute(ctx, m.builder, ListQuery, vars)
	if err != nil {
		return nil, fmt.Errorf("languages list: %w", err)
	}
	if data.Languages == nil {
		return []Language{}, nil
	}
	return data.Languages, nil
}
