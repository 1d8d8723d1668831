// Package queries collects the query definitions of every API area into one
// registry.
package queries

import (
	"fmt"

	"github.com/tosteiner/thoth/internal/contributor"
	"github.com/tosteiner/thoth/internal/graphql"
	"github.com/tosteiner/thoth/internal/language"
	"github.com/tosteiner/thoth/internal/publisher"
	"github.com/tosteiner/thoth/internal/work"
)

// RegisterAll adds every area's query definitions to reg.
func RegisterAll(reg *graphql.Registry) error {
	for _, register := range []func(*graphql.Registry) error{
		language.Register,
		work.Register,
		publisher.Register,
		contributor.Register,
	} {
		if err := register(reg); err != nil {
			return fmt.Errorf("register queries: %w", err)
		}
	}
	return nil
}

// NewRegistry returns a registry holding every area's query definitions.
func NewRegistry() (*graphql.Registry, error) {
	reg := graphql.NewRegistry()
	if err := RegisterAll(reg); err != nil {
		return nil, err
	}
	return reg, nil
}
