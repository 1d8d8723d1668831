// Package contributor provides the Thoth contributor queries and the
// contribution type enum.
package contributor

import (
	"context"

	"github.com/tosteiner/thoth/internal/graphql"
)

// Contributor is a person credited on one or more works.
type Contributor struct {
	ContributorID string  `json:"contributorId"`
	FirstName     *string `json:"firstName"`
	LastName      string  `json:"lastName"`
	FullName      string  `json:"fullName"`
	Orcid         *string `json:"orcid"`
	Website       *string `json:"website"`
}

// ListVariables filters and paginates the contributors query.
type ListVariables struct {
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
	Filter string `json:"filter,omitempty"`
}

// ListData is the result of the contributors query.
type ListData struct {
	Contributors []Contributor `json:"contributors"`
}

// Placeholder returns a ListData with an empty, non-nil list.
func (ListData) Placeholder() ListData {
	return ListData{Contributors: []Contributor{}}
}

// TypesData is the result of the contribution types query.
type TypesData struct {
	ContributionTypes graphql.EnumType `json:"contribution_types"`
}

// Placeholder returns a TypesData with no types.
func (TypesData) Placeholder() TypesData {
	return TypesData{ContributionTypes: graphql.EmptyEnum()}
}

// ContributorManager defines the interface for contributor lookups.
type ContributorManager interface {
	List(ctx context.Context, vars ListVariables) ([]Contributor, error)
	ContributionTypes(ctx context.Context) ([]string, error)
}
