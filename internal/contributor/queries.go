package contributor

import "github.com/tosteiner/thoth/internal/graphql"

// ListQuery lists contributors ordered by full name.
var ListQuery = graphql.MustDefine[ListVariables, ListData]("contributors", `
    query ContributorsQuery($limit: Int, $offset: Int, $filter: String) {
        contributors(limit: $limit, offset: $offset, filter: $filter) {
            contributorId
            firstName
            lastName
            fullName
            orcid
            website
        }
    }
`)

// TypesQuery lists the values of the ContributionType enum.
var TypesQuery = graphql.MustDefine[graphql.NoVariables, TypesData]("contribution_types", `
    {
        contribution_types: __type(name: "ContributionType") {
            enumValues {
                name
            }
        }
    }
`)

// Register adds the contributor queries to reg.
func Register(reg *graphql.Registry) error {
	return reg.Register(ListQuery, TypesQuery)
}
