package work

import "github.com/tosteiner/thoth/internal/graphql"

const workFields = `
            workId
            workType
            workStatus
            fullTitle
            title
            subtitle
            doi
            publicationDate
            place
            imprint {
                imprintId
                imprintName
                publisher {
                    publisherId
                    publisherName
                }
            }
            contributions {
                contributionType
                firstName
                lastName
                fullName
                mainContribution
            }`

// ListQuery lists works, newest first.
var ListQuery = graphql.MustDefine[ListVariables, ListData]("works", `
    query WorksQuery($limit: Int, $offset: Int, $filter: String, $publishers: [Uuid!]) {
        works(limit: $limit, offset: $offset, filter: $filter, publishers: $publishers) {`+workFields+`
        }
    }
`)

// GetQuery fetches a single work by id.
var GetQuery = graphql.MustDefine[GetVariables, GetData]("work", `
    query WorkQuery($workId: Uuid!) {
        work(workId: $workId) {`+workFields+`
        }
    }
`)

// CountQuery counts works matching a filter.
var CountQuery = graphql.MustDefine[CountVariables, CountData]("work_count", `
    query WorkCountQuery($filter: String, $publishers: [Uuid!]) {
        workCount(filter: $filter, publishers: $publishers)
    }
`)

// TypesQuery lists the values of the WorkType enum.
var TypesQuery = graphql.MustDefine[graphql.NoVariables, TypesData]("work_types", `
    {
        work_types: __type(name: "WorkType") {
            enumValues {
                name
            }
        }
    }
`)

// Register adds the work queries to reg.
func Register(reg *graphql.Registry) error {
	return reg.Register(ListQuery, GetQuery, CountQuery, TypesQuery)
}
