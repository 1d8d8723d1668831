package publisher

import "github.com/tosteiner/thoth/internal/graphql"

// ListQuery lists publishers ordered by name.
var ListQuery = graphql.MustDefine[ListVariables, ListData]("publishers", `
    query PublishersQuery($limit: Int, $offset: Int, $filter: String) {
        publishers(limit: $limit, offset: $offset, filter: $filter) {
            publisherId
            publisherName
            publisherShortname
            publisherUrl
        }
    }
`)

// CountQuery counts publishers matching a filter.
var CountQuery = graphql.MustDefine[CountVariables, CountData]("publisher_count", `
    query PublisherCountQuery($filter: String) {
        publisherCount(filter: $filter)
    }
`)

// Register adds the publisher queries to reg.
func Register(reg *graphql.Registry) error {
	return reg.Register(ListQuery, CountQuery)
}
