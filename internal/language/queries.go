package language

import "github.com/tosteiner/thoth/internal/graphql"

// RelationsQuery lists the values of the LanguageRelation enum.
var RelationsQuery = graphql.MustDefine[graphql.NoVariables, RelationsData]("language_relations", `
    {
        language_relations: __type(name: "LanguageRelation") {
            enumValues {
                name
            }
        }
    }
`)

// CodesQuery lists the values of the LanguageCode enum.
var CodesQuery = graphql.MustDefine[graphql.NoVariables, CodesData]("language_codes", `
    {
        language_codes: __type(name: "LanguageCode") {
            enumValues {
                name
            }
        }
    }
`)

// ListQuery lists languages attached to works.
var ListQuery = graphql.MustDefine[ListVariables, ListData]("languages", `
    query LanguagesQuery(
        $limit: Int
        $offset: Int
        $languageCodes: [LanguageCode!]
        $languageRelation: LanguageRelation
    ) {
        languages(
            limit: $limit
            offset: $offset
            languageCodes: $languageCodes
            languageRelation: $languageRelation
        ) {
            languageId
            workId
            languageCode
            languageRelation
            mainLanguage
        }
    }
`)

// Register adds the language queries to reg.
func Register(reg *graphql.Registry) error {
	return reg.Register(RelationsQuery, CodesQuery, ListQuery)
}
