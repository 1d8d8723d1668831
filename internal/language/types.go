// Package language provides the Thoth language queries: the language
// relation and language code enums, and the languages attached to works.
package language

import (
	"context"

	"github.com/tosteiner/thoth/internal/graphql"
)

// Language is a language attached to a work.
type Language struct {
	LanguageID       string `json:"languageId"`
	WorkID           string `json:"workId"`
	LanguageCode     string `json:"languageCode"`
	LanguageRelation string `json:"languageRelation"`
	MainLanguage     bool   `json:"mainLanguage"`
}

// RelationsData is the result of the language relations query.
type RelationsData struct {
	LanguageRelations graphql.EnumType `json:"language_relations"`
}

// Placeholder returns a RelationsData with no relations.
func (RelationsData) Placeholder() RelationsData {
	return RelationsData{LanguageRelations: graphql.EmptyEnum()}
}

// CodesData is the result of the language codes query.
type CodesData struct {
	LanguageCodes graphql.EnumType `json:"language_codes"`
}

// Placeholder returns a CodesData with no codes.
func (CodesData) Placeholder() CodesData {
	return CodesData{LanguageCodes: graphql.EmptyEnum()}
}

// ListVariables filters the languages query. Zero fields are omitted and
// the server defaults apply.
type ListVariables struct {
	Limit            int      `json:"limit,omitempty"`
	Offset           int      `json:"offset,omitempty"`
	LanguageCodes    []string `json:"languageCodes,omitempty"`
	LanguageRelation string   `json:"languageRelation,omitempty"`
}

// ListData is the result of the languages query.
type ListData struct {
	Languages []Language `json:"languages"`
}

// Placeholder returns a ListData with an empty, non-nil list.
func (ListData) Placeholder() ListData {
	return ListData{Languages: []Language{}}
}

// LanguageManager defines the interface for language lookups.
type LanguageManager interface {
	Relations(ctx context.Context) ([]string, error)
	Codes(ctx context.Context) ([]string, error)
	List(ctx context.Context, vars ListVariables) ([]Language, error)
}
