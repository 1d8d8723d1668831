// Package work provides the Thoth work queries: paginated work listings,
// single-work lookups, counts and the work type enum.
package work

import (
	"context"

	"github.com/tosteiner/thoth/internal/graphql"
)

// Publisher is the publisher owning a work's imprint.
type Publisher struct {
	PublisherID   string `json:"publisherId"`
	PublisherName string `json:"publisherName"`
}

// Imprint is the imprint a work is published under.
type Imprint struct {
	ImprintID   string    `json:"imprintId"`
	ImprintName string    `json:"imprintName"`
	Publisher   Publisher `json:"publisher"`
}

// Contribution links a contributor to a work.
type Contribution struct {
	ContributionType string `json:"contributionType"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	FullName         string `json:"fullName"`
	MainContribution bool   `json:"mainContribution"`
}

// Work is a book, chapter or other publication.
type Work struct {
	WorkID          string         `json:"workId"`
	WorkType        string         `json:"workType"`
	WorkStatus      string         `json:"workStatus"`
	FullTitle       string         `json:"fullTitle"`
	Title           string         `json:"title"`
	Subtitle        *string        `json:"subtitle"`
	Doi             *string        `json:"doi"`
	PublicationDate *string        `json:"publicationDate"`
	Place           *string        `json:"place"`
	Imprint         Imprint        `json:"imprint"`
	Contributions   []Contribution `json:"contributions"`
}

// ListVariables filters and paginates the works query. Zero fields are
// omitted and the server defaults apply.
type ListVariables struct {
	Limit      int      `json:"limit,omitempty"`
	Offset     int      `json:"offset,omitempty"`
	Filter     string   `json:"filter,omitempty"`
	Publishers []string `json:"publishers,omitempty"`
}

// ListData is the result of the works query.
type ListData struct {
	Works []Work `json:"works"`
}

// Placeholder returns a ListData with an empty, non-nil list.
func (ListData) Placeholder() ListData {
	return ListData{Works: []Work{}}
}

// GetVariables selects one work.
type GetVariables struct {
	WorkID string `json:"workId"`
}

// GetData is the result of the work query.
type GetData struct {
	Work Work `json:"work"`
}

// Placeholder returns a GetData holding an empty work.
func (GetData) Placeholder() GetData {
	return GetData{Work: Work{Contributions: []Contribution{}}}
}

// CountVariables filters the work count query.
type CountVariables struct {
	Filter     string   `json:"filter,omitempty"`
	Publishers []string `json:"publishers,omitempty"`
}

// CountData is the result of the work count query.
type CountData struct {
	WorkCount int `json:"workCount"`
}

// Placeholder returns a zero count.
func (CountData) Placeholder() CountData {
	return CountData{}
}

// TypesData is the result of the work types query.
type TypesData struct {
	WorkTypes graphql.EnumType `json:"work_types"`
}

// Placeholder returns a TypesData with no types.
func (TypesData) Placeholder() TypesData {
	return TypesData{WorkTypes: graphql.EmptyEnum()}
}

// WorkManager defines the interface for work lookups.
type WorkManager interface {
	List(ctx context.Context, vars ListVariables) ([]Work, error)
	Get(ctx context.Context, workID string) (Work, error)
	Count(ctx context.Context, vars CountVariables) (int, error)
	Types(ctx context.Context) ([]string, error)
}
