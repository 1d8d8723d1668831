// Package publisher provides the Thoth publisher queries.
package publisher

import "context"

// Publisher is a publishing organisation.
type Publisher struct {
	PublisherID        string  `json:"publisherId"`
	PublisherName      string  `json:"publisherName"`
	PublisherShortname *string `json:"publisherShortname"`
	PublisherURL       *string `json:"publisherUrl"`
}

// ListVariables filters and paginates the publishers query.
type ListVariables struct {
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
	Filter string `json:"filter,omitempty"`
}

// ListData is the result of the publishers query.
type ListData struct {
	Publishers []Publisher `json:"publishers"`
}

// Placeholder returns a ListData with an empty, non-nil list.
func (ListData) Placeholder() ListData {
	return ListData{Publishers: []Publisher{}}
}

// CountVariables filters the publisher count query.
type CountVariables struct {
	Filter string `json:"filter,omitempty"`
}

// CountData is the result of the publisher count query.
type CountData struct {
	PublisherCount int `json:"publisherCount"`
}

// Placeholder returns a zero count.
func (CountData) Placeholder() CountData {
	return CountData{}
}

// PublisherManager defines the interface for publisher lookups.
type PublisherManager interface {
	List(ctx context.Context, vars ListVariables) ([]Publisher, error)
	Count(ctx context.Context, filter string) (int, error)
}
