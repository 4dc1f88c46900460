package films

import (
	"context"
	"encoding/json"
	"fmt"

	"filmpicker/internal/debug"
)

var log = debug.Scope("films")

// Querier is the part of graphql.Client the service needs.
type Querier interface {
	Query(ctx context.Context, query string, out any) error
}

// Service is the GraphQL-backed Catalog.
type Service struct {
	client Querier
	opts   SearchOptions
}

var _ Catalog = (*Service)(nil)

// NewService wraps a GraphQL client. One Service is shared by the whole
// widget for its lifetime.
func NewService(client Querier, opts SearchOptions) *Service {
	return &Service{client: client, opts: opts.withDefaults()}
}

// Options returns the effective search options.
func (s *Service) Options() SearchOptions {
	return s.opts
}

type filmsData struct {
	Films []struct {
		ID    json.RawMessage `json:"id"`
		Title string          `json:"title"`
	} `json:"films"`
}

type commonPersonsData struct {
	CommonPersons []struct {
		Name string `json:"name"`
	} `json:"commonPersons"`
}

// SearchTitles implements Catalog.
func (s *Service) SearchTitles(ctx context.Context, term string) ([]Suggestion, error) {
	query, err := TitlesQuery(s.opts.SearchArgument(term), s.opts.Limit)
	if err != nil {
		return nil, err
	}
	log.Logf("search %q", term)

	var data filmsData
	if err := s.client.Query(ctx, query, &data); err != nil {
		return nil, err
	}
	out := make([]Suggestion, 0, len(data.Films))
	for _, f := range data.Films {
		out = append(out, Suggestion{Title: f.Title})
	}
	return out, nil
}

// CommonPersons implements Catalog.
func (s *Service) CommonPersons(ctx context.Context, titles []string) ([]Person, error) {
	query, err := CommonPersonsQuery(titles)
	if err != nil {
		return nil, err
	}
	log.Logf("common persons for %d titles", len(titles))

	var data commonPersonsData
	if err := s.client.Query(ctx, query, &data); err != nil {
		return nil, err
	}
	out := make([]Person, 0, len(data.CommonPersons))
	for _, p := range data.CommonPersons {
		out = append(out, Person{Name: p.Name})
	}
	return out, nil
}

// TitlesQuery builds the suggestion query. search is embedded as a JSON
// string literal, which is also a valid GraphQL string literal.
func TitlesQuery(search string, limit int) (string, error) {
	lit, err := json.Marshal(search)
	if err != nil {
		return "", fmt.Errorf("encode search argument: %w", err)
	}
	return fmt.Sprintf("{films(search: %s, limit: %d) {id, title}}", lit, limit), nil
}

// CommonPersonsQuery builds the aggregation query with titles as a list literal.
func CommonPersonsQuery(titles []string) (string, error) {
	if titles == nil {
		titles = []string{}
	}
	lit, err := json.Marshal(titles)
	if err != nil {
		return "", fmt.Errorf("encode titles argument: %w", err)
	}
	return fmt.Sprintf("{commonPersons(titles: %s) {name}}", lit), nil
}
