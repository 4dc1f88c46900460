// Package films holds the film-title domain: suggestion lookups, the
// common-persons aggregation and the GraphQL queries behind them.
package films

import (
	"context"
	"fmt"
	"strings"
)

// Suggestion is one candidate title shown while typing.
type Suggestion struct {
	Title string
}

// Person is one entry of a common-persons result.
type Person struct {
	Name string
}

// Catalog answers the two questions the picker asks.
type Catalog interface {
	// SearchTitles returns titles matching term, in backend order.
	SearchTitles(ctx context.Context, term string) ([]Suggestion, error)
	// CommonPersons returns the persons shared by every title in titles.
	CommonPersons(ctx context.Context, titles []string) ([]Person, error)
}

// Collation decides how the typed term is normalized before it is sent.
// Case sensitivity of the match itself belongs to the backend.
type Collation string

const (
	// CollationBackend sends the term exactly as typed.
	CollationBackend Collation = "backend"
	// CollationFold lower-cases the term before sending.
	CollationFold Collation = "fold"
)

// ParseCollation maps a config value to a Collation.
func ParseCollation(s string) (Collation, error) {
	switch Collation(strings.ToLower(strings.TrimSpace(s))) {
	case "", CollationBackend:
		return CollationBackend, nil
	case CollationFold:
		return CollationFold, nil
	}
	return "", fmt.Errorf("unknown collation %q (want %q or %q)", s, CollationBackend, CollationFold)
}

// Apply normalizes term according to the policy.
func (c Collation) Apply(term string) string {
	if c == CollationFold {
		return strings.ToLower(term)
	}
	return term
}

// SearchOptions shapes the suggestion query.
type SearchOptions struct {
	// Pattern is a fmt template wrapping the term, e.g. "%%%s%%" for SQL LIKE.
	Pattern   string
	Limit     int
	Collation Collation
}

// DefaultSearchOptions matches the widget's stock behavior.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Pattern:   "%%%s%%",
		Limit:     20,
		Collation: CollationBackend,
	}
}

func (o SearchOptions) withDefaults() SearchOptions {
	def := DefaultSearchOptions()
	if strings.TrimSpace(o.Pattern) == "" || !strings.Contains(o.Pattern, "%s") {
		o.Pattern = def.Pattern
	}
	if o.Limit <= 0 {
		o.Limit = def.Limit
	}
	if o.Collation == "" {
		o.Collation = def.Collation
	}
	return o
}

// SearchArgument renders the value passed as the films(search:) argument.
func (o SearchOptions) SearchArgument(term string) string {
	o = o.withDefaults()
	return fmt.Sprintf(o.Pattern, o.Collation.Apply(term))
}
