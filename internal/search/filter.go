// Package search implements the pure filtering engine: scope
// partitioning, case-folded substring matching, and the suggestion
// rules. Nothing in here holds state or fails; empty inputs yield
// empty outputs.
package search

import (
	"strings"

	"dinegrip/internal/domain"
)

// fold normalizes text for matching. Simple case-folding only.
func fold(s string) string {
	return strings.ToLower(s)
}

// PartitionByScope returns the catalog entries inside the scope,
// preserving catalog order. The All scope returns the catalog unchanged.
func PartitionByScope(catalog []domain.Restaurant, scope domain.Scope) []domain.Restaurant {
	if scope.IsAll() {
		return catalog
	}
	var out []domain.Restaurant
	for _, r := range catalog {
		if r.Cuisine == scope.Cuisine {
			out = append(out, r)
		}
	}
	return out
}

// MatchByText keeps the entries whose folded title or folded cuisine
// label contains the folded query as a substring.
func MatchByText(subset []domain.Restaurant, query string) []domain.Restaurant {
	q := fold(query)
	var out []domain.Restaurant
	for _, r := range subset {
		if strings.Contains(fold(r.Title), q) || strings.Contains(fold(r.Cuisine.Label()), q) {
			out = append(out, r)
		}
	}
	return out
}

// Filter composes partitioning and text matching. An empty query leaves
// the catalog unfiltered; the controller treats that case separately and
// never relies on it.
func Filter(catalog []domain.Restaurant, query string, scope domain.Scope) []domain.Restaurant {
	if query == "" {
		return catalog
	}
	return MatchByText(PartitionByScope(catalog, scope), query)
}
