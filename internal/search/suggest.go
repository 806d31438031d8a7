package search

import (
	"strings"
	"unicode/utf8"

	"dinegrip/internal/domain"
)

// suggestionCutoff is the query length (in runes) at which suggestions
// stop being offered.
const suggestionCutoff = 5

// The suggestion rules are deliberately literal: an ordered list of
// (trigger substring, outcome) pairs evaluated in declaration order
// against the folded query. They are tuned to the built-in catalog and
// are not a general matcher.

type textRule struct {
	trigger string
	label   string
}

var textRules = []textRule{
	{trigger: "bu", label: "Burger"},
	{trigger: "mo", label: "Moça"},
}

type cuisineRule struct {
	trigger string
	cuisine domain.Cuisine
}

var cuisineRules = []cuisineRule{
	{trigger: "ita", cuisine: domain.CuisineItalian},
	{trigger: "an", cuisine: domain.CuisineAngolana},
}

// TextSuggestions returns the labels to offer for the query: the text
// rules whose trigger appears in the folded query, followed by the label
// of every cuisine in declaration order. Queries at or past the cutoff
// get no suggestions.
func TextSuggestions(query string) []string {
	if utf8.RuneCountInString(query) >= suggestionCutoff {
		return nil
	}
	q := fold(query)
	var out []string
	for _, rule := range textRules {
		if strings.Contains(q, rule.trigger) {
			out = append(out, rule.label)
		}
	}
	for _, c := range domain.Cuisines() {
		out = append(out, c.Label())
	}
	return out
}

// RestaurantSuggestions returns, for every cuisine rule whose trigger
// appears in the folded query, all catalog entries of that cuisine in
// catalog order. Entries matched by more than one rule are repeated;
// the rules are appended as matched, never deduplicated.
func RestaurantSuggestions(query string, catalog []domain.Restaurant) []domain.Restaurant {
	if utf8.RuneCountInString(query) >= suggestionCutoff {
		return nil
	}
	q := fold(query)
	var out []domain.Restaurant
	for _, rule := range cuisineRules {
		if !strings.Contains(q, rule.trigger) {
			continue
		}
		for _, r := range catalog {
			if r.Cuisine == rule.cuisine {
				out = append(out, r)
			}
		}
	}
	return out
}
