package controller

import (
	"dinegrip/internal/domain"
)

// SearchState is the composite state the controller owns. Catalog and
// the derived fields are written only by the controller; Query and
// Scope record the latest intent from the presentation layer and may be
// ahead of the derived fields by at most one debounce window.
type SearchState struct {
	Catalog []domain.Restaurant
	Query   string
	Scope   domain.Scope

	AvailableScopes []domain.Scope

	// Derived by the most recent recompute.
	FilteredResults       []domain.Restaurant
	TextSuggestions       []string
	RestaurantSuggestions []domain.Restaurant
}

// NewSearchState creates an empty state with the All scope selected.
func NewSearchState() *SearchState {
	return &SearchState{
		Scope:           domain.ScopeAll(),
		AvailableScopes: []domain.Scope{domain.ScopeAll()},
	}
}

// SetCatalog installs the fetched catalog and derives the available
// scopes: All first, then one scope per distinct cuisine in first-seen
// catalog order.
func (s *SearchState) SetCatalog(restaurants []domain.Restaurant) {
	s.Catalog = restaurants
	s.AvailableScopes = deriveScopes(restaurants)
}

func deriveScopes(restaurants []domain.Restaurant) []domain.Scope {
	scopes := []domain.Scope{domain.ScopeAll()}
	seen := make(map[domain.Cuisine]bool)
	for _, r := range restaurants {
		if seen[r.Cuisine] {
			continue
		}
		seen[r.Cuisine] = true
		scopes = append(scopes, domain.ScopeFor(r.Cuisine))
	}
	return scopes
}
