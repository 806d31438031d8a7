// Package catalog supplies the restaurant catalog. A Source is fetched
// once per session; the static source never fails, the file source can.
package catalog

import (
	"context"
	"fmt"

	"dinegrip/internal/domain"
)

// FetchError reports a failed catalog retrieval.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch catalog from %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Source supplies the list of restaurants.
type Source interface {
	Fetch(ctx context.Context) ([]domain.Restaurant, error)
}

// StaticSource serves a fixed in-memory catalog.
type StaticSource struct {
	restaurants []domain.Restaurant
}

// NewStaticSource creates a source over a fixed list.
func NewStaticSource(restaurants []domain.Restaurant) *StaticSource {
	return &StaticSource{restaurants: restaurants}
}

// Fetch returns a copy of the list. It honors context cancellation but
// otherwise cannot fail.
func (s *StaticSource) Fetch(ctx context.Context) ([]domain.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Source: "static", Err: err}
	}
	out := make([]domain.Restaurant, len(s.restaurants))
	copy(out, s.restaurants)
	return out, nil
}

// DefaultCatalog returns the built-in demo catalog.
func DefaultCatalog() []domain.Restaurant {
	return []domain.Restaurant{
		{ID: "1", Title: "Burger Shack", Cuisine: domain.CuisineAmerican},
		{ID: "2", Title: "Moça Fina", Cuisine: domain.CuisineAngolana},
		{ID: "3", Title: "ありがとう", Cuisine: domain.CuisineJapanese},
		{ID: "4", Title: "JulioPerro", Cuisine: domain.CuisineItalian},
	}
}
