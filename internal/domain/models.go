package domain

import (
	"unicode"
	"unicode/utf8"
)

// Cuisine is a cuisine tag. The set of valid values is closed.
type Cuisine string

const (
	CuisineAmerican Cuisine = "american"
	CuisineItalian  Cuisine = "italian"
	CuisineJapanese Cuisine = "japanese"
	CuisineAngolana Cuisine = "angolana"
)

// Cuisines returns every cuisine in declaration order.
func Cuisines() []Cuisine {
	return []Cuisine{CuisineAmerican, CuisineItalian, CuisineJapanese, CuisineAngolana}
}

// Valid reports whether c is one of the declared cuisines.
func (c Cuisine) Valid() bool {
	switch c {
	case CuisineAmerican, CuisineItalian, CuisineJapanese, CuisineAngolana:
		return true
	}
	return false
}

// Label returns the display form of the cuisine, e.g. "Italian".
func (c Cuisine) Label() string {
	return capitalize(string(c))
}

// Restaurant is a catalog entry. Identity is ID; entries are immutable
// once created.
type Restaurant struct {
	ID      string
	Title   string
	Cuisine Cuisine
}

// Scope selects which part of the catalog a search runs against: the
// whole catalog or a single cuisine. The zero value means "all".
type Scope struct {
	Cuisine Cuisine // empty when the scope covers all cuisines
}

// ScopeAll returns the scope covering the whole catalog.
func ScopeAll() Scope { return Scope{} }

// ScopeFor returns the scope limited to a single cuisine.
func ScopeFor(c Cuisine) Scope { return Scope{Cuisine: c} }

// IsAll reports whether the scope covers the whole catalog.
func (s Scope) IsAll() bool { return s.Cuisine == "" }

// Label returns the display form of the scope.
func (s Scope) Label() string {
	if s.IsAll() {
		return "All"
	}
	return s.Cuisine.Label()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
