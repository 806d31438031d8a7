package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"dinegrip/internal/domain"
)

// FileSource reads the catalog from a TOML file:
//
//	[[restaurants]]
//	id = "1"
//	title = "Burger Shack"
//	cuisine = "american"
//
// Entries without an id get one generated. Unknown cuisines fail the
// whole fetch so a typo cannot silently drop an entry from every scope.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading from path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

type fileCatalog struct {
	Restaurants []fileRestaurant `toml:"restaurants"`
}

type fileRestaurant struct {
	ID      string `toml:"id"`
	Title   string `toml:"title"`
	Cuisine string `toml:"cuisine"`
}

// Fetch reads and validates the catalog file.
func (s *FileSource) Fetch(ctx context.Context) ([]domain.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Source: s.path, Err: err}
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &FetchError{Source: s.path, Err: err}
	}

	var fc fileCatalog
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, &FetchError{Source: s.path, Err: err}
	}

	restaurants := make([]domain.Restaurant, 0, len(fc.Restaurants))
	for i, fr := range fc.Restaurants {
		if fr.Title == "" {
			return nil, &FetchError{Source: s.path, Err: fmt.Errorf("restaurant %d: missing title", i)}
		}
		cuisine := domain.Cuisine(fr.Cuisine)
		if !cuisine.Valid() {
			return nil, &FetchError{Source: s.path, Err: fmt.Errorf("restaurant %q: unknown cuisine %q", fr.Title, fr.Cuisine)}
		}
		id := fr.ID
		if id == "" {
			id = uuid.NewString()
		}
		restaurants = append(restaurants, domain.Restaurant{
			ID:      id,
			Title:   fr.Title,
			Cuisine: cuisine,
		})
	}
	return restaurants, nil
}
