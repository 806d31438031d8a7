package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinegrip/internal/catalog"
	"dinegrip/internal/domain"
	"dinegrip/internal/eventbus"
)

type failingSource struct{}

func (failingSource) Fetch(ctx context.Context) ([]domain.Restaurant, error) {
	return nil, &catalog.FetchError{Source: "test", Err: errors.New("boom")}
}

type fixture struct {
	ctrl    *Controller
	bus     eventbus.EventBus
	results chan domain.ResultsUpdatedEvent
	loaded  chan domain.CatalogLoadedEvent
	failed  chan domain.CatalogLoadFailedEvent
}

func newFixture(t *testing.T, src catalog.Source, debounce time.Duration) *fixture {
	t.Helper()

	bus := eventbus.New(nil)
	t.Cleanup(bus.Close)

	f := &fixture{
		bus:     bus,
		results: make(chan domain.ResultsUpdatedEvent, 16),
		loaded:  make(chan domain.CatalogLoadedEvent, 1),
		failed:  make(chan domain.CatalogLoadFailedEvent, 1),
	}
	bus.Subscribe(eventbus.EventResultsUpdated, func(e eventbus.DomainEvent) {
		f.results <- e.(domain.ResultsUpdatedEvent)
	})
	bus.Subscribe(eventbus.EventCatalogLoaded, func(e eventbus.DomainEvent) {
		f.loaded <- e.(domain.CatalogLoadedEvent)
	})
	bus.Subscribe(eventbus.EventCatalogLoadFailed, func(e eventbus.DomainEvent) {
		f.failed <- e.(domain.CatalogLoadFailedEvent)
	})

	f.ctrl = New(src, bus, Options{Debounce: debounce})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		f.ctrl.Wait()
	})
	f.ctrl.Start(ctx)

	return f
}

func loadedFixture(t *testing.T, debounce time.Duration) *fixture {
	t.Helper()
	f := newFixture(t, catalog.NewStaticSource(catalog.DefaultCatalog()), debounce)
	f.ctrl.Load(context.Background())
	select {
	case <-f.loaded:
	case <-time.After(2 * time.Second):
		t.Fatal("catalog never loaded")
	}
	return f
}

func (f *fixture) waitResults(t *testing.T) domain.ResultsUpdatedEvent {
	t.Helper()
	select {
	case ev := <-f.results:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no recompute fired")
		return domain.ResultsUpdatedEvent{}
	}
}

func (f *fixture) expectNoResults(t *testing.T, within time.Duration) {
	t.Helper()
	select {
	case ev := <-f.results:
		t.Fatalf("unexpected recompute for query %q", ev.Query)
	case <-time.After(within):
	}
}

func titles(rs []domain.Restaurant) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Title
	}
	return out
}

func TestLoad_PopulatesCatalogAndScopes(t *testing.T) {
	f := loadedFixture(t, 50*time.Millisecond)

	assert.Equal(t, []domain.Scope{
		domain.ScopeAll(),
		domain.ScopeFor(domain.CuisineAmerican),
		domain.ScopeFor(domain.CuisineAngolana),
		domain.ScopeFor(domain.CuisineJapanese),
		domain.ScopeFor(domain.CuisineItalian),
	}, f.ctrl.AvailableScopes())

	assert.False(t, f.ctrl.IsSearching())
	assert.Len(t, f.ctrl.VisibleResults(), 4)
}

func TestLoad_FailureLeavesCatalogEmpty(t *testing.T) {
	f := newFixture(t, failingSource{}, 50*time.Millisecond)

	f.ctrl.Load(context.Background())

	select {
	case ev := <-f.failed:
		var fe *catalog.FetchError
		assert.ErrorAs(t, ev.Err, &fe)
	case <-time.After(2 * time.Second):
		t.Fatal("no failure event")
	}

	assert.Empty(t, f.ctrl.VisibleResults())
	assert.Equal(t, []domain.Scope{domain.ScopeAll()}, f.ctrl.AvailableScopes())
}

func TestSetQueryText_RecordedImmediately(t *testing.T) {
	f := loadedFixture(t, time.Hour) // debounce never fires in this test

	f.ctrl.SetQueryText("bu")
	assert.Equal(t, "bu", f.ctrl.Query())
	assert.True(t, f.ctrl.IsSearching())

	// No recompute yet: derived results still lag.
	assert.Empty(t, f.ctrl.FilteredResults())
}

func TestDebounce_CoalescesRapidCalls(t *testing.T) {
	f := loadedFixture(t, 80*time.Millisecond)

	f.ctrl.SetQueryText("a")
	time.Sleep(10 * time.Millisecond)
	f.ctrl.SetQueryText("ab")
	time.Sleep(10 * time.Millisecond)
	f.ctrl.SetQueryText("abc")

	ev := f.waitResults(t)
	assert.Equal(t, "abc", ev.Query)

	f.expectNoResults(t, 200*time.Millisecond)
}

func TestRecompute_TitleMatch(t *testing.T) {
	f := loadedFixture(t, 30*time.Millisecond)

	f.ctrl.SetQueryText("bu")
	ev := f.waitResults(t)

	assert.Equal(t, []string{"Burger Shack"}, titles(ev.Results))
	assert.Contains(t, ev.TextSuggestions, "Burger")
	assert.Equal(t, []string{"Burger Shack"}, titles(f.ctrl.VisibleResults()))
}

func TestRecompute_CuisineLabelMatch(t *testing.T) {
	f := loadedFixture(t, 30*time.Millisecond)

	f.ctrl.SetQueryText("ita")
	ev := f.waitResults(t)

	assert.Equal(t, []string{"JulioPerro"}, titles(ev.Results))
	assert.Equal(t, []string{"JulioPerro"}, titles(ev.RestaurantSuggestions))
}

func TestRecompute_ScopeNarrowsResults(t *testing.T) {
	f := loadedFixture(t, 30*time.Millisecond)

	// Scope and query set within one debounce window coalesce into a
	// single recompute over the latest pair.
	f.ctrl.SetScope(domain.ScopeFor(domain.CuisineAmerican))
	f.ctrl.SetQueryText("a")
	ev := f.waitResults(t)

	assert.Equal(t, "a", ev.Query)
	assert.Equal(t, domain.ScopeFor(domain.CuisineAmerican), ev.Scope)
	assert.Equal(t, []string{"Burger Shack"}, titles(ev.Results))
}

func TestClearQuery_ResetsScopeToAll(t *testing.T) {
	f := loadedFixture(t, 30*time.Millisecond)

	f.ctrl.SetScope(domain.ScopeFor(domain.CuisineItalian))
	f.ctrl.SetQueryText("ita")
	ev := f.waitResults(t)
	require.Equal(t, domain.ScopeFor(domain.CuisineItalian), ev.Scope)

	f.ctrl.SetQueryText("")
	ev = f.waitResults(t)

	assert.Equal(t, "", ev.Query)
	assert.Equal(t, domain.ScopeAll(), ev.Scope)
	assert.Empty(t, ev.Results)
	assert.Equal(t, domain.ScopeAll(), f.ctrl.Scope())
	assert.Empty(t, f.ctrl.FilteredResults())
	// Not searching anymore, so the whole catalog is visible.
	assert.Len(t, f.ctrl.VisibleResults(), 4)
}

func TestSetScope_WithEmptyQueryResetsToAll(t *testing.T) {
	f := loadedFixture(t, 30*time.Millisecond)

	f.ctrl.SetScope(domain.ScopeFor(domain.CuisineJapanese))
	ev := f.waitResults(t)

	assert.Equal(t, domain.ScopeAll(), ev.Scope)
	assert.Equal(t, domain.ScopeAll(), f.ctrl.Scope())
}

func TestSuggestions_SuppressedForLongQueries(t *testing.T) {
	f := loadedFixture(t, 30*time.Millisecond)

	f.ctrl.SetQueryText("burger")
	ev := f.waitResults(t)

	assert.Equal(t, []string{"Burger Shack"}, titles(ev.Results))
	assert.Empty(t, ev.TextSuggestions)
	assert.Empty(t, ev.RestaurantSuggestions)
}

func TestVisibleResults_LagWithinOneWindow(t *testing.T) {
	f := loadedFixture(t, 200*time.Millisecond)

	f.ctrl.SetQueryText("bu")
	// Before the debounce fires the query is recorded but the derived
	// results still reflect the previous recompute.
	assert.True(t, f.ctrl.IsSearching())
	assert.Empty(t, f.ctrl.VisibleResults())

	f.waitResults(t)
	assert.Equal(t, []string{"Burger Shack"}, titles(f.ctrl.VisibleResults()))
}
