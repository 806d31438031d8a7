// Package controller owns the reactive search state: it records query
// and scope changes immediately, debounces recomputation, and publishes
// derived results on the event bus.
package controller

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"dinegrip/internal/catalog"
	"dinegrip/internal/domain"
	"dinegrip/internal/eventbus"
	"dinegrip/internal/search"
)

// Options tunes the controller.
type Options struct {
	// Debounce is the quiet period after the last SetQueryText/SetScope
	// call before a recompute fires. Default: 300ms.
	Debounce time.Duration
	// Logger overrides the default no-op logger.
	Logger *zap.Logger
}

func (o *Options) defaults() {
	if o.Debounce <= 0 {
		o.Debounce = 300 * time.Millisecond
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// Controller is the reactive core. Setters may be called from any
// goroutine; all recompute writes happen on the controller's own loop,
// so derived state is only ever written in one place.
type Controller struct {
	src  catalog.Source
	bus  eventbus.EventBus
	log  *zap.Logger
	opts Options

	mu    sync.RWMutex
	state *SearchState

	kicks chan struct{}
	wg    sync.WaitGroup
}

// New creates a controller. Call Start before using the setters.
func New(src catalog.Source, bus eventbus.EventBus, opts Options) *Controller {
	opts.defaults()
	return &Controller{
		src:   src,
		bus:   bus,
		log:   opts.Logger,
		opts:  opts,
		state: NewSearchState(),
		kicks: make(chan struct{}, 1),
	}
}

// Start runs the debounce loop until ctx is cancelled.
func (c *Controller) Start(ctx context.Context) {
	c.wg.Add(1)
	go c.run(ctx)
}

// Wait blocks until the debounce loop has exited.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Load fetches the catalog asynchronously. On success the catalog and
// available scopes are installed and CatalogLoadedEvent fires; on
// failure the error is logged, CatalogLoadFailedEvent fires, and the
// catalog stays empty. There is no automatic retry — call Load again.
func (c *Controller) Load(ctx context.Context) {
	go func() {
		restaurants, err := c.src.Fetch(ctx)
		if err != nil {
			c.log.Warn("catalog load failed", zap.Error(err))
			c.bus.Publish(domain.CatalogLoadFailedEvent{Err: err})
			return
		}

		c.mu.Lock()
		c.state.SetCatalog(restaurants)
		scopes := snapshotScopes(c.state.AvailableScopes)
		c.mu.Unlock()

		c.log.Info("catalog loaded",
			zap.Int("restaurants", len(restaurants)),
			zap.Int("scopes", len(scopes)))
		c.bus.Publish(domain.CatalogLoadedEvent{Restaurants: restaurants, Scopes: scopes})
	}()
}

// SetQueryText records the new query text immediately and restarts the
// debounce timer.
func (c *Controller) SetQueryText(text string) {
	c.mu.Lock()
	c.state.Query = text
	c.mu.Unlock()

	c.bus.Publish(domain.QueryChangedEvent{Query: text})
	c.kick()
}

// SetScope records the new scope immediately and restarts the debounce
// timer.
func (c *Controller) SetScope(scope domain.Scope) {
	c.mu.Lock()
	c.state.Scope = scope
	c.mu.Unlock()

	c.bus.Publish(domain.ScopeChangedEvent{Scope: scope})
	c.kick()
}

// Query returns the latest recorded query text.
func (c *Controller) Query() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Query
}

// Scope returns the latest recorded scope.
func (c *Controller) Scope() domain.Scope {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Scope
}

// IsSearching reports whether the query text is non-empty.
func (c *Controller) IsSearching() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Query != ""
}

// VisibleResults returns the filtered results while searching and the
// full catalog otherwise.
func (c *Controller) VisibleResults() []domain.Restaurant {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state.Query != "" {
		return snapshotRestaurants(c.state.FilteredResults)
	}
	return snapshotRestaurants(c.state.Catalog)
}

// FilteredResults returns the results of the most recent recompute.
func (c *Controller) FilteredResults() []domain.Restaurant {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return snapshotRestaurants(c.state.FilteredResults)
}

// AvailableScopes returns All plus one scope per cuisine present in the
// catalog, in first-seen order.
func (c *Controller) AvailableScopes() []domain.Scope {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return snapshotScopes(c.state.AvailableScopes)
}

// Suggestions returns the text and restaurant suggestions of the most
// recent recompute.
func (c *Controller) Suggestions() (texts []string, restaurants []domain.Restaurant) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	texts = append([]string(nil), c.state.TextSuggestions...)
	restaurants = snapshotRestaurants(c.state.RestaurantSuggestions)
	return texts, restaurants
}

// kick asks the loop to restart the debounce timer. A pending kick is
// enough: the loop reads the latest (query, scope) pair when it fires.
func (c *Controller) kick() {
	select {
	case c.kicks <- struct{}{}:
	default:
	}
}

// run is the debounce loop. Every kick restarts the timer; the
// recompute fires once per quiescent window with whatever pair is
// current at that moment.
func (c *Controller) run(ctx context.Context) {
	defer c.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	c.log.Info("controller started", zap.Duration("debounce", c.opts.Debounce))

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			c.log.Info("controller stopped")
			return

		case <-c.kicks:
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(c.opts.Debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			c.recompute()
		}
	}
}

// recompute derives filtered results and suggestions from the latest
// (query, scope) pair. An empty query clears the results and forces the
// scope back to All.
func (c *Controller) recompute() {
	c.mu.Lock()
	query := c.state.Query
	if query == "" {
		c.state.Scope = domain.ScopeAll()
		c.state.FilteredResults = nil
		c.state.TextSuggestions = nil
		c.state.RestaurantSuggestions = nil
	} else {
		c.state.FilteredResults = search.Filter(c.state.Catalog, query, c.state.Scope)
		c.state.TextSuggestions = search.TextSuggestions(query)
		c.state.RestaurantSuggestions = search.RestaurantSuggestions(query, c.state.Catalog)
	}
	ev := domain.ResultsUpdatedEvent{
		Query:                 query,
		Scope:                 c.state.Scope,
		Results:               snapshotRestaurants(c.state.FilteredResults),
		TextSuggestions:       append([]string(nil), c.state.TextSuggestions...),
		RestaurantSuggestions: snapshotRestaurants(c.state.RestaurantSuggestions),
	}
	c.mu.Unlock()

	c.log.Debug("recomputed results",
		zap.String("query", ev.Query),
		zap.String("scope", ev.Scope.Label()),
		zap.Int("results", len(ev.Results)))
	c.bus.Publish(ev)
}

func snapshotRestaurants(in []domain.Restaurant) []domain.Restaurant {
	if in == nil {
		return nil
	}
	out := make([]domain.Restaurant, len(in))
	copy(out, in)
	return out
}

func snapshotScopes(in []domain.Scope) []domain.Scope {
	out := make([]domain.Scope, len(in))
	copy(out, in)
	return out
}
