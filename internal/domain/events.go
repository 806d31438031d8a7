package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCatalogLoaded     EventType = "CatalogLoaded"
	EventCatalogLoadFailed EventType = "CatalogLoadFailed"
	EventQueryChanged      EventType = "QueryChanged"
	EventScopeChanged      EventType = "ScopeChanged"
	EventResultsUpdated    EventType = "ResultsUpdated"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CatalogLoadedEvent is emitted when the catalog has been fetched
type CatalogLoadedEvent struct {
	Restaurants []Restaurant
	Scopes      []Scope
}

func (e CatalogLoadedEvent) Type() EventType { return EventCatalogLoaded }

// CatalogLoadFailedEvent is emitted when catalog retrieval fails.
// The catalog stays empty; no automatic retry is scheduled.
type CatalogLoadFailedEvent struct {
	Err error
}

func (e CatalogLoadFailedEvent) Type() EventType { return EventCatalogLoadFailed }

// QueryChangedEvent is emitted as soon as new query text is recorded,
// before any debounced recompute runs
type QueryChangedEvent struct {
	Query string
}

func (e QueryChangedEvent) Type() EventType { return EventQueryChanged }

// ScopeChangedEvent is emitted as soon as a new scope is recorded
type ScopeChangedEvent struct {
	Scope Scope
}

func (e ScopeChangedEvent) Type() EventType { return EventScopeChanged }

// ResultsUpdatedEvent is emitted after a debounced recompute with the
// (query, scope) pair the recompute actually used
type ResultsUpdatedEvent struct {
	Query                 string
	Scope                 Scope
	Results               []Restaurant
	TextSuggestions       []string
	RestaurantSuggestions []Restaurant
}

func (e ResultsUpdatedEvent) Type() EventType { return EventResultsUpdated }
