package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinegrip/internal/domain"
)

func collect(t *testing.T, ch <-chan DomainEvent, n int) []DomainEvent {
	t.Helper()
	var out []DomainEvent
	for len(out) < n {
		select {
		case e := <-ch:
			out = append(out, e)
		case <-time.After(time.Second):
			t.Fatalf("timed out after %d of %d events", len(out), n)
		}
	}
	return out
}

func TestPublishSubscribe(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	ch := make(chan DomainEvent, 8)
	bus.Subscribe(EventQueryChanged, func(e DomainEvent) { ch <- e })

	bus.Publish(domain.QueryChangedEvent{Query: "bu"})

	events := collect(t, ch, 1)
	qc, ok := events[0].(domain.QueryChangedEvent)
	require.True(t, ok)
	assert.Equal(t, "bu", qc.Query)
}

func TestDeliveryPreservesPublishOrder(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	ch := make(chan DomainEvent, 8)
	bus.Subscribe(EventQueryChanged, func(e DomainEvent) { ch <- e })

	bus.Publish(domain.QueryChangedEvent{Query: "a"})
	bus.Publish(domain.QueryChangedEvent{Query: "ab"})
	bus.Publish(domain.QueryChangedEvent{Query: "abc"})

	events := collect(t, ch, 3)
	queries := make([]string, len(events))
	for i, e := range events {
		queries[i] = e.(domain.QueryChangedEvent).Query
	}
	assert.Equal(t, []string{"a", "ab", "abc"}, queries)
}

func TestSubscribeIsTypeScoped(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	ch := make(chan DomainEvent, 8)
	bus.Subscribe(EventScopeChanged, func(e DomainEvent) { ch <- e })

	bus.Publish(domain.QueryChangedEvent{Query: "ignored"})
	bus.Publish(domain.ScopeChangedEvent{Scope: domain.ScopeFor(domain.CuisineItalian)})

	events := collect(t, ch, 1)
	_, ok := events[0].(domain.ScopeChangedEvent)
	assert.True(t, ok)

	select {
	case e := <-ch:
		t.Fatalf("unexpected extra event: %v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	ch := make(chan DomainEvent, 8)
	unsub := bus.Subscribe(EventQueryChanged, func(e DomainEvent) { ch <- e })

	bus.Publish(domain.QueryChangedEvent{Query: "one"})
	collect(t, ch, 1)

	unsub()
	bus.Publish(domain.QueryChangedEvent{Query: "two"})

	select {
	case e := <-ch:
		t.Fatalf("received event after unsubscribe: %v", e)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHandlerPanicDoesNotKillDispatcher(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	ch := make(chan DomainEvent, 8)
	bus.Subscribe(EventQueryChanged, func(e DomainEvent) { panic("boom") })
	bus.Subscribe(EventQueryChanged, func(e DomainEvent) { ch <- e })

	bus.Publish(domain.QueryChangedEvent{Query: "still alive"})
	collect(t, ch, 1)
}
