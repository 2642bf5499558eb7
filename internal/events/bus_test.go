package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus()

	ch, cancel := bus.Subscribe(KindCart)
	defer cancel()

	bus.Publish(Change{Kind: KindCart, UserID: "u1", Ref: "p1"})

	select {
	case c := <-ch:
		assert.Equal(t, KindCart, c.Kind)
		assert.Equal(t, "u1", c.UserID)
		assert.Equal(t, "p1", c.Ref)
		assert.False(t, c.At.IsZero())
	case <-time.After(time.Second):
		t.Fatal("no change received")
	}
}

func TestBus_KindFilter(t *testing.T) {
	bus := NewBus()

	ch, cancel := bus.Subscribe(KindOrder)
	defer cancel()

	bus.Publish(Change{Kind: KindCart, UserID: "u1"})
	bus.Publish(Change{Kind: KindOrder, Ref: "ORD-1"})

	c := <-ch
	assert.Equal(t, KindOrder, c.Kind)
	assert.Empty(t, len(ch))
}

func TestBus_AllKindsWhenUnfiltered(t *testing.T) {
	bus := NewBus()

	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.Publish(Change{Kind: KindProduct, Ref: "p1"})
	bus.Publish(Change{Kind: KindUser, Ref: "u1"})

	assert.Equal(t, KindProduct, (<-ch).Kind)
	assert.Equal(t, KindUser, (<-ch).Kind)
}

func TestBus_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	bus := NewBus()

	_, cancel := bus.Subscribe(KindCart)
	defer cancel()

	// Overflow the buffer; Publish must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			bus.Publish(Change{Kind: KindCart, Ref: "p1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on slow subscriber")
	}
}

func TestBus_Cancel(t *testing.T) {
	bus := NewBus()

	ch, cancel := bus.Subscribe(KindCart)
	cancel()

	_, open := <-ch
	require.False(t, open)

	// Publishing after cancel must not panic.
	assert.NotPanics(t, func() {
		bus.Publish(Change{Kind: KindCart})
	})
}
