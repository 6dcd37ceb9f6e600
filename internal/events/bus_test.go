package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishReachesAllSubscribers(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch1, cancel1 := bus.Subscribe(TopicCollectionsUpdated)
	defer cancel1()
	ch2, cancel2 := bus.Subscribe(TopicCollectionsUpdated, TopicStudentsUpdated)
	defer cancel2()

	bus.Publish(TopicCollectionsUpdated)

	assert.Equal(t, TopicCollectionsUpdated, <-ch1)
	assert.Equal(t, TopicCollectionsUpdated, <-ch2)
}

func TestBus_TopicsAreIndependent(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch, cancel := bus.Subscribe(TopicDiscountsUpdated)
	defer cancel()

	bus.Publish(TopicFeeTypesUpdated)

	select {
	case topic := <-ch:
		t.Fatalf("unexpected notification %q", topic)
	default:
	}
}

func TestBus_PublishNeverBlocksOnSlowSubscriber(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	// Never drained; fills its buffer.
	_, cancel := bus.Subscribe(TopicCollectionsUpdated)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			bus.Publish(TopicCollectionsUpdated)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on an undrained subscriber")
	}
}

func TestBus_CancelStopsDelivery(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch, cancel := bus.Subscribe(TopicStudentsUpdated)
	cancel()

	bus.Publish(TopicStudentsUpdated)

	select {
	case topic := <-ch:
		t.Fatalf("notification %q delivered after cancel", topic)
	default:
	}
}

func TestBus_PublishAfterCloseIsDiscarded(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe(TopicFeesUpdated)
	defer cancel()

	bus.Close()
	bus.Publish(TopicFeesUpdated)

	select {
	case topic := <-ch:
		t.Fatalf("notification %q delivered after close", topic)
	default:
	}
}
