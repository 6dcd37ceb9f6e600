package events

import (
	"sync"

	"schoolfees-backend/internal/logger"
)

// Topic names broadcast after a successful mutation. The contract is
// payload-free: subscribers must re-list the affected collection rather than
// trust anything carried on the notification.
type Topic string

const (
	TopicCollectionsUpdated Topic = "collectionsUpdated"
	TopicDiscountsUpdated   Topic = "discountsUpdated"
	TopicFeeTypesUpdated    Topic = "feeTypesUpdated"
	TopicFeesUpdated        Topic = "feesUpdated"
	TopicStudentsUpdated    Topic = "studentsUpdated"
)

// Bus is an in-process broadcast bus. Any number of independent subscribers
// (API streams, jobs, tests) can listen on a topic; publishing never blocks
// the mutating caller.
type Bus struct {
	mu     sync.RWMutex
	nextID int64
	subs   map[Topic]map[int64]chan Topic
	closed bool
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Topic]map[int64]chan Topic)}
}

// Subscribe registers a listener for the given topics and returns the
// notification channel plus a cancel function. Notifications coalesce: a
// subscriber that has not drained its channel misses nothing it could not
// learn by re-listing anyway.
func (b *Bus) Subscribe(topics ...Topic) (<-chan Topic, func()) {
	ch := make(chan Topic, 8)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	for _, t := range topics {
		if b.subs[t] == nil {
			b.subs[t] = make(map[int64]chan Topic)
		}
		b.subs[t][id] = ch
	}

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, t := range topics {
			delete(b.subs[t], id)
		}
	}
	return ch, cancel
}

// Publish broadcasts a topic to every subscriber. Slow subscribers are
// skipped rather than blocked on; the payload is the topic name only.
func (b *Bus) Publish(topic Topic) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	logger.Debug("Broadcasting change notification", "topic", string(topic))
	for _, ch := range b.subs[topic] {
		select {
		case ch <- topic:
		default:
		}
	}
}

// Close drops all subscriptions. Published topics after Close are discarded.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = make(map[Topic]map[int64]chan Topic)
}
