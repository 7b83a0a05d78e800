package tokebi

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_EnqueueDrainOrder(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 5; i++ {
		q.Enqueue(Event{EventType: fmt.Sprintf("event%d", i)})
	}

	events := q.DrainAll()
	require.Len(t, events, 5)
	for i, event := range events {
		assert.Equal(t, fmt.Sprintf("event%d", i), event.EventType)
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueue_DrainAllEmpty(t *testing.T) {
	q := NewQueue()
	assert.Nil(t, q.DrainAll())
}

func TestQueue_DrainAllClears(t *testing.T) {
	q := NewQueue()
	q.Enqueue(Event{EventType: "a"})
	q.DrainAll()

	assert.Nil(t, q.DrainAll(), "second drain must be empty")
}

func TestQueue_LoadFromSlicePrepends(t *testing.T) {
	q := NewQueue()
	q.Enqueue(Event{EventType: "live"})
	q.LoadFromSlice([]Event{{EventType: "old1"}, {EventType: "old2"}})

	events := q.DrainAll()
	require.Len(t, events, 3)
	assert.Equal(t, "old1", events[0].EventType)
	assert.Equal(t, "old2", events[1].EventType)
	assert.Equal(t, "live", events[2].EventType)
}

func TestQueue_Rewrite(t *testing.T) {
	q := NewQueue()
	q.Enqueue(Event{EventType: "a", GameID: "g1"})
	q.Enqueue(Event{EventType: "b", GameID: "other"})

	q.Rewrite(func(e *Event) {
		if e.GameID == "g1" {
			e.GameID = "g2"
		}
	})

	events := q.DrainAll()
	assert.Equal(t, "g2", events[0].GameID)
	assert.Equal(t, "other", events[1].GameID)
}

// Drain atomicity: with producers racing repeated drains, every event is
// drained exactly once — sum(drained) + remaining == total enqueued.
func TestQueue_ConcurrentDrainNoLossNoDuplicate(t *testing.T) {
	const producers = 8
	const perProducer = 500

	q := NewQueue()
	var wg sync.WaitGroup

	drained := make(chan []Event, 64)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				if events := q.DrainAll(); events != nil {
					drained <- events
				}
			}
		}
	}()

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Enqueue(Event{EventType: fmt.Sprintf("p%d-%d", p, i)})
			}
		}(p)
	}
	wg.Wait()
	close(done)
	close(drained)

	seen := make(map[string]int)
	for batch := range drained {
		for _, event := range batch {
			seen[event.EventType]++
		}
	}
	for _, event := range q.DrainAll() {
		seen[event.EventType]++
	}

	require.Len(t, seen, producers*perProducer)
	for name, count := range seen {
		require.Equal(t, 1, count, "event %s drained %d times", name, count)
	}
}

// Per-producer ordering survives concurrent enqueues: each producer's own
// events appear in its insertion order within the drained sequence.
func TestQueue_PerProducerOrder(t *testing.T) {
	const producers = 4
	const perProducer = 200

	q := NewQueue()
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Enqueue(Event{EventType: fmt.Sprintf("p%d", p), Timestamp: int64(i)})
			}
		}(p)
	}
	wg.Wait()

	last := make(map[string]int64)
	for _, event := range q.DrainAll() {
		if prev, ok := last[event.EventType]; ok {
			require.Greater(t, event.Timestamp, prev, "producer %s out of order", event.EventType)
		}
		last[event.EventType] = event.Timestamp
	}
}
