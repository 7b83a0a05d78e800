package tokebi

import (
	"container/list"
	"sync"
)

// Queue is a thread-safe FIFO buffer of pending Events. Any number of
// producers may Enqueue concurrently with a DrainAll; an event enqueued during
// a drain either lands in that snapshot or stays for the next one, never both
// and never neither.
type Queue struct {
	mu   sync.Mutex
	list *list.List
}

// NewQueue creates and returns a new empty Queue.
func NewQueue() *Queue {
	return &Queue{list: list.New()}
}

// Enqueue adds an Event to the end of the queue.
func (q *Queue) Enqueue(event Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.list.PushBack(event)
}

// DrainAll removes and returns all Events in insertion order. The snapshot
// and the reset happen in one critical section, so no event can be drained
// twice or lost.
func (q *Queue) DrainAll() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.list.Len() == 0 {
		return nil
	}
	events := make([]Event, 0, q.list.Len())
	for e := q.list.Front(); e != nil; e = e.Next() {
		events = append(events, e.Value.(Event))
	}
	q.list.Init()
	return events
}

// Len returns the number of Events currently in the queue. Advisory only: the
// value may be stale by the time the caller acts on it.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.list.Len()
}

// LoadFromSlice inserts previously persisted Events ahead of anything already
// queued, preserving their relative order. Replayed events predate live ones.
func (q *Queue) LoadFromSlice(events []Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := len(events) - 1; i >= 0; i-- {
		q.list.PushFront(events[i])
	}
}

// Rewrite applies fn to every queued Event in place.
func (q *Queue) Rewrite(fn func(*Event)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for e := q.list.Front(); e != nil; e = e.Next() {
		event := e.Value.(Event)
		fn(&event)
		e.Value = event
	}
}
